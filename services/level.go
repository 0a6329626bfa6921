package services

import "math"

// Level curve: clearing level 1 takes LevelBaseXP, every level after that
// costs LevelGrowthFactor times the previous one. The same function backs
// profiles, leaderboards and guild stats, so it has to stay pure and
// deterministic.
const (
	LevelBaseXP       = 200
	LevelGrowthFactor = 1.8
)

// LevelInfo is the computed position of an experience total on the curve.
type LevelInfo struct {
	Level           int     `json:"level"`
	XPIntoLevel     int64   `json:"xp_into_level"`
	XPToNextLevel   int64   `json:"xp_to_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

// xpForLevel returns the full XP cost of clearing the given level:
// floor(base * factor^(level-1)).
func xpForLevel(level int) int64 {
	return int64(math.Floor(LevelBaseXP * math.Pow(LevelGrowthFactor, float64(level-1))))
}

// CalculateLevel walks the curve, consuming each level's full requirement
// until the remainder no longer covers the next one. experience must be
// non-negative; that's the caller's contract.
func CalculateLevel(experience int64) LevelInfo {
	level := 1
	remaining := experience
	for remaining >= xpForLevel(level) {
		remaining -= xpForLevel(level)
		level++
	}

	next := xpForLevel(level)
	progress := 0.0
	if next > 0 {
		progress = 100 * float64(remaining) / float64(next)
	}

	return LevelInfo{
		Level:           level,
		XPIntoLevel:     remaining,
		XPToNextLevel:   next,
		ProgressPercent: progress,
	}
}
