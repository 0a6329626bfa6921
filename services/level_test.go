package services

import "testing"

func TestCalculateLevel_Zero(t *testing.T) {
	info := CalculateLevel(0)
	if info.Level != 1 {
		t.Errorf("expected level 1, got %d", info.Level)
	}
	if info.XPIntoLevel != 0 {
		t.Errorf("expected 0 xp into level, got %d", info.XPIntoLevel)
	}
	if info.ProgressPercent != 0 {
		t.Errorf("expected 0%% progress, got %f", info.ProgressPercent)
	}
	if info.XPToNextLevel != LevelBaseXP {
		t.Errorf("expected %d xp to next level, got %d", LevelBaseXP, info.XPToNextLevel)
	}
}

func TestCalculateLevel_Thresholds(t *testing.T) {
	tests := []struct {
		experience int64
		wantLevel  int
	}{
		{0, 1},
		{199, 1},   // one short of clearing level 1
		{200, 2},   // base threshold
		{559, 2},   // 200 + 360 - 1
		{560, 3},   // 200 + floor(200*1.8)
		{1207, 3},  // one short of level 4 (200+360+648)
		{1208, 4},
	}
	for _, tt := range tests {
		got := CalculateLevel(tt.experience)
		if got.Level != tt.wantLevel {
			t.Errorf("CalculateLevel(%d).Level = %d, want %d", tt.experience, got.Level, tt.wantLevel)
		}
	}
}

func TestCalculateLevel_RemainderAlwaysUnderNext(t *testing.T) {
	for xp := int64(0); xp <= 50_000; xp += 7 {
		info := CalculateLevel(xp)
		if info.XPIntoLevel >= info.XPToNextLevel {
			t.Fatalf("xp=%d: xpIntoLevel %d >= xpToNextLevel %d", xp, info.XPIntoLevel, info.XPToNextLevel)
		}
		if info.ProgressPercent < 0 || info.ProgressPercent >= 100 {
			t.Fatalf("xp=%d: progress %f out of [0,100)", xp, info.ProgressPercent)
		}
	}
}

func TestCalculateLevel_Monotonic(t *testing.T) {
	prev := CalculateLevel(0).Level
	for xp := int64(1); xp <= 100_000; xp += 13 {
		level := CalculateLevel(xp).Level
		if level < prev {
			t.Fatalf("level decreased from %d to %d at xp=%d", prev, level, xp)
		}
		prev = level
	}
}

func TestCalculateLevel_Deterministic(t *testing.T) {
	for _, xp := range []int64{0, 199, 200, 999, 123_456} {
		a := CalculateLevel(xp)
		b := CalculateLevel(xp)
		if a != b {
			t.Errorf("CalculateLevel(%d) not deterministic: %+v vs %+v", xp, a, b)
		}
	}
}
