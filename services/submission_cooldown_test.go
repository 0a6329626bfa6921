package services

import (
	"testing"
	"time"

	"quest-raid-system/models"
)

func TestCooldownRemaining(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	window := 20 * time.Hour

	tests := []struct {
		name string
		last *time.Time
		want time.Duration
	}{
		{"never completed", nil, 0},
		{"window fully elapsed", timePtr(now.Add(-21 * time.Hour)), 0},
		{"window exactly elapsed", timePtr(now.Add(-20 * time.Hour)), 0},
		{"completed an hour ago", timePtr(now.Add(-1 * time.Hour)), 19 * time.Hour},
		{"completed just now", timePtr(now), 20 * time.Hour},
	}
	for _, tt := range tests {
		if got := cooldownRemaining(tt.last, window, now); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCooldownRemaining_ZeroWindow(t *testing.T) {
	now := time.Now()
	last := now.Add(-time.Minute)
	if got := cooldownRemaining(&last, 0, now); got != 0 {
		t.Errorf("zero window should never block, got %v", got)
	}
}

func TestLoadCooldownConfig_Defaults(t *testing.T) {
	cfg := LoadCooldownConfig()
	if cfg.Windows[models.QuestTypeDaily] != 20*time.Hour {
		t.Errorf("daily default = %v", cfg.Windows[models.QuestTypeDaily])
	}
	if cfg.Windows[models.QuestTypeWeekly] != 6*24*time.Hour {
		t.Errorf("weekly default = %v", cfg.Windows[models.QuestTypeWeekly])
	}
	if cfg.Windows[models.QuestTypeRaid] != 0 {
		t.Errorf("raid quests should have no cooldown by default, got %v", cfg.Windows[models.QuestTypeRaid])
	}
}

func timePtr(t time.Time) *time.Time { return &t }
