package services

import (
	"testing"
	"time"

	"quest-raid-system/models"
)

func testRotationConfig() RotationConfig {
	return RotationConfig{Hour: 6, Location: time.UTC, WeeklyDay: time.Monday}
}

func TestCurrentBoundary_Daily(t *testing.T) {
	cfg := testRotationConfig()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"after boundary same day",
			time.Date(2024, 3, 8, 9, 30, 0, 0, time.UTC),
			time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC),
		},
		{
			"before boundary rolls back a day",
			time.Date(2024, 3, 8, 5, 59, 0, 0, time.UTC),
			time.Date(2024, 3, 7, 6, 0, 0, 0, time.UTC),
		},
		{
			"exactly at boundary",
			time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		got, ok := currentBoundary(models.QuestTypeDaily, tt.now, cfg)
		if !ok {
			t.Fatalf("%s: expected a boundary", tt.name)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCurrentBoundary_WeeklyOnConfiguredDay(t *testing.T) {
	cfg := testRotationConfig()

	// Friday 2024-03-08 → most recent Monday boundary is 2024-03-04 06:00.
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	got, ok := currentBoundary(models.QuestTypeWeekly, now, cfg)
	if !ok {
		t.Fatal("expected a weekly boundary")
	}
	want := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Weekday() != time.Monday {
		t.Errorf("weekly boundary not on Monday: %v", got.Weekday())
	}
}

func TestCurrentBoundary_MonthlyFirstOfMonth(t *testing.T) {
	cfg := testRotationConfig()

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"mid-month",
			time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			"first of month before the hour rolls back a month",
			time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			"first of month after the hour",
			time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		got, ok := currentBoundary(models.QuestTypeMonthly, tt.now, cfg)
		if !ok {
			t.Fatalf("%s: expected a boundary", tt.name)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCurrentBoundary_LatePollSameBoundary(t *testing.T) {
	// Idempotence across late firing: a poll at 06:01 and one hours later
	// must resolve to the same boundary, hence the same deployment key.
	cfg := testRotationConfig()
	onTime := time.Date(2024, 3, 8, 6, 1, 0, 0, time.UTC)
	late := time.Date(2024, 3, 8, 23, 45, 0, 0, time.UTC)

	a, _ := currentBoundary(models.QuestTypeDaily, onTime, cfg)
	b, _ := currentBoundary(models.QuestTypeDaily, late, cfg)
	if boundaryKey(models.QuestTypeDaily, a) != boundaryKey(models.QuestTypeDaily, b) {
		t.Errorf("late poll produced a different key: %s vs %s",
			boundaryKey(models.QuestTypeDaily, a), boundaryKey(models.QuestTypeDaily, b))
	}
}

func TestBoundaryKey_Format(t *testing.T) {
	boundary := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)
	if got := boundaryKey(models.QuestTypeWeekly, boundary); got != "weekly-2024-03-04" {
		t.Errorf("got %q", got)
	}
}

func TestCadenceLength(t *testing.T) {
	from := time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		cadence string
		want    time.Time
	}{
		{models.QuestTypeDaily, from.AddDate(0, 0, 1)},
		{models.QuestTypeWeekly, from.AddDate(0, 0, 7)},
		{models.QuestTypeMonthly, from.AddDate(0, 1, 0)},
	}
	for _, tt := range tests {
		if got := cadenceLength(tt.cadence, from); !got.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.cadence, got, tt.want)
		}
	}
}
