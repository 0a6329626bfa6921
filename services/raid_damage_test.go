package services

import "testing"

func TestRaidDamage(t *testing.T) {
	tests := []struct {
		name    string
		reward  int64
		defense int64
		want    int64
	}{
		{"zero defense passes reward through", 100, 0, 100},
		{"defense 10 halves damage", 100, 10, 50},
		{"defense 5 dampens by a third", 90, 5, 60},
		{"integer division floors", 100, 3, 76}, // 1000/13
		{"huge defense dampens but damage floors at zero", 10, 1000, 0},
		{"negative defense treated as zero", 100, -5, 100},
		{"zero reward deals nothing", 0, 0, 0},
	}
	for _, tt := range tests {
		if got := RaidDamage(tt.reward, tt.defense); got != tt.want {
			t.Errorf("%s: RaidDamage(%d, %d) = %d, want %d", tt.name, tt.reward, tt.defense, got, tt.want)
		}
	}
}

func TestApplyDamage(t *testing.T) {
	tests := []struct {
		name          string
		health        int64
		dmg           int64
		wantRemaining int64
		wantApplied   int64
	}{
		{"normal hit leaves the rest", 100, 30, 70, 30},
		{"exact hit kills the boss", 100, 100, 0, 100},
		{"overkill clamps to remaining health", 100, 250, 0, 100},
		{"overkill on a nearly dead boss", 1, 9999, 0, 1},
		{"zero damage changes nothing", 100, 0, 100, 0},
		{"negative damage never heals", 100, -50, 100, 0},
	}
	for _, tt := range tests {
		remaining, applied := ApplyDamage(tt.health, tt.dmg)
		if remaining != tt.wantRemaining || applied != tt.wantApplied {
			t.Errorf("%s: ApplyDamage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.name, tt.health, tt.dmg, remaining, applied, tt.wantRemaining, tt.wantApplied)
		}
		if remaining < 0 {
			t.Errorf("%s: remaining health went negative", tt.name)
		}
	}
}

func TestRaidDamage_NeverNegative(t *testing.T) {
	for reward := int64(0); reward <= 500; reward += 17 {
		for defense := int64(-10); defense <= 200; defense += 13 {
			if got := RaidDamage(reward, defense); got < 0 {
				t.Fatalf("RaidDamage(%d, %d) = %d, negative", reward, defense, got)
			}
		}
	}
}
