package models

import "time"

const (
	RaidStatePreparing = "preparing"
	RaidStateActive    = "active"
	RaidStateCompleted = "completed"
	RaidStateFailed    = "failed"
)

// RaidBoss is a time-boxed cooperative encounter. Health only moves down while
// active, via approved raid-quest completions; hitting zero is the completion
// trigger.
type RaidBoss struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url,omitempty"`

	CurrentHealth int64 `json:"current_health" gorm:"not null"`
	MaxHealth     int64 `json:"max_health" gorm:"not null"`
	Defense       int64 `json:"defense" gorm:"default:0"`

	// CompletionBonusXP goes to every participant when the boss dies, on top
	// of the per-quest rewards they already earned through moderation.
	CompletionBonusXP int64 `json:"completion_bonus_xp" gorm:"default:0"`

	State     string     `json:"state" gorm:"type:varchar(16);default:'preparing';index"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty" gorm:"index"`

	Quests       []Quest           `json:"quests,omitempty" gorm:"foreignKey:RaidBossID"`
	Participants []RaidParticipant `json:"participants,omitempty" gorm:"foreignKey:RaidBossID"`

	Timestamps
}

// RaidParticipant is the (raid, wallet) join record. The composite unique
// index guarantees one row per pair; duplicate joins return the existing row.
type RaidParticipant struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	RaidBossID string `gorm:"uniqueIndex:idx_raid_wallet;not null" json:"raid_boss_id"`
	Wallet     string `gorm:"uniqueIndex:idx_raid_wallet;index;not null" json:"wallet"`

	// NFTTokenRef is the token the wallet joined with, as reported by the
	// gateway. The engine stores it, it does not verify ownership.
	NFTTokenRef string `json:"nft_token_ref,omitempty"`

	// Contribution accumulates the damage this wallet has dealt.
	Contribution int64 `json:"contribution" gorm:"default:0"`

	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
