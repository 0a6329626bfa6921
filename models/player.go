package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is created on first authenticated wallet contact and is the anchor
// for all progression state. Experience and the completion counters only move
// through moderation approval / raid crediting (or an explicit admin grant).
type Player struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	WalletAddress string `gorm:"uniqueIndex;not null" json:"wallet_address"`
	DisplayName   string `json:"display_name,omitempty"`

	// Core progression
	Experience         int64 `json:"experience" gorm:"default:0"`
	QuestsCompleted    int64 `json:"quests_completed" gorm:"default:0"`
	RaidBossesDefeated int64 `json:"raid_bosses_defeated" gorm:"default:0"`

	// Archetype is assigned once by the quiz and never changes afterwards.
	// Empty string = not assigned yet.
	Archetype string `gorm:"type:varchar(32);default:''" json:"archetype,omitempty"`

	JoinedAt             time.Time  `json:"joined_at" gorm:"autoCreateTime"`
	LastQuestCompletedAt *time.Time `json:"last_quest_completed_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
