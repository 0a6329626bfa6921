package models

import (
	"time"
)

const (
	QuestTypeDaily   = "daily"
	QuestTypeWeekly  = "weekly"
	QuestTypeMonthly = "monthly"
	QuestTypeRaid    = "raid"
)

const (
	QuestStatusAvailable = "available"
	QuestStatusCompleted = "completed"
	QuestStatusExpired   = "expired"
)

// Quest is a single deployed quest instance. Rotation deploys fresh rows per
// boundary, so a new day's quest never inherits the previous day's
// completed-by set. Raid quests carry a RaidBossID and ignore the
// availability window (the raid state gates them instead).
type Quest struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Type        string `gorm:"type:varchar(16);index;not null" json:"type"`
	XPReward    int64  `gorm:"not null" json:"xp_reward"`

	AvailableFrom time.Time `json:"available_from"`
	ExpiresAt     time.Time `json:"expires_at" gorm:"index"`
	Status        string    `json:"status" gorm:"type:varchar(16);default:'available';index"`

	RaidBossID *string `gorm:"index" json:"raid_boss_id,omitempty"`
	SortOrder  int     `json:"sort_order" gorm:"column:sort_order;default:0"`

	Completions []QuestCompletion `json:"completions,omitempty" gorm:"foreignKey:QuestID"`

	Timestamps
}

// QuestCompletion rows are the quest's completed-by set. The composite unique
// index is the set semantics: a wallet can never be credited twice.
type QuestCompletion struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	QuestID     string    `gorm:"uniqueIndex:idx_quest_wallet;not null" json:"quest_id"`
	Wallet      string    `gorm:"uniqueIndex:idx_quest_wallet;index;not null" json:"wallet"`
	XPAwarded   int64     `json:"xp_awarded"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`
}

// QuestTemplate is a rotation pool entry. Admins maintain the pools; each
// rotation boundary stamps every active template of that cadence into a fresh
// Quest row.
type QuestTemplate struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Type        string `gorm:"type:varchar(16);index;not null" json:"type"`
	XPReward    int64  `gorm:"not null" json:"xp_reward"`
	Active      bool   `json:"active" gorm:"default:true"`

	Timestamps
}

// RotationDeployment records that a rotation boundary has been served. The
// unique BoundaryKey (e.g. "daily-2024-03-08") makes the rotation poll
// idempotent: a boundary deploys at most once no matter how often or how late
// the scheduler fires.
type RotationDeployment struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Cadence     string    `gorm:"type:varchar(16);not null" json:"cadence"`
	BoundaryKey string    `gorm:"uniqueIndex;not null" json:"boundary_key"`
	QuestCount  int       `json:"quest_count"`
	DeployedAt  time.Time `json:"deployed_at" gorm:"autoCreateTime"`
}
