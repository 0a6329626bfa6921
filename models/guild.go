package models

import "time"

// Guild groups players under an archetype banner. Core guilds use one of the
// four fixed archetypes; community guilds may use a free-form label. Guilds
// are never hard-deleted, only soft-deleted.
type Guild struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url,omitempty"`
	Archetype   string `gorm:"type:varchar(32)" json:"archetype"`
	IsCore      bool   `json:"is_core" gorm:"default:false"`

	Members []GuildMember `json:"members,omitempty" gorm:"foreignKey:GuildID"`

	// Derived at read time, never stored authoritatively.
	TotalXP      int64   `json:"total_xp,omitempty" gorm:"-"`
	AverageLevel float64 `json:"average_level,omitempty" gorm:"-"`
	MemberCount  int64   `json:"member_count,omitempty" gorm:"-"`

	Timestamps
}

// GuildMember links a wallet to a guild. The global unique index on Wallet is
// the one-guild-per-player rule: a second join attempt anywhere collides.
type GuildMember struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID  string    `gorm:"index;not null" json:"guild_id"`
	Wallet   string    `gorm:"uniqueIndex;not null" json:"wallet"`
	IsLeader bool      `json:"is_leader" gorm:"default:false"`
	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}
