package services

import (
	"errors"
	"fmt"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

// EnsurePlayer returns the player for a wallet, creating the record on first
// authenticated contact (idempotent — a concurrent create loses cleanly on
// the wallet index and we re-read).
func (s *PlayerService) EnsurePlayer(wallet string) (*models.Player, error) {
	var player models.Player
	err := s.DB.Where("wallet_address = ?", wallet).First(&player).Error
	if err == nil {
		return &player, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	player = models.Player{
		ID:            uuid.NewString(),
		WalletAddress: wallet,
		JoinedAt:      time.Now(),
	}
	if err := s.DB.Create(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = s.DB.Where("wallet_address = ?", wallet).First(&player).Error
			return &player, err
		}
		return nil, err
	}
	return &player, nil
}

// GetPlayer fetches a player by wallet without creating it.
func (s *PlayerService) GetPlayer(wallet string) (*models.Player, error) {
	var player models.Player
	if err := s.DB.Where("wallet_address = ?", wallet).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

// UpdateDisplayName sets the optional display name. Single-column update so a
// concurrent XP credit is never clobbered by a stale snapshot.
func (s *PlayerService) UpdateDisplayName(wallet, displayName string) (*models.Player, error) {
	res := s.DB.Model(&models.Player{}).
		Where("wallet_address = ?", wallet).
		Update("display_name", displayName)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPlayerNotFound
	}
	return s.GetPlayer(wallet)
}

// GrantXP is the explicit admin correction path — the only way experience
// moves outside moderation approval and raid crediting. Negative deltas are
// allowed but never push experience below zero.
func (s *PlayerService) GrantXP(wallet string, delta int64, reason string) (*models.Player, error) {
	var updated *models.Player
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Player{}).
			Where("wallet_address = ?", wallet).
			Update("experience", gorm.Expr("GREATEST(experience + ?, 0)", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlayerNotFound
		}

		var player models.Player
		if err := tx.Where("wallet_address = ?", wallet).First(&player).Error; err != nil {
			return err
		}
		updated = &player
		fmt.Printf("🛠️  Admin XP correction: %s %+d → XP=%d (reason: %s)\n",
			wallet, delta, player.Experience, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Leaderboard returns the top players by experience, with their computed
// level info attached.
func (s *PlayerService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}

	var players []models.Player
	if err := s.DB.Order("experience DESC, joined_at ASC").Limit(limit).Find(&players).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for i, p := range players {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			Wallet:      p.WalletAddress,
			DisplayName: p.DisplayName,
			Experience:  p.Experience,
			Level:       CalculateLevel(p.Experience),
			Archetype:   p.Archetype,
		})
	}
	return entries, nil
}

// LeaderboardEntry is one ranked row of the global XP leaderboard.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	Wallet      string    `json:"wallet"`
	DisplayName string    `json:"display_name,omitempty"`
	Experience  int64     `json:"experience"`
	Level       LevelInfo `json:"level"`
	Archetype   string    `json:"archetype,omitempty"`
}
