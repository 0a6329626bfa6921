package services

import (
	"errors"
	"log"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RaidDamage converts an approved raid-quest reward into boss damage:
// reward / (1 + defense/10) in integer math. Defense dampens but never fully
// blocks damage (a positive reward against any defense still lands > 0 until
// defense grows past 10x the reward).
func RaidDamage(reward, defense int64) int64 {
	if defense < 0 {
		defense = 0
	}
	dmg := reward * 10 / (10 + defense)
	if dmg < 0 {
		return 0
	}
	return dmg
}

// ApplyDamage clamps a hit to the boss's remaining health: overkill damage
// only counts what was actually absorbed, and health never goes negative.
func ApplyDamage(currentHealth, dmg int64) (remaining, applied int64) {
	if dmg < 0 {
		dmg = 0
	}
	if dmg > currentHealth {
		dmg = currentHealth
	}
	return currentHealth - dmg, dmg
}

type RaidService struct {
	DB *gorm.DB
}

func NewRaidService(db *gorm.DB) *RaidService {
	return &RaidService{DB: db}
}

// RaidQuestInput is one sub-quest definition when creating a raid.
type RaidQuestInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int64  `json:"xp_reward"`
}

// CreateRaid sets up a boss in preparing state with its bound quest list.
// Raid quests are Quest rows of type "raid"; their availability is gated by
// the boss state, so they get no window of their own.
func (s *RaidService) CreateRaid(name, description string, maxHealth, defense, completionBonusXP int64, deadline *time.Time, quests []RaidQuestInput) (*models.RaidBoss, error) {
	if name == "" || maxHealth <= 0 || defense < 0 || completionBonusXP < 0 || len(quests) == 0 {
		return nil, ErrInvalidInput
	}
	for _, q := range quests {
		if q.Title == "" || q.XPReward <= 0 {
			return nil, ErrInvalidInput
		}
	}

	boss := models.RaidBoss{
		ID:                uuid.NewString(),
		Name:              name,
		Description:       description,
		CurrentHealth:     maxHealth,
		MaxHealth:         maxHealth,
		Defense:           defense,
		CompletionBonusXP: completionBonusXP,
		State:             models.RaidStatePreparing,
		Deadline:          deadline,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Quests", "Participants").Create(&boss).Error; err != nil {
			return err
		}
		for i, q := range quests {
			quest := models.Quest{
				ID:          uuid.NewString(),
				Title:       q.Title,
				Description: q.Description,
				Type:        models.QuestTypeRaid,
				XPReward:    q.XPReward,
				Status:      models.QuestStatusAvailable,
				RaidBossID:  &boss.ID,
				SortOrder:   i,
			}
			if err := tx.Create(&quest).Error; err != nil {
				return err
			}
			boss.Quests = append(boss.Quests, quest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &boss, nil
}

// ActivateRaid transitions preparing → active, stamps the start time and
// opens joining. The state guard in the UPDATE makes a repeated activate a
// clean precondition failure instead of a double start.
func (s *RaidService) ActivateRaid(raidID string) (*models.RaidBoss, error) {
	now := time.Now()
	res := s.DB.Model(&models.RaidBoss{}).
		Where("id = ? AND state = ?", raidID, models.RaidStatePreparing).
		Updates(map[string]interface{}{
			"state":      models.RaidStateActive,
			"start_time": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetRaid(raidID); err != nil {
			return nil, err
		}
		return nil, ErrRaidNotPreparing
	}
	log.Printf("⚔️  Raid %s is now active", raidID)
	return s.GetRaid(raidID)
}

// FailRaid is the admin kill-switch: active → failed, no further rewards
// beyond what was already earned per quest.
func (s *RaidService) FailRaid(raidID, reason string) error {
	now := time.Now()
	res := s.DB.Model(&models.RaidBoss{}).
		Where("id = ? AND state = ?", raidID, models.RaidStateActive).
		Updates(map[string]interface{}{
			"state":    models.RaidStateFailed,
			"end_time": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRaidNotActive
	}
	log.Printf("💀 Raid %s failed (%s)", raidID, reason)
	return nil
}

// Join adds a wallet to an active raid. A duplicate join returns the
// existing participation instead of erroring, so UI retries are harmless.
func (s *RaidService) Join(raidID, wallet, nftTokenRef string) (*models.RaidParticipant, error) {
	var boss models.RaidBoss
	if err := s.DB.First(&boss, "id = ?", raidID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaidNotFound
		}
		return nil, err
	}
	if boss.State != models.RaidStateActive {
		return nil, ErrRaidNotActive
	}

	participant := models.RaidParticipant{
		ID:          uuid.NewString(),
		RaidBossID:  raidID,
		Wallet:      wallet,
		NFTTokenRef: nftTokenRef,
		JoinedAt:    time.Now(),
	}
	if err := s.DB.Create(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.RaidParticipant
			err := s.DB.Where("raid_boss_id = ? AND wallet = ?", raidID, wallet).First(&existing).Error
			return &existing, err
		}
		return nil, err
	}
	return &participant, nil
}

// applyQuestDamage runs inside the moderation approval transaction. The boss
// row is locked for the duration, so concurrent approvals serialize and no
// decrement is lost. Health reaching zero is the completion trigger.
func (s *RaidService) applyQuestDamage(tx *gorm.DB, raidID string, quest *models.Quest, wallet string, now time.Time) error {
	var boss models.RaidBoss
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&boss, "id = ?", raidID).Error; err != nil {
		return err
	}
	if boss.State != models.RaidStateActive {
		return ErrRaidNotActive
	}

	remaining, dmg := ApplyDamage(boss.CurrentHealth, RaidDamage(quest.XPReward, boss.Defense))
	boss.CurrentHealth = remaining

	res := tx.Model(&models.RaidParticipant{}).
		Where("raid_boss_id = ? AND wallet = ?", raidID, wallet).
		Update("contribution", gorm.Expr("contribution + ?", dmg))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotParticipant
	}

	if err := tx.Model(&models.RaidBoss{}).
		Where("id = ?", raidID).
		Update("current_health", boss.CurrentHealth).Error; err != nil {
		return err
	}

	if boss.CurrentHealth == 0 {
		return s.completeRaid(tx, raidID, now)
	}
	return nil
}

// completeRaid finishes an active raid: end timestamp, completion bonus to
// every participant, defeat counters. The state-guarded UPDATE makes the
// transition fire exactly once even if two approvals race the last hit.
func (s *RaidService) completeRaid(tx *gorm.DB, raidID string, now time.Time) error {
	res := tx.Model(&models.RaidBoss{}).
		Where("id = ? AND state = ?", raidID, models.RaidStateActive).
		Updates(map[string]interface{}{
			"state":    models.RaidStateCompleted,
			"end_time": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var boss models.RaidBoss
	if err := tx.First(&boss, "id = ?", raidID).Error; err != nil {
		return err
	}

	var participants []models.RaidParticipant
	if err := tx.Where("raid_boss_id = ?", raidID).Find(&participants).Error; err != nil {
		return err
	}
	for _, p := range participants {
		if err := tx.Model(&models.Player{}).
			Where("wallet_address = ?", p.Wallet).
			Updates(map[string]interface{}{
				"experience":           gorm.Expr("experience + ?", boss.CompletionBonusXP),
				"raid_bosses_defeated": gorm.Expr("raid_bosses_defeated + 1"),
			}).Error; err != nil {
			return err
		}
	}

	log.Printf("🏆 Raid %s completed — bonus %d XP to %d participant(s)", raidID, boss.CompletionBonusXP, len(participants))
	return nil
}

// GetRaid loads a boss with its quests (and their completed-by sets) and
// participants.
func (s *RaidService) GetRaid(raidID string) (*models.RaidBoss, error) {
	var boss models.RaidBoss
	err := s.DB.
		Preload("Quests", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Quests.Completions").
		Preload("Participants").
		First(&boss, "id = ?", raidID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaidNotFound
		}
		return nil, err
	}
	return &boss, nil
}

// ListRaids returns bosses, optionally filtered by state.
func (s *RaidService) ListRaids(state string) ([]models.RaidBoss, error) {
	q := s.DB.Order("created_at DESC")
	if state != "" {
		q = q.Where("state = ?", state)
	}
	var bosses []models.RaidBoss
	err := q.Find(&bosses).Error
	return bosses, err
}

// ContributionLeaderboard ranks a raid's participants by damage dealt.
func (s *RaidService) ContributionLeaderboard(raidID string) ([]models.RaidParticipant, error) {
	var participants []models.RaidParticipant
	err := s.DB.Where("raid_boss_id = ?", raidID).
		Order("contribution DESC, joined_at ASC").
		Find(&participants).Error
	return participants, err
}
