package services

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CooldownConfig holds the per-cadence minimum interval since a wallet's last
// completion of that quest type. The windows stop a fast approval cycle from
// letting a player clear the next boundary's quest early.
type CooldownConfig struct {
	Windows map[string]time.Duration
}

// LoadCooldownConfig reads COOLDOWN_<TYPE>_HOURS env overrides. Defaults:
// daily 20h, weekly 6d, monthly 28d, raid none.
func LoadCooldownConfig() CooldownConfig {
	cfg := CooldownConfig{Windows: map[string]time.Duration{
		models.QuestTypeDaily:   20 * time.Hour,
		models.QuestTypeWeekly:  6 * 24 * time.Hour,
		models.QuestTypeMonthly: 28 * 24 * time.Hour,
		models.QuestTypeRaid:    0,
	}}

	for questType, key := range map[string]string{
		models.QuestTypeDaily:   "COOLDOWN_DAILY_HOURS",
		models.QuestTypeWeekly:  "COOLDOWN_WEEKLY_HOURS",
		models.QuestTypeMonthly: "COOLDOWN_MONTHLY_HOURS",
		models.QuestTypeRaid:    "COOLDOWN_RAID_HOURS",
	} {
		if v := os.Getenv(key); v != "" {
			if h, err := strconv.Atoi(v); err == nil && h >= 0 {
				cfg.Windows[questType] = time.Duration(h) * time.Hour
			} else {
				log.Printf("⚠️  Invalid %s %q, keeping default", key, v)
			}
		}
	}
	return cfg
}

// cooldownRemaining returns how much of the window is still left since the
// last completion. Zero means the wallet is clear to submit.
func cooldownRemaining(lastCompletion *time.Time, window time.Duration, now time.Time) time.Duration {
	if lastCompletion == nil || window <= 0 {
		return 0
	}
	remaining := window - now.Sub(*lastCompletion)
	if remaining < 0 {
		return 0
	}
	return remaining
}

type SubmissionService struct {
	DB        *gorm.DB
	Cooldowns CooldownConfig
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{DB: db, Cooldowns: LoadCooldownConfig()}
}

// Submit validates a proof-of-completion and queues it for moderation. The
// quest is NOT marked completed here — only moderation approval rewards.
// Preconditions run in order, each with its own error: quest exists, not
// expired (raid quests: boss active and wallet joined), not already completed
// by this wallet, no pending submission, cadence cooldown elapsed.
func (s *SubmissionService) Submit(questID, wallet, proofURL, screenshotURL string) (*models.Submission, error) {
	if questID == "" || wallet == "" || proofURL == "" {
		return nil, ErrInvalidInput
	}
	now := time.Now()

	var quest models.Quest
	if err := s.DB.First(&quest, "id = ?", questID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	if quest.RaidBossID != nil {
		var boss models.RaidBoss
		if err := s.DB.First(&boss, "id = ?", *quest.RaidBossID).Error; err != nil {
			return nil, err
		}
		if boss.State != models.RaidStateActive {
			return nil, ErrRaidNotActive
		}
		var joined int64
		if err := s.DB.Model(&models.RaidParticipant{}).
			Where("raid_boss_id = ? AND wallet = ?", boss.ID, wallet).
			Count(&joined).Error; err != nil {
			return nil, err
		}
		if joined == 0 {
			return nil, ErrNotParticipant
		}
	} else {
		if quest.Status == models.QuestStatusExpired || !quest.ExpiresAt.After(now) {
			return nil, ErrQuestExpired
		}
	}

	var completed int64
	if err := s.DB.Model(&models.QuestCompletion{}).
		Where("quest_id = ? AND wallet = ?", questID, wallet).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	if completed > 0 {
		return nil, ErrQuestAlreadyComplete
	}

	pendingKey := models.PendingSubmissionKey(questID, wallet)
	var pending int64
	if err := s.DB.Model(&models.Submission{}).
		Where("pending_key = ?", pendingKey).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrSubmissionPending
	}

	last, err := s.lastCompletionOfType(wallet, quest.Type)
	if err != nil {
		return nil, err
	}
	if cooldownRemaining(last, s.Cooldowns.Windows[quest.Type], now) > 0 {
		return nil, ErrCooldownActive
	}

	sub := models.Submission{
		ID:            uuid.NewString(),
		QuestID:       questID,
		Wallet:        wallet,
		ProofURL:      proofURL,
		ScreenshotURL: screenshotURL,
		PendingKey:    &pendingKey,
		Status:        models.SubmissionStatusPending,
		SubmittedAt:   now,
	}
	if err := s.DB.Create(&sub).Error; err != nil {
		// a concurrent submit from another device won the pending slot
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubmissionPending
		}
		return nil, err
	}
	return &sub, nil
}

// lastCompletionOfType finds when the wallet last completed any quest of the
// given cadence. Derived from the completion rows instead of a denormalized
// column so it can never drift.
func (s *SubmissionService) lastCompletionOfType(wallet, questType string) (*time.Time, error) {
	var completion models.QuestCompletion
	err := s.DB.Model(&models.QuestCompletion{}).
		Joins("JOIN quests ON quests.id = quest_completions.quest_id").
		Where("quest_completions.wallet = ? AND quests.type = ?", wallet, questType).
		Order("quest_completions.completed_at DESC").
		First(&completion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &completion.CompletedAt, nil
}

// ListByWallet returns the wallet's own submission history, newest first.
func (s *SubmissionService) ListByWallet(wallet string, limit int) ([]models.Submission, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	var subs []models.Submission
	err := s.DB.Preload("Quest").
		Where("wallet = ?", wallet).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}

// ListPending is the moderation review queue, oldest first.
func (s *SubmissionService) ListPending(limit int) ([]models.Submission, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var subs []models.Submission
	err := s.DB.Preload("Quest").
		Where("status = ?", models.SubmissionStatusPending).
		Order("submitted_at ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
