package services

import (
	"errors"
	"fmt"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ModerationService owns the one hard transactional boundary of the engine:
// approving a submission must mark it approved, add the wallet to the quest's
// completed-by set, and credit the player — all or nothing.
type ModerationService struct {
	DB    *gorm.DB
	Raids *RaidService
}

func NewModerationService(db *gorm.DB, raids *RaidService) *ModerationService {
	return &ModerationService{DB: db, Raids: raids}
}

// Resolve applies an admin decision to a pending submission. Resolved
// submissions are terminal; a second resolve is rejected. Rejection has no
// side effects. Approval runs as a single transaction with the submission row
// locked, so two admins racing the same submission serialize and the loser
// sees it already resolved.
func (m *ModerationService) Resolve(submissionID, decision, reviewerID, comment string) (*models.Submission, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, ErrInvalidInput
	}

	var resolved models.Submission
	err := m.DB.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sub, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return err
		}
		if sub.Status != models.SubmissionStatusPending {
			return ErrSubmissionResolved
		}

		now := time.Now()
		sub.ResolvedAt = &now
		sub.ReviewerID = reviewerID
		sub.Comment = comment
		sub.PendingKey = nil // frees the pending slot for this (quest, wallet)

		if decision == DecisionReject {
			sub.Status = models.SubmissionStatusRejected
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
			resolved = sub
			return nil
		}

		sub.Status = models.SubmissionStatusApproved
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}

		var quest models.Quest
		if err := tx.First(&quest, "id = ?", sub.QuestID).Error; err != nil {
			return err
		}

		// Completed-by set insert. A colliding row means the wallet was
		// already credited for this quest through another path — treat as
		// satisfied, never double-credit.
		completion := models.QuestCompletion{
			ID:          uuid.NewString(),
			QuestID:     quest.ID,
			Wallet:      sub.Wallet,
			XPAwarded:   quest.XPReward,
			CompletedAt: now,
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				resolved = sub
				return nil
			}
			return err
		}

		res := tx.Model(&models.Player{}).
			Where("wallet_address = ?", sub.Wallet).
			Updates(map[string]interface{}{
				"experience":              gorm.Expr("experience + ?", quest.XPReward),
				"quests_completed":        gorm.Expr("quests_completed + 1"),
				"last_quest_completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlayerNotFound
		}

		if quest.RaidBossID != nil {
			if err := m.Raids.applyQuestDamage(tx, *quest.RaidBossID, &quest, sub.Wallet, now); err != nil {
				return err
			}
		}

		resolved = sub
		fmt.Printf("🎮 Submission approved: quest=%s wallet=%s +%d XP (reviewer: %s)\n",
			quest.ID, sub.Wallet, quest.XPReward, reviewerID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
