package models

import "time"

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Submission is a player's proof-of-completion awaiting moderation. Approval
// is the only path that marks the quest completed and credits XP; the
// submission itself never implies a reward.
//
// PendingKey holds "questID:wallet" while the submission is pending and NULL
// once resolved. The unique index on it enforces at-most-one pending
// submission per (quest, wallet) even under concurrent submits — NULLs don't
// collide, so resolved history piles up freely.
type Submission struct {
	ID            string  `gorm:"primaryKey;type:uuid" json:"id"`
	QuestID       string  `gorm:"index;not null" json:"quest_id"`
	Wallet        string  `gorm:"index;not null" json:"wallet"`
	ProofURL      string  `gorm:"type:text" json:"proof_url"`
	ScreenshotURL string  `gorm:"type:text" json:"screenshot_url,omitempty"`
	PendingKey    *string `gorm:"uniqueIndex" json:"-"`

	Status      string     `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"autoCreateTime"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ReviewerID  string     `json:"reviewer_id,omitempty"`
	Comment     string     `gorm:"type:text" json:"comment,omitempty"`

	Quest Quest `json:"quest,omitempty" gorm:"foreignKey:QuestID"`
}

// PendingSubmissionKey builds the uniqueness key for an unresolved submission.
func PendingSubmissionKey(questID, wallet string) string {
	return questID + ":" + wallet
}
