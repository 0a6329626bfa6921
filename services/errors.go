package services

import "errors"

// Precondition and validation errors the engine reports to callers. Handlers
// map them to HTTP statuses; anything not in this list is a store/transaction
// failure and surfaces as a 500.
var (
	ErrQuestNotFound        = errors.New("quest not found")
	ErrQuestExpired         = errors.New("quest has expired")
	ErrQuestAlreadyComplete = errors.New("quest already completed by this wallet")
	ErrSubmissionPending    = errors.New("a submission for this quest is already pending")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionResolved   = errors.New("submission already resolved")
	ErrCooldownActive       = errors.New("cooldown for this quest type has not elapsed")

	ErrPlayerNotFound     = errors.New("player not found")
	ErrArchetypeAssigned  = errors.New("archetype already assigned")
	ErrInvalidQuizAnswers = errors.New("invalid quiz answers")

	ErrRaidNotFound     = errors.New("raid not found")
	ErrRaidNotActive    = errors.New("raid is not active")
	ErrRaidNotPreparing = errors.New("raid is not in preparing state")
	ErrNotParticipant   = errors.New("wallet has not joined this raid")

	ErrGuildNotFound  = errors.New("guild not found")
	ErrAlreadyInGuild = errors.New("wallet already belongs to a guild")
	ErrNotGuildMember = errors.New("wallet is not a member of this guild")
	ErrNotGuildLeader = errors.New("wallet is not a leader of this guild")

	ErrInvalidInput = errors.New("invalid input")
)
