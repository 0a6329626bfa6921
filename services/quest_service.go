package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RotationConfig pins the daily rotation instant: HH:00 in Location, weekly
// additionally only on WeeklyDay, monthly only on the 1st of the month.
type RotationConfig struct {
	Hour      int
	Location  *time.Location
	WeeklyDay time.Weekday
}

// LoadRotationConfig reads ROTATION_HOUR / ROTATION_TZ / ROTATION_WEEKLY_DAY
// with logged defaults (06:00 UTC, Monday).
func LoadRotationConfig() RotationConfig {
	cfg := RotationConfig{Hour: 6, Location: time.UTC, WeeklyDay: time.Monday}

	if v := os.Getenv("ROTATION_HOUR"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			cfg.Hour = h
		} else {
			log.Printf("⚠️  Invalid ROTATION_HOUR %q, using %d", v, cfg.Hour)
		}
	}
	if v := os.Getenv("ROTATION_TZ"); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		} else {
			log.Printf("⚠️  Invalid ROTATION_TZ %q, using UTC", v)
		}
	}
	if v := os.Getenv("ROTATION_WEEKLY_DAY"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 0 && d <= 6 {
			cfg.WeeklyDay = time.Weekday(d)
		} else {
			log.Printf("⚠️  Invalid ROTATION_WEEKLY_DAY %q, using Monday", v)
		}
	}
	return cfg
}

// currentBoundary returns the most recent rotation boundary for the cadence
// at or before now, or ok=false when the cadence has no boundary yet (e.g. a
// weekly cadence before its first configured weekday). Late polls resolve to
// the same boundary as on-time ones, which is what makes catch-up deploys
// safe.
func currentBoundary(cadence string, now time.Time, cfg RotationConfig) (time.Time, bool) {
	local := now.In(cfg.Location)
	boundary := time.Date(local.Year(), local.Month(), local.Day(), cfg.Hour, 0, 0, 0, cfg.Location)
	if boundary.After(local) {
		boundary = boundary.AddDate(0, 0, -1)
	}

	switch cadence {
	case models.QuestTypeDaily:
		return boundary, true
	case models.QuestTypeWeekly:
		// walk back to the configured weekday
		for boundary.Weekday() != cfg.WeeklyDay {
			boundary = boundary.AddDate(0, 0, -1)
		}
		return boundary, true
	case models.QuestTypeMonthly:
		boundary = time.Date(boundary.Year(), boundary.Month(), 1, cfg.Hour, 0, 0, 0, cfg.Location)
		if boundary.After(local) {
			boundary = boundary.AddDate(0, -1, 0)
		}
		return boundary, true
	}
	return time.Time{}, false
}

// boundaryKey is the idempotence key for one cadence boundary.
func boundaryKey(cadence string, boundary time.Time) string {
	return fmt.Sprintf("%s-%s", cadence, boundary.Format("2006-01-02"))
}

// cadenceLength is the availability window a freshly rotated quest gets.
func cadenceLength(cadence string, from time.Time) time.Time {
	switch cadence {
	case models.QuestTypeWeekly:
		return from.AddDate(0, 0, 7)
	case models.QuestTypeMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from.AddDate(0, 0, 1)
	}
}

type QuestService struct {
	DB       *gorm.DB
	Rotation RotationConfig
}

func NewQuestService(db *gorm.DB) *QuestService {
	return &QuestService{DB: db, Rotation: LoadRotationConfig()}
}

// RotateDue checks every cadence against now and deploys any boundary that
// has not been served yet. Firing twice within the same boundary is a no-op:
// the RotationDeployment insert collides and the batch is skipped.
func (s *QuestService) RotateDue(now time.Time) {
	for _, cadence := range []string{models.QuestTypeDaily, models.QuestTypeWeekly, models.QuestTypeMonthly} {
		boundary, ok := currentBoundary(cadence, now, s.Rotation)
		if !ok {
			continue
		}
		if err := s.deployBoundary(cadence, boundary, now); err != nil {
			log.Printf("[Rotation] %s deploy failed: %v", cadence, err)
		}
	}
}

func (s *QuestService) deployBoundary(cadence string, boundary, now time.Time) error {
	key := boundaryKey(cadence, boundary)

	var templates []models.QuestTemplate
	if err := s.DB.Where("type = ? AND active = ?", cadence, true).Find(&templates).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		deployment := models.RotationDeployment{
			ID:          uuid.NewString(),
			Cadence:     cadence,
			BoundaryKey: key,
			QuestCount:  len(templates),
			DeployedAt:  now,
		}
		if err := tx.Create(&deployment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil // boundary already deployed
			}
			return err
		}

		for _, t := range templates {
			quest := models.Quest{
				ID:            uuid.NewString(),
				Title:         t.Title,
				Description:   t.Description,
				Type:          t.Type,
				XPReward:      t.XPReward,
				AvailableFrom: now,
				ExpiresAt:     cadenceLength(cadence, now),
				Status:        models.QuestStatusAvailable,
			}
			if err := tx.Create(&quest).Error; err != nil {
				return err
			}
		}

		log.Printf("✅ Rotation deployed %d %s quest(s) for boundary %s", len(templates), cadence, key)
		return nil
	})
}

// GetAvailableQuests lists quests the wallet can still work on: not expired,
// not raid-bound, and not already completed by this wallet. questType narrows
// to one cadence when non-empty.
func (s *QuestService) GetAvailableQuests(wallet, questType string) ([]models.Quest, error) {
	now := time.Now()
	q := s.DB.Where("status = ? AND expires_at > ? AND raid_boss_id IS NULL", models.QuestStatusAvailable, now).
		Where("id NOT IN (?)", s.DB.Model(&models.QuestCompletion{}).Select("quest_id").Where("wallet = ?", wallet))
	if questType != "" {
		q = q.Where("type = ?", questType)
	}

	var quests []models.Quest
	err := q.Order("type ASC, sort_order ASC, created_at ASC").Find(&quests).Error
	return quests, err
}

// GetQuest fetches one quest with its completed-by set.
func (s *QuestService) GetQuest(id string) (*models.Quest, error) {
	var quest models.Quest
	if err := s.DB.Preload("Completions").First(&quest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	return &quest, nil
}

// CreateQuest is the admin path for one-off quests outside the rotation.
func (s *QuestService) CreateQuest(title, description, questType string, xpReward int64, availableFrom, expiresAt time.Time) (*models.Quest, error) {
	if title == "" || xpReward <= 0 {
		return nil, ErrInvalidInput
	}
	switch questType {
	case models.QuestTypeDaily, models.QuestTypeWeekly, models.QuestTypeMonthly:
	default:
		return nil, ErrInvalidInput
	}
	if !expiresAt.After(availableFrom) {
		return nil, ErrInvalidInput
	}

	quest := models.Quest{
		ID:            uuid.NewString(),
		Title:         title,
		Description:   description,
		Type:          questType,
		XPReward:      xpReward,
		AvailableFrom: availableFrom,
		ExpiresAt:     expiresAt,
		Status:        models.QuestStatusAvailable,
	}
	if err := s.DB.Create(&quest).Error; err != nil {
		return nil, err
	}
	return &quest, nil
}

// CreateTemplate adds an entry to a cadence rotation pool.
func (s *QuestService) CreateTemplate(title, description, questType string, xpReward int64) (*models.QuestTemplate, error) {
	if title == "" || xpReward <= 0 {
		return nil, ErrInvalidInput
	}
	switch questType {
	case models.QuestTypeDaily, models.QuestTypeWeekly, models.QuestTypeMonthly:
	default:
		return nil, ErrInvalidInput
	}

	tpl := models.QuestTemplate{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Type:        questType,
		XPReward:    xpReward,
		Active:      true,
	}
	if err := s.DB.Create(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// SetTemplateActive toggles a template in or out of its rotation pool.
func (s *QuestService) SetTemplateActive(id string, active bool) error {
	res := s.DB.Model(&models.QuestTemplate{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuestNotFound
	}
	return nil
}

// ListTemplates returns the rotation pools, optionally filtered by cadence.
func (s *QuestService) ListTemplates(questType string) ([]models.QuestTemplate, error) {
	q := s.DB.Order("type ASC, created_at ASC")
	if questType != "" {
		q = q.Where("type = ?", questType)
	}
	var templates []models.QuestTemplate
	err := q.Find(&templates).Error
	return templates, err
}
