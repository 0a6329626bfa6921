package services

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"

	"quest-raid-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type GuildService struct {
	DB *gorm.DB
}

func NewGuildService(db *gorm.DB) *GuildService {
	return &GuildService{DB: db}
}

// ArchetypeDisplayName renders an archetype value for UI surfaces, e.g.
// "party_animal" → "Party Animal".
func ArchetypeDisplayName(archetype string) string {
	title := cases.Title(language.English)
	return title.String(strings.ReplaceAll(archetype, "_", " "))
}

// CreateGuild creates a guild. Core guilds must use one of the four fixed
// archetypes; community guilds may use any non-empty label.
func (s *GuildService) CreateGuild(name, description, imageURL, archetype string, isCore bool) (*models.Guild, error) {
	if name == "" || archetype == "" {
		return nil, ErrInvalidInput
	}
	if isCore && !validArchetype(archetype) {
		return nil, ErrInvalidInput
	}

	guild := models.Guild{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
		ImageURL:    imageURL,
		Archetype:   archetype,
		IsCore:      isCore,
	}
	if err := s.DB.Create(&guild).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInvalidInput // slug taken
		}
		return nil, err
	}
	return &guild, nil
}

func validArchetype(archetype string) bool {
	for _, a := range models.Archetypes {
		if a == archetype {
			return true
		}
	}
	return false
}

// Join adds a wallet to a guild. The global unique index on member wallets is
// the one-guild-per-player rule, so joining while already in a guild
// (including this one) collides and reports ErrAlreadyInGuild.
func (s *GuildService) Join(guildID, wallet string) (*models.GuildMember, error) {
	var guild models.Guild
	if err := s.DB.First(&guild, "id = ?", guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}

	member := models.GuildMember{
		ID:       uuid.NewString(),
		GuildID:  guildID,
		Wallet:   wallet,
		JoinedAt: time.Now(),
	}
	if err := s.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInGuild
		}
		return nil, err
	}
	return &member, nil
}

// Leave removes the wallet from whatever guild it belongs to.
func (s *GuildService) Leave(wallet string) error {
	res := s.DB.Where("wallet = ?", wallet).Delete(&models.GuildMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotGuildMember
	}
	return nil
}

// SetLeader flags or unflags a member as guild leader.
func (s *GuildService) SetLeader(guildID, wallet string, isLeader bool) error {
	res := s.DB.Model(&models.GuildMember{}).
		Where("guild_id = ? AND wallet = ?", guildID, wallet).
		Update("is_leader", isLeader)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotGuildMember
	}
	return nil
}

// UpdateGuild edits name-independent fields. Callers gate this to guild
// leaders or admins.
func (s *GuildService) UpdateGuild(guildID, description, imageURL string) (*models.Guild, error) {
	var guild models.Guild
	if err := s.DB.First(&guild, "id = ?", guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}
	if description != "" {
		guild.Description = description
	}
	if imageURL != "" {
		guild.ImageURL = imageURL
	}
	if err := s.DB.Save(&guild).Error; err != nil {
		return nil, err
	}
	return &guild, nil
}

// IsLeader reports whether the wallet is a leader of the guild.
func (s *GuildService) IsLeader(guildID, wallet string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.GuildMember{}).
		Where("guild_id = ? AND wallet = ? AND is_leader = ?", guildID, wallet, true).
		Count(&count).Error
	return count > 0, err
}

// SoftDelete retires a guild. Rows stay around for history; membership is
// released so players can join elsewhere.
func (s *GuildService) SoftDelete(guildID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Guild{}, "id = ?", guildID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGuildNotFound
		}
		return tx.Where("guild_id = ?", guildID).Delete(&models.GuildMember{}).Error
	})
}

// loadStats computes the derived aggregates from current member experience.
// Always recomputed at read time — never stored — so guild rollups can't
// drift from player mutations.
func (s *GuildService) loadStats(guild *models.Guild) error {
	var members []models.GuildMember
	if err := s.DB.Where("guild_id = ?", guild.ID).Find(&members).Error; err != nil {
		return err
	}
	guild.MemberCount = int64(len(members))
	if len(members) == 0 {
		return nil
	}

	wallets := make([]string, 0, len(members))
	for _, m := range members {
		wallets = append(wallets, m.Wallet)
	}

	var players []models.Player
	if err := s.DB.Where("wallet_address IN ?", wallets).Find(&players).Error; err != nil {
		return err
	}

	var totalXP, levelSum int64
	for _, p := range players {
		totalXP += p.Experience
		levelSum += int64(CalculateLevel(p.Experience).Level)
	}
	guild.TotalXP = totalXP
	if len(players) > 0 {
		guild.AverageLevel = float64(levelSum) / float64(len(players))
	}
	return nil
}

// GetGuild loads a guild with members and derived stats.
func (s *GuildService) GetGuild(guildID string) (*models.Guild, error) {
	var guild models.Guild
	if err := s.DB.Preload("Members").First(&guild, "id = ?", guildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, err
	}
	if err := s.loadStats(&guild); err != nil {
		return nil, err
	}
	return &guild, nil
}

// ListGuilds returns all live guilds with derived stats, ranked by total XP.
func (s *GuildService) ListGuilds() ([]models.Guild, error) {
	var guilds []models.Guild
	if err := s.DB.Order("created_at ASC").Find(&guilds).Error; err != nil {
		return nil, err
	}
	for i := range guilds {
		if err := s.loadStats(&guilds[i]); err != nil {
			return nil, err
		}
	}
	// rank by derived total XP
	sort.SliceStable(guilds, func(i, j int) bool { return guilds[i].TotalXP > guilds[j].TotalXP })
	return guilds, nil
}

// MemberWallet finds the guild a wallet currently belongs to, if any.
func (s *GuildService) MemberWallet(wallet string) (*models.GuildMember, error) {
	var member models.GuildMember
	err := s.DB.Where("wallet = ?", wallet).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// --- Archetype quiz -------------------------------------------------------

// SampleQuizQuestions draws a random fixed-size sample from the static pool.
func SampleQuizQuestions(rng *rand.Rand) []models.QuizQuestion {
	n := models.QuizSampleSize
	if n > len(models.QuizPool) {
		n = len(models.QuizPool)
	}
	perm := rng.Perm(len(models.QuizPool))
	sample := make([]models.QuizQuestion, 0, n)
	for _, idx := range perm[:n] {
		sample = append(sample, models.QuizPool[idx])
	}
	return sample
}

// resolveAnswers maps (questionID → choiceID) answers onto the archetype
// each chosen option feeds. A submission must answer exactly one full sample,
// and every answered question must exist in the pool and name one of its own
// choices.
func resolveAnswers(answers map[string]string) ([]string, error) {
	if len(answers) != models.QuizSampleSize {
		return nil, ErrInvalidQuizAnswers
	}

	byID := make(map[string]models.QuizQuestion, len(models.QuizPool))
	for _, q := range models.QuizPool {
		byID[q.ID] = q
	}

	selected := make([]string, 0, len(answers))
	for questionID, choiceID := range answers {
		question, ok := byID[questionID]
		if !ok {
			return nil, ErrInvalidQuizAnswers
		}
		found := false
		for _, c := range question.Choices {
			if c.ID == choiceID {
				selected = append(selected, c.Archetype)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidQuizAnswers
		}
	}
	return selected, nil
}

// PickArchetype draws uniformly from the archetypes the answers selected —
// duplicates included, so an archetype picked three times is three times as
// likely. The draw never produces an archetype absent from the answer set;
// this weighted-random design is deliberate and is not a majority vote.
func PickArchetype(selected []string, rng *rand.Rand) string {
	return selected[rng.Intn(len(selected))]
}

// SubmitQuiz resolves a player's quiz answers to an archetype and writes it
// once. Re-running the quiz after assignment is blocked.
func (s *GuildService) SubmitQuiz(wallet string, answers map[string]string, rng *rand.Rand) (string, error) {
	selected, err := resolveAnswers(answers)
	if err != nil {
		return "", err
	}
	archetype := PickArchetype(selected, rng)

	// Guarded write: only an unset archetype can be claimed, so a retry or a
	// second device racing this one cannot reassign.
	res := s.DB.Model(&models.Player{}).
		Where("wallet_address = ? AND archetype = ''", wallet).
		Update("archetype", archetype)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		var player models.Player
		if err := s.DB.Where("wallet_address = ?", wallet).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrPlayerNotFound
			}
			return "", err
		}
		return player.Archetype, ErrArchetypeAssigned
	}
	return archetype, nil
}
