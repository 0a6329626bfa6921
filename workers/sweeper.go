package workers

import (
	"context"
	"log"
	"time"

	"quest-raid-system/models"

	"gorm.io/gorm"
)

// Sweeper enforces the business-level timeouts: quests past their expiry
// flip to expired, active raids past their deadline fail. Like the rotation
// poll it is a coarse loop — correctness lives in the timestamp comparisons,
// not in tick precision.
type Sweeper struct {
	DB *gorm.DB
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{DB: db}
}

// Run polls until the context is cancelled.
func (w *Sweeper) Run(ctx context.Context, interval time.Duration) {
	log.Printf("Starting expiry sweeper (every %s)...", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(time.Now())
		}
	}
}

func (w *Sweeper) sweep(now time.Time) {
	// Expiry is checked at read time too; this just keeps the stored status
	// honest for listings and dashboards.
	res := w.DB.Model(&models.Quest{}).
		Where("status = ? AND raid_boss_id IS NULL AND expires_at <= ?", models.QuestStatusAvailable, now).
		Update("status", models.QuestStatusExpired)
	if res.Error != nil {
		log.Printf("[Sweeper] quest expiry failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[Sweeper] expired %d quest(s)", res.RowsAffected)
	}

	// Active raids past their deadline fail; rewards already earned per
	// quest stand, the completion bonus is never paid.
	res = w.DB.Model(&models.RaidBoss{}).
		Where("state = ? AND deadline IS NOT NULL AND deadline <= ?", models.RaidStateActive, now).
		Updates(map[string]interface{}{
			"state":    models.RaidStateFailed,
			"end_time": now,
		})
	if res.Error != nil {
		log.Printf("[Sweeper] raid deadline check failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("💀 [Sweeper] failed %d raid(s) past deadline", res.RowsAffected)
	}
}
