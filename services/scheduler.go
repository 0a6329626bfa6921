// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRotationScheduler polls once a minute for rotation boundaries that
// have not been deployed yet. The poll is deliberately coarse: idempotence
// lives in the boundary keys, not in firing precision, so missed or late
// ticks just catch up on the next one.
func (s *QuestService) StartRotationScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			s.RotateDue(time.Now())
		}),
	)

	log.Printf("✅ Quest rotation scheduler started (boundary %02d:00 %s, weekly on %s)",
		s.Rotation.Hour, s.Rotation.Location, s.Rotation.WeeklyDay)
}
