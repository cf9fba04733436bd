// services/scheduler.go
package services

import (
	"log"
	"time"

	"fairway-pickem/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler advances tournament lifecycle as real-world
// dates pass: UPCOMING stops go ACTIVE at their first tee day and
// ACTIVE stops complete after their final round. Pick locking follows
// from status, so this job is the season's clock.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()

			var starting []models.Tournament
			err := s.DB.Where("status = ? AND start_time != ? AND start_time <= ?",
				models.StatusUpcoming, time.Time{}, now).
				Find(&starting).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range starting {
				t.Status = models.StatusActive
				if err := s.DB.Save(&t).Error; err != nil {
					log.Printf("[Scheduler] Failed to activate tournament %s: %v", t.ID, err)
				} else {
					log.Printf("[Scheduler] Tournament now active: %s (week %d)", t.Name, t.WeekNum)
				}
			}

			var ending []models.Tournament
			err = s.DB.Where("status = ? AND end_time != ? AND end_time <= ?",
				models.StatusActive, time.Time{}, now).
				Find(&ending).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}
			for _, t := range ending {
				t.Status = models.StatusCompleted
				if err := s.DB.Save(&t).Error; err != nil {
					log.Printf("[Scheduler] Failed to complete tournament %s: %v", t.ID, err)
				} else {
					log.Printf("[Scheduler] Tournament completed: %s (week %d)", t.Name, t.WeekNum)
				}
			}
		}),
	)
}
