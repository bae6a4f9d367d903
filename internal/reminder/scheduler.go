// Package reminder scans review plans on a schedule and queues a reminder
// job for every user whose preferred time has arrived and who still has
// words due.
package reminder

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/SteampunkGill/readmemory/internal/logger"
	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/repository"
	"github.com/SteampunkGill/readmemory/internal/worker"
)

// Dispatcher queues reminder jobs for delivery.
type Dispatcher interface {
	Submit(job worker.Job) error
}

type Scheduler struct {
	cron        *gocron.Scheduler
	settings    repository.SettingsRepository
	vocab       repository.VocabularyRepository
	dispatcher  Dispatcher
	scanMinutes int
	clock       func() time.Time
	log         *logger.Logger
}

func NewScheduler(settings repository.SettingsRepository, vocab repository.VocabularyRepository, dispatcher Dispatcher, scanMinutes int, clock func() time.Time) *Scheduler {
	if scanMinutes <= 0 {
		scanMinutes = 5
	}
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		cron:        gocron.NewScheduler(time.UTC),
		settings:    settings,
		vocab:       vocab,
		dispatcher:  dispatcher,
		scanMinutes: scanMinutes,
		clock:       clock,
		log:         logger.Default().WithPrefix("reminder"),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.Every(s.scanMinutes).Minutes().Do(s.scan); err != nil {
		return err
	}
	s.cron.StartAsync()
	s.log.Info("reminder scan running every %d minutes", s.scanMinutes)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("reminder scheduler stopped")
}

// scan covers every minute since the previous tick so a preferred time
// falling between ticks is not missed. Users are deduplicated per scan.
func (s *Scheduler) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = logger.NewContext(ctx, s.log)

	now := s.clock().UTC().Truncate(time.Minute)
	seen := make(map[int64]bool)
	queued := 0

	for i := 0; i < s.scanMinutes; i++ {
		hhmm := now.Add(-time.Duration(i) * time.Minute).Format("15:04")
		plans, err := s.settings.RemindersDue(ctx, hhmm)
		if err != nil {
			s.log.Error("reminder scan failed for %s: %v", hhmm, err)
			continue
		}

		for _, plan := range plans {
			if seen[plan.UserID] {
				continue
			}
			seen[plan.UserID] = true

			_, due, err := s.vocab.CountEligible(ctx, models.DueWordFilter{UserID: plan.UserID}, now)
			if err != nil {
				s.log.Error("due count failed for user %d: %v", plan.UserID, err)
				continue
			}
			if due == 0 {
				continue
			}

			job := &DispatchJob{UserID: plan.UserID, DueCount: due, PreferredTime: plan.PreferredTime}
			if err := s.dispatcher.Submit(job); err != nil {
				s.log.Warn("could not queue reminder for user %d: %v", plan.UserID, err)
				continue
			}
			queued++
		}
	}

	if queued > 0 {
		s.log.Info("queued %d review reminders", queued)
	}
}
