package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"remindme/internal/domain/entity"
	"remindme/internal/domain/repository"
	"remindme/internal/domain/timeofday"
	"remindme/internal/infrastructure/scheduler"
	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	// A tick may process minutes it missed because of timer jitter, but never
	// more than this far back. Longer gaps (downtime, suspend) are skipped.
	maxCatchUp = 5 * time.Minute
	// Upper bound for a single delivery attempt.
	deliveryTimeout = 30 * time.Second
)

type schedulerService struct {
	cronScheduler *scheduler.Scheduler // The infrastructure scheduler
	reminderRepo  repository.ReminderRepository
	notifier      Notifier
	resolver      *timeofday.Resolver
	log           logger.Logger

	mu         sync.Mutex // Serializes ticks and guards lastMinute
	lastMinute time.Time  // Last processed minute, zero before the first tick

	jobMu sync.Mutex
	jobID cron.EntryID // Minute job, zero while not started
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	reminderRepo repository.ReminderRepository,
	notifier Notifier,
	resolver *timeofday.Resolver,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		cronScheduler: cronScheduler,
		reminderRepo:  reminderRepo,
		notifier:      notifier,
		resolver:      resolver,
		log:           log,
	}
}

// Start registers the minute job and starts the cron timer.
func (s *schedulerService) Start() error {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()
	if s.jobID != 0 {
		return nil
	}

	entryID, err := s.cronScheduler.AddJob(scheduler.EveryMinute, func() {
		// Use background context for cron job execution
		s.Tick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.jobID = entryID
	s.cronScheduler.Start()
	s.log.Info(fmt.Sprintf("Reminder tick scheduled every minute in %s (Job ID: %d)", s.resolver.Location(), entryID))
	return nil
}

// Tick processes the current minute plus any minute skipped since the last
// tick, within maxCatchUp. A minute is never processed twice.
func (s *schedulerService) Tick(ctx context.Context) []TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.resolver.Instant().Truncate(time.Minute)
	start := now
	if !s.lastMinute.IsZero() {
		if !now.After(s.lastMinute) {
			s.log.Debug(fmt.Sprintf("Minute %s already processed, skipping tick.", s.resolver.Minute(now)))
			return nil
		}
		if now.Sub(s.lastMinute) <= maxCatchUp {
			start = s.lastMinute.Add(time.Minute)
		} else {
			s.log.Warn(fmt.Sprintf("Last tick was at %s, skipping missed minutes up to %s.",
				s.resolver.Minute(s.lastMinute), s.resolver.Minute(now)))
		}
	}

	var results []TickResult
	for m := start; !m.After(now); m = m.Add(time.Minute) {
		results = append(results, s.ProcessDueAt(ctx, s.resolver.Minute(m)))
	}
	s.lastMinute = now
	return results
}

// ProcessDueAt runs one minute of the reminder lifecycle. Failures are isolated
// per reminder; none of them stops the rest of the batch.
func (s *schedulerService) ProcessDueAt(ctx context.Context, timeOfDay string) TickResult {
	result := TickResult{TimeOfDay: timeOfDay}
	s.log.Debug(fmt.Sprintf("Running reminder tick for %s", timeOfDay))

	due, err := s.reminderRepo.FindDueAt(ctx, timeOfDay)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to query reminders due at %s", timeOfDay), err)
		result.StoreErrors++
		return result
	}
	result.Due = len(due)
	if len(due) == 0 {
		s.log.Debug(fmt.Sprintf("No reminders due at %s.", timeOfDay))
		return result
	}

	for _, reminder := range due {
		s.processReminder(ctx, reminder, &result)
	}

	s.log.Info(fmt.Sprintf("Tick %s complete. Due: %d, Delivered: %d, Failed deliveries: %d, Advanced: %d, Deleted: %d, Store errors: %d",
		timeOfDay, result.Due, result.Delivered, result.DeliveryFailed, result.Advanced, result.Deleted, result.StoreErrors))
	return result
}

// processReminder delivers one reminder, then advances or deletes it whether
// or not the delivery succeeded.
func (s *schedulerService) processReminder(ctx context.Context, reminder *entity.Reminder, result *TickResult) {
	if err := s.deliver(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to deliver reminder %s to owner %s", reminder.ID, reminder.OwnerID), err)
		result.DeliveryFailed++
	} else {
		s.log.Info(fmt.Sprintf("Delivered reminder %s to owner %s", reminder.ID, reminder.OwnerID))
		result.Delivered++
	}

	if !reminder.IsRepeating() {
		if err := s.reminderRepo.Delete(ctx, reminder.ID); err != nil {
			s.log.Error(fmt.Sprintf("Failed to delete one-shot reminder %s", reminder.ID), err)
			result.StoreErrors++
			return
		}
		s.log.Info(fmt.Sprintf("Deleted one-shot reminder %s", reminder.ID))
		result.Deleted++
		return
	}

	next, err := timeofday.Advance(reminder.TimeOfDay, reminder.RepeatHours.Hours())
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to compute next time for reminder %s", reminder.ID), err)
		result.StoreErrors++
		return
	}
	if err := s.reminderRepo.UpdateTimeOfDay(ctx, reminder.ID, next); err != nil {
		if errors.Is(err, appErrors.ErrReminderNotFound) {
			s.log.Warn(fmt.Sprintf("Reminder %s was deleted before it could be rescheduled.", reminder.ID))
			return
		}
		s.log.Error(fmt.Sprintf("Failed to reschedule reminder %s to %s", reminder.ID, next), err)
		result.StoreErrors++
		return
	}
	s.log.Info(fmt.Sprintf("Rescheduled reminder %s from %s to %s", reminder.ID, reminder.TimeOfDay, next))
	result.Advanced++
}

func (s *schedulerService) deliver(ctx context.Context, reminder *entity.Reminder) error {
	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()
	return s.notifier.SendMessage(ctx, reminder.OwnerID, NotificationText(reminder))
}

// NotificationText renders the message delivered when a reminder fires.
func NotificationText(reminder *entity.Reminder) string {
	return fmt.Sprintf("⏰ Reminder: %s", reminder.Text)
}

// Stop stops the underlying scheduler, waiting for a running tick, and
// removes the minute job so Start can register it again.
func (s *schedulerService) Stop() {
	s.cronScheduler.Stop()

	s.jobMu.Lock()
	defer s.jobMu.Unlock()
	if s.jobID != 0 {
		s.cronScheduler.RemoveJob(s.jobID)
		s.jobID = 0
	}
}
