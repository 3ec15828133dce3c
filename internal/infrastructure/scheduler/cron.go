package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"remindme/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// EveryMinute fires at second 0 of every minute.
const EveryMinute = "0 * * * * *"

// Scheduler manages cron jobs.
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex // To protect access to job management
	started bool
}

// NewScheduler creates a cron scheduler evaluating specs in loc. Jobs never
// overlap and a panicking job is logged instead of crashing the process.
func NewScheduler(loc *time.Location, log logger.Logger) *Scheduler {
	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithSeconds(), // Use seconds precision
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.DelayIfStillRunning(cl)),
	)
	return &Scheduler{
		cron: c,
		log:  log,
	}
}

// Start starts the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
	s.log.Info("Cron scheduler started.")
}

// AddJob adds a new job to the scheduler.
// spec follows the cron format with seconds (e.g., "0 30 * * * *").
// Returns the EntryID of the added job and an error if any.
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("Failed to add cron job", err)
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Info(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Stop stops the cron scheduler and waits for running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.started = false
	s.log.Info("Cron scheduler stopped.")
}

// Entries returns the list of scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: " + msg + formatKV(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg+formatKV(keysAndValues), err)
}

func formatKV(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
