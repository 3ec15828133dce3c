package service

import "context"

// TickResult summarizes the processing of one minute.
type TickResult struct {
	TimeOfDay      string
	Due            int
	Delivered      int
	DeliveryFailed int
	Advanced       int
	Deleted        int
	StoreErrors    int
}

// SchedulerService defines the interface of the per-minute reminder loop.
type SchedulerService interface {
	// Start registers the minute job and starts the timer.
	Start() error
	// Tick processes every minute that is due since the previous tick.
	Tick(ctx context.Context) []TickResult
	// ProcessDueAt delivers and reschedules or deletes the reminders due at timeOfDay.
	ProcessDueAt(ctx context.Context, timeOfDay string) TickResult
	// Stop stops the timer and waits for a running tick.
	Stop()
}
