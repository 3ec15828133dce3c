package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"remindme/internal/domain/entity"
	"remindme/internal/domain/timeofday"
	appErrors "remindme/internal/pkg/errors"
)

// fakeReminderRepo is an in-memory ReminderRepository with failure injection.
type fakeReminderRepo struct {
	mu        sync.Mutex
	seq       int
	reminders []*entity.Reminder

	createErr    error
	findDueErr   error
	updateErrFor map[string]error
	deleteErrFor map[string]error
	createCalls  int
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{
		updateErrFor: map[string]error{},
		deleteErrFor: map[string]error{},
	}
}

func (f *fakeReminderRepo) add(r entity.Reminder) *entity.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if r.ID == "" {
		r.ID = fmt.Sprintf("r%d", f.seq)
	}
	stored := r
	f.reminders = append(f.reminders, &stored)
	return &stored
}

func (f *fakeReminderRepo) get(id string) *entity.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reminders {
		if r.ID == id {
			c := *r
			return &c
		}
	}
	return nil
}

func (f *fakeReminderRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reminders)
}

func (f *fakeReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) (string, error) {
	f.mu.Lock()
	f.createCalls++
	err := f.createErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	stored := f.add(*reminder)
	reminder.ID = stored.ID
	return stored.ID, nil
}

func (f *fakeReminderRepo) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.OwnerID == ownerID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) FindDueAt(ctx context.Context, timeOfDay string) ([]*entity.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findDueErr != nil {
		return nil, f.findDueErr
	}
	var out []*entity.Reminder
	for _, r := range f.reminders {
		if r.TimeOfDay == timeOfDay {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) UpdateTimeOfDay(ctx context.Context, id string, timeOfDay string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErrFor[id]; err != nil {
		return err
	}
	for _, r := range f.reminders {
		if r.ID == id {
			r.TimeOfDay = timeOfDay
			return nil
		}
	}
	return fmt.Errorf("%w: %s", appErrors.ErrReminderNotFound, id)
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErrFor[id]; err != nil {
		return err
	}
	for i, r := range f.reminders {
		if r.ID == id {
			f.reminders = append(f.reminders[:i], f.reminders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeReminderRepo) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.reminders[:0]
	for _, r := range f.reminders {
		if r.OwnerID != ownerID {
			kept = append(kept, r)
		}
	}
	f.reminders = kept
	return nil
}

type sentMessage struct {
	OwnerID string
	Text    string
}

// fakeNotifier records deliveries and fails for the configured owners.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failed  []sentMessage
	failFor map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: map[string]bool{}}
}

func (n *fakeNotifier) SendMessage(ctx context.Context, ownerID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failFor[ownerID] {
		n.failed = append(n.failed, sentMessage{OwnerID: ownerID, Text: text})
		return fmt.Errorf("%w: %v", appErrors.ErrDelivery, errors.New("chat unreachable"))
	}
	n.sent = append(n.sent, sentMessage{OwnerID: ownerID, Text: text})
	return nil
}

func (n *fakeNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

// fakeClock is a settable clock for the time resolver.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var wita = time.FixedZone("WITA", 8*60*60)

// newTestResolver returns a resolver in UTC+8 whose clock starts at the given wall time.
func newTestResolver(hour, minute int) (*timeofday.Resolver, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, hour, minute, 0, 0, wita)}
	return timeofday.NewResolverWithClock(wita, clock.Now), clock
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErrors.ErrUserNotFound, userID)
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; ok {
		return fmt.Errorf("%w: duplicate user %s", appErrors.ErrDatabaseOperation, user.ID)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
	return nil
}
