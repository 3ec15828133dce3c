package handler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"remindme/internal/application/service"
	"remindme/internal/domain/repository"
	"remindme/internal/domain/timeofday"
	"remindme/internal/infrastructure/database/sqlite"
	"remindme/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var wita = time.FixedZone("WITA", 8*60*60)

type testEnv struct {
	commands     *CommandHandler
	users        service.UserService
	reminders    service.ReminderService
	reminderRepo repository.ReminderRepository
	userRepo     repository.UserRepository
}

// setupTestEnv wires the real services over a private in-memory database.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sqlite.Open(dsn, logger.Discard(), false)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() {
		require.NoError(t, sqlite.Close(db))
	})

	log := logger.Discard()
	resolver := timeofday.NewResolverWithClock(wita, func() time.Time {
		return time.Date(2024, 5, 1, 8, 0, 0, 0, wita)
	})
	reminderRepo := sqlite.NewReminderRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	users := service.NewUserService(userRepo, reminderRepo, log)
	reminders := service.NewReminderService(reminderRepo, resolver, log)

	return testEnv{
		commands:     NewCommandHandler(users, reminders, resolver, "Test bot", log),
		users:        users,
		reminders:    reminders,
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
	}
}

type sentMessage struct {
	OwnerID string
	Text    string
}

// recordingNotifier records every message instead of sending it.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) SendMessage(ctx context.Context, ownerID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{OwnerID: ownerID, Text: text})
	return nil
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}
