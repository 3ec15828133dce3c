package service

import (
	"context"
	"fmt"
	"testing"

	"remindme/internal/application/dto"
	"remindme/internal/domain/constant"
	"remindme/internal/domain/entity"
	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReminderService(t *testing.T) (ReminderService, *fakeReminderRepo) {
	t.Helper()
	resolver, _ := newTestResolver(8, 0)
	repo := newFakeReminderRepo()
	return NewReminderService(repo, resolver, logger.Discard()), repo
}

func Test_reminderService_CreateReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store a one-shot reminder", func(t *testing.T) {
		svc, repo := newTestReminderService(t)

		got, err := svc.CreateReminder(ctx, dto.CreateReminderRequest{OwnerID: "owner-1", Text: "drink water", Time: "09:00"})

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "drink water", got.Text)
		assert.Equal(t, "09:00", got.TimeOfDay)
		assert.Equal(t, constant.RepeatNone, got.Repeat)

		stored := repo.get(got.ID)
		require.NotNil(t, stored)
		assert.Equal(t, "owner-1", stored.OwnerID)
		assert.False(t, stored.IsRepeating())
	})

	t.Run("Should store a repeating reminder", func(t *testing.T) {
		svc, repo := newTestReminderService(t)

		got, err := svc.CreateReminder(ctx, dto.CreateReminderRequest{OwnerID: "owner-1", Text: "stretch", Time: "13:30", RepeatToken: "2h"})

		require.NoError(t, err)
		assert.Equal(t, constant.RepeatInterval(2), got.Repeat)
		assert.Equal(t, constant.RepeatInterval(2), repo.get(got.ID).RepeatHours)
	})

	tests := []struct {
		name    string
		req     dto.CreateReminderRequest
		wantErr error
	}{
		{
			name:    "Should reject a repeat interval above 10h",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "09:00", RepeatToken: "11h"},
			wantErr: appErrors.ErrInvalidRepeatToken,
		},
		{
			name:    "Should reject a zero-padded repeat interval",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "09:00", RepeatToken: "01h"},
			wantErr: appErrors.ErrInvalidRepeatToken,
		},
		{
			name:    "Should reject a zero-padded upper bound",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "09:00", RepeatToken: "010h"},
			wantErr: appErrors.ErrInvalidRepeatToken,
		},
		{
			name:    "Should reject a zero repeat interval",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "09:00", RepeatToken: "0h"},
			wantErr: appErrors.ErrInvalidRepeatToken,
		},
		{
			name:    "Should reject an hour out of range",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "25:00"},
			wantErr: appErrors.ErrInvalidTimeFormat,
		},
		{
			name:    "Should reject a single-digit hour",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "9:00"},
			wantErr: appErrors.ErrInvalidTimeFormat,
		},
		{
			name:    "Should reject blank text",
			req:     dto.CreateReminderRequest{OwnerID: "owner-1", Text: "   ", Time: "09:00"},
			wantErr: appErrors.ErrMissingArguments,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestReminderService(t)

			_, err := svc.CreateReminder(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.createCalls, "nothing may be persisted on validation failure")
			assert.Zero(t, repo.count())
		})
	}

	t.Run("Should surface store failures", func(t *testing.T) {
		svc, repo := newTestReminderService(t)
		repo.createErr = fmt.Errorf("%w: disk full", appErrors.ErrDatabaseOperation)

		_, err := svc.CreateReminder(ctx, dto.CreateReminderRequest{OwnerID: "owner-1", Text: "x", Time: "09:00"})

		assert.ErrorIs(t, err, appErrors.ErrDatabaseOperation)
	})
}

func Test_reminderService_ListReminders(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestReminderService(t)

	empty, err := svc.ListReminders(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	repo.add(entity.Reminder{OwnerID: "owner-1", Text: "a", TimeOfDay: "10:00"})
	repo.add(entity.Reminder{OwnerID: "owner-2", Text: "other", TimeOfDay: "10:00"})
	repo.add(entity.Reminder{OwnerID: "owner-1", Text: "b", TimeOfDay: "07:00", RepeatHours: 3})

	list, err := svc.ListReminders(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Text)
	assert.Equal(t, "b", list[1].Text)
	assert.Equal(t, constant.RepeatInterval(3), list[1].Repeat)
}

func Test_reminderService_CompleteReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove the reminder at the given position only", func(t *testing.T) {
		svc, repo := newTestReminderService(t)
		first := repo.add(entity.Reminder{OwnerID: "owner-1", Text: "a", TimeOfDay: "08:00"})
		second := repo.add(entity.Reminder{OwnerID: "owner-1", Text: "b", TimeOfDay: "09:00"})
		third := repo.add(entity.Reminder{OwnerID: "owner-1", Text: "c", TimeOfDay: "10:00"})

		got, err := svc.CompleteReminder(ctx, dto.CompleteReminderRequest{OwnerID: "owner-1", Index: 2})

		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		assert.Nil(t, repo.get(second.ID))

		list, err := svc.ListReminders(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, third.ID, list[1].ID)
	})

	t.Run("Should only see the caller's reminders", func(t *testing.T) {
		svc, repo := newTestReminderService(t)
		other := repo.add(entity.Reminder{OwnerID: "owner-2", Text: "theirs", TimeOfDay: "08:00"})
		mine := repo.add(entity.Reminder{OwnerID: "owner-1", Text: "mine", TimeOfDay: "09:00"})

		got, err := svc.CompleteReminder(ctx, dto.CompleteReminderRequest{OwnerID: "owner-1", Index: 1})

		require.NoError(t, err)
		assert.Equal(t, mine.ID, got.ID)
		assert.NotNil(t, repo.get(other.ID))
	})

	for _, index := range []int{0, -1, 4} {
		t.Run(fmt.Sprintf("Should reject index %d", index), func(t *testing.T) {
			svc, repo := newTestReminderService(t)
			repo.add(entity.Reminder{OwnerID: "owner-1", Text: "a", TimeOfDay: "08:00"})
			repo.add(entity.Reminder{OwnerID: "owner-1", Text: "b", TimeOfDay: "09:00"})
			repo.add(entity.Reminder{OwnerID: "owner-1", Text: "c", TimeOfDay: "10:00"})

			_, err := svc.CompleteReminder(ctx, dto.CompleteReminderRequest{OwnerID: "owner-1", Index: index})

			assert.ErrorIs(t, err, appErrors.ErrInvalidIndex)
			assert.Equal(t, 3, repo.count())
		})
	}

	t.Run("Should reject any index when the list is empty", func(t *testing.T) {
		svc, _ := newTestReminderService(t)

		_, err := svc.CompleteReminder(ctx, dto.CompleteReminderRequest{OwnerID: "owner-1", Index: 1})

		assert.ErrorIs(t, err, appErrors.ErrInvalidIndex)
	})
}
