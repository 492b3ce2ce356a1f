package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/realtime"
	"github.com/homebites/backend/internal/service"
	"github.com/homebites/backend/internal/testhelpers"
)

func TestNotificationService_CreateAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewNotificationService(db, realtime.NewHub())
	ctx := context.Background()

	user := testhelpers.CreateCustomer(t, db, "notifuser")

	first, err := svc.Create(ctx, user.ID, "first")
	require.NoError(t, err)
	assert.False(t, first.Read)
	assert.Nil(t, first.ReadAt)

	_, err = svc.Create(ctx, user.ID, "second")
	require.NoError(t, err)

	notes, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Message, "newest first")
}

func TestNotificationService_NilHub(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewNotificationService(db, nil)

	user := testhelpers.CreateCustomer(t, db, "nilhubuser")

	// Creating without a hub persists but skips the push
	n, err := svc.Create(context.Background(), user.ID, "offline")
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestNotificationService_MarkRead(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewNotificationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateCustomer(t, db, "readuser")
	n, err := svc.Create(ctx, user.ID, "hello")
	require.NoError(t, err)

	read, err := svc.MarkRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)
	require.NotNil(t, read.ReadAt)

	t.Run("mark all read", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, "a")
		require.NoError(t, err)
		_, err = svc.Create(ctx, user.ID, "b")
		require.NoError(t, err)

		require.NoError(t, svc.MarkAllRead(ctx, user.ID))

		notes, err := svc.ListForUser(ctx, user.ID)
		require.NoError(t, err)
		for _, note := range notes {
			assert.True(t, note.Read)
			assert.NotNil(t, note.ReadAt)
		}
	})
}

func TestNotificationService_SweepOnce(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewNotificationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateCustomer(t, db, "sweepuser")

	// Read long ago: should be swept
	old := time.Now().Add(-48 * time.Hour)
	stale := models.Notification{ID: uuid.New(), UserID: user.ID, Message: "stale", Read: true, ReadAt: &old}
	require.NoError(t, db.Create(&stale).Error)

	// Read recently: kept
	recent := time.Now().Add(-time.Hour)
	fresh := models.Notification{ID: uuid.New(), UserID: user.ID, Message: "fresh", Read: true, ReadAt: &recent}
	require.NoError(t, db.Create(&fresh).Error)

	// Unread: kept regardless of age
	_, err := svc.Create(ctx, user.ID, "unread")
	require.NoError(t, err)

	deleted, err := svc.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	notes, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
	for _, note := range notes {
		assert.NotEqual(t, "stale", note.Message)
	}
}
