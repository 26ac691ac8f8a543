package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNotify_PersistsAndPushesToMembers(t *testing.T) {
	fx := newNotificationFixture()
	fandomID := fx.store.addFandom("speedrunners", "u1", "u2")

	out, err := fx.notify.Notify(context.Background(), fandomID, "u1", models.NotificationNewPost)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Positive(t, out.ID)
	assert.Equal(t, fandomID, out.FandomID)
	assert.Equal(t, "u1", out.NotifierID)
	assert.Equal(t, models.NotificationNewPost, out.Type)
	assert.False(t, out.CreatedAt.IsZero())

	require.Len(t, fx.pusher.calls, 1)
	call := fx.pusher.calls[0]
	assert.Equal(t, EventReceiveNotification, call.event)
	// the notifier is a member too and gets the push
	assert.Equal(t, []string{"u1", "u2"}, call.userIDs)
	assert.Equal(t, out, call.payload)
}

func TestNotify_RejectsUnknownType(t *testing.T) {
	fx := newNotificationFixture()
	fandomID := fx.store.addFandom("f", "u1")

	_, err := fx.notify.Notify(context.Background(), fandomID, "u1", "Birthday")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, fx.pusher.calls)
}

func TestNotify_UnknownFandom(t *testing.T) {
	fx := newNotificationFixture()

	_, err := fx.notify.Notify(context.Background(), 999, "u1", models.NotificationNewEvent)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, fx.pusher.calls)
}

func TestNotify_StoreFailureSkipsPush(t *testing.T) {
	fx := newNotificationFixture()
	fandomID := fx.store.addFandom("f", "u1")
	fx.store.failNotificationCreate = errors.New("db down")

	_, err := fx.notify.Notify(context.Background(), fandomID, "u1", models.NotificationNewPost)
	require.Error(t, err)
	assert.Empty(t, fx.pusher.calls)
}

func TestNotify_MemberLookupFailureStillReturnsNotification(t *testing.T) {
	fx := newNotificationFixture()
	fandomID := fx.store.addFandom("f", "u1")
	fx.store.failMembers = errors.New("timeout")

	out, err := fx.notify.Notify(context.Background(), fandomID, "u1", models.NotificationNewPost)
	require.NoError(t, err)
	assert.Positive(t, out.ID)
	assert.Empty(t, fx.pusher.calls)

	// the stored notification is still visible through the read model
	list, err := fx.notify.GetNotificationsWithViewed(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNotify_PushFailureIsNotAnError(t *testing.T) {
	fx := newNotificationFixture()
	fandomID := fx.store.addFandom("f", "u1")
	fx.pusher.err = errors.New("redis unavailable")

	out, err := fx.notify.Notify(context.Background(), fandomID, "u1", models.NotificationNewEvent)
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestGetNotificationsWithViewed_OrderAndVisibility(t *testing.T) {
	fx := newNotificationFixture()
	mine := fx.store.addFandom("mine", "u1")
	other := fx.store.addFandom("other", "u2")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := fx.store.addNotification(mine, base)
	tieLow := fx.store.addNotification(mine, base.Add(time.Hour))
	tieHigh := fx.store.addNotification(mine, base.Add(time.Hour))
	fx.store.addNotification(other, base.Add(2*time.Hour))

	list, err := fx.notify.GetNotificationsWithViewed(context.Background(), "u1", nil)
	require.NoError(t, err)

	ids := make([]int64, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID)
		assert.False(t, n.IsViewed)
		assert.False(t, n.IsHidden)
		assert.Nil(t, n.ViewedAt)
	}
	assert.Equal(t, []int64{tieHigh, tieLow, older}, ids)
}

func TestGetNotificationsWithViewed_HiddenFilter(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n1 := fx.store.addNotification(fandomID, base)
	n2 := fx.store.addNotification(fandomID, base.Add(time.Minute))
	n3 := fx.store.addNotification(fandomID, base.Add(2*time.Minute))

	_, err := fx.tracker.Hide(ctx, "u1", "u1", []int64{n1, n3})
	require.NoError(t, err)

	hidden, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", boolPtr(true))
	require.NoError(t, err)
	require.Len(t, hidden, 2)
	assert.Equal(t, n3, hidden[0].ID)
	assert.Equal(t, n1, hidden[1].ID)
	for _, n := range hidden {
		assert.True(t, n.IsHidden)
		assert.True(t, n.IsViewed)
	}

	visible, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", boolPtr(false))
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, n2, visible[0].ID)

	all, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetNotificationWithViewed(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1")
	n1 := fx.store.addNotification(fandomID, time.Now())

	got, found, err := fx.notify.GetNotificationWithViewed(ctx, "u1", n1)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, got.IsViewed)

	_, err = fx.tracker.MarkViewed(ctx, "u1", "u1", []int64{n1})
	require.NoError(t, err)

	got, found, err = fx.notify.GetNotificationWithViewed(ctx, "u1", n1)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.IsViewed)
	assert.NotNil(t, got.ViewedAt)

	t.Run("missing is absent, not an error", func(t *testing.T) {
		got, found, err := fx.notify.GetNotificationWithViewed(ctx, "u1", 12345)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("non-member is absent", func(t *testing.T) {
		_, found, err := fx.notify.GetNotificationWithViewed(ctx, "stranger", n1)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCountUnviewed(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1")
	n1 := fx.store.addNotification(fandomID, time.Now())
	n2 := fx.store.addNotification(fandomID, time.Now())
	fx.store.addNotification(fandomID, time.Now())

	count, err := fx.notify.CountUnviewed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = fx.tracker.MarkViewed(ctx, "u1", "u1", []int64{n1})
	require.NoError(t, err)
	_, err = fx.tracker.Hide(ctx, "u1", "u1", []int64{n2})
	require.NoError(t, err)

	count, err = fx.notify.CountUnviewed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// Two members of one fandom keep independent read state
func TestScenario_IndependentViewedStatePerUser(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1", "u2")

	n, err := fx.notify.Notify(ctx, fandomID, "u2", models.NotificationNewPost)
	require.NoError(t, err)

	for _, user := range []string{"u1", "u2"} {
		got, found, err := fx.notify.GetNotificationWithViewed(ctx, user, n.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, got.IsViewed, user)
	}

	result, err := fx.tracker.MarkViewed(ctx, "u1", "u1", []int64{n.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{n.ID}, result.Succeeded)

	u1, _, err := fx.notify.GetNotificationWithViewed(ctx, "u1", n.ID)
	require.NoError(t, err)
	assert.True(t, u1.IsViewed)

	u2, _, err := fx.notify.GetNotificationWithViewed(ctx, "u2", n.ID)
	require.NoError(t, err)
	assert.False(t, u2.IsViewed)
}

func TestScenario_HiddenNotificationOnlyInHiddenList(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1")

	n, err := fx.notify.Notify(ctx, fandomID, "u1", models.NotificationNewEvent)
	require.NoError(t, err)

	_, err = fx.tracker.Hide(ctx, "u1", "u1", []int64{n.ID})
	require.NoError(t, err)

	hidden, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", boolPtr(true))
	require.NoError(t, err)
	assert.Equal(t, []int64{n.ID}, idsOf(hidden))

	visible, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", boolPtr(false))
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestScenario_FandomDeleteCascadesToReadModel(t *testing.T) {
	fx := newNotificationFixture()
	ctx := context.Background()
	fandomID := fx.store.addFandom("f", "u1")

	n, err := fx.notify.Notify(ctx, fandomID, "u1", models.NotificationNewPost)
	require.NoError(t, err)
	_, err = fx.tracker.MarkViewed(ctx, "u1", "u1", []int64{n.ID})
	require.NoError(t, err)

	require.NoError(t, fakeFandoms{fx.store}.Delete(ctx, fandomID))

	list, err := fx.notify.GetNotificationsWithViewed(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Nil(t, fx.store.viewedRow(n.ID, "u1"))
}

func idsOf(list []dto.NotificationWithViewedDto) []int64 {
	ids := make([]int64, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	return ids
}
