package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func seededFeed(t *testing.T, toasts toaster, chime chimer) *notificationService {
	t.Helper()
	svc := NewNotificationService(toasts, chime)
	require.True(t, svc.Seed(helpers.TestCtx(), seed.DefaultBundle().EN.Notifications))
	return svc
}

func TestBroadcastPrependsAndIncrementsUnread(t *testing.T) {
	ctx := helpers.TestCtx()
	toasts := &fakeToaster{}
	chime := &fakeChimer{}
	svc := seededFeed(t, toasts, chime)
	before := svc.UnreadCount()

	n, err := svc.Broadcast(ctx, "Flood warning", "Move to higher ground")
	require.NoError(t, err)

	assert.Equal(t, before+1, svc.UnreadCount())
	list := svc.List()
	assert.Equal(t, n.ID, list[0].ID)
	assert.Equal(t, "Just now", list[0].Time)
	assert.False(t, list[0].Read)
	assert.Equal(t, []string{"Flood warning: Move to higher ground"}, toasts.messages())
	assert.Equal(t, 1, chime.calls)
}

func TestBroadcastValidation(t *testing.T) {
	svc := NewNotificationService(&fakeToaster{}, &fakeChimer{})

	_, err := svc.Broadcast(helpers.TestCtx(), "", "body")
	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, svc.List())
}

func TestBroadcastSideEffectFailuresAreIgnored(t *testing.T) {
	svc := NewNotificationService(&fakeToaster{panics: true}, &fakeChimer{err: errBoom})

	_, err := svc.Broadcast(helpers.TestCtx(), "Title", "Body")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.UnreadCount())
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := seededFeed(t, &fakeToaster{}, &fakeChimer{})
	require.Positive(t, svc.UnreadCount())

	svc.MarkAllRead(ctx)
	first := svc.List()
	svc.MarkAllRead(ctx)

	assert.Zero(t, svc.UnreadCount())
	assert.Equal(t, first, svc.List())
}

func TestSeedOnlyOnce(t *testing.T) {
	ctx := helpers.TestCtx()
	bundle := seed.DefaultBundle()
	svc := NewNotificationService(&fakeToaster{}, &fakeChimer{})

	assert.False(t, svc.Seed(ctx, nil))
	assert.True(t, svc.Seed(ctx, bundle.BN.Notifications))
	assert.False(t, svc.Seed(ctx, bundle.EN.Notifications))
	assert.Equal(t, bundle.BN.Notifications, svc.List())

	other := NewNotificationService(&fakeToaster{}, &fakeChimer{})
	_, err := other.Broadcast(ctx, "Title", "Body")
	require.NoError(t, err)
	assert.False(t, other.Seed(ctx, bundle.EN.Notifications), "a non-empty feed is never seeded")
}

func TestUnreadCountMatchesFeed(t *testing.T) {
	svc := seededFeed(t, &fakeToaster{}, &fakeChimer{})

	want := 0
	for _, n := range svc.List() {
		if !n.Read {
			want++
		}
	}
	assert.Equal(t, want, svc.UnreadCount())
	assert.Equal(t, 2, want)
	assert.IsType(t, []models.Notification{}, svc.List())
}
