package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

func TestLocalContentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLite(t)
	s := NewLocalContentStore(kv)

	_, err := s.LoadBundle(ctx)
	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)

	section := &models.LanguageData{Notifications: []models.Notification{{ID: "1", Title: "Alert"}}}
	syncedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveBundle(ctx, models.ContentBundle{BN: section, EN: section}, syncedAt))

	got, err := s.LoadBundle(ctx)
	require.NoError(t, err)
	assert.True(t, got.Valid())
	assert.Equal(t, "Alert", got.EN.Notifications[0].Title)

	last, err := s.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, syncedAt.Equal(last))
}

func TestLocalContentStoreCorruptCache(t *testing.T) {
	ctx := context.Background()
	kv := newTestSQLite(t)
	require.NoError(t, kv.Set(ctx, offlineDataKey, []byte("{not json")))

	_, err := NewLocalContentStore(kv).LoadBundle(ctx)
	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
}
