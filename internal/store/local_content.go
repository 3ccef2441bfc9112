package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

const (
	offlineDataKey = "nirvor_offline_data"
	lastSyncKey    = "nirvor_last_sync"
)

type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// localContentStore persists the last good content bundle on the device.
type localContentStore struct {
	kv kv
}

func NewLocalContentStore(kv kv) *localContentStore {
	return &localContentStore{kv: kv}
}

func (s *localContentStore) LoadBundle(ctx context.Context) (models.ContentBundle, error) {
	var bundle models.ContentBundle

	raw, err := s.kv.Get(ctx, offlineDataKey)
	if err != nil {
		return bundle, err
	}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return models.ContentBundle{}, errs.NewValidationError("cached bundle is corrupt")
	}
	return bundle, nil
}

// SaveBundle overwrites the cached bundle and its sync timestamp.
func (s *localContentStore) SaveBundle(ctx context.Context, bundle models.ContentBundle, syncedAt time.Time) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, offlineDataKey, raw); err != nil {
		return err
	}
	return s.kv.Set(ctx, lastSyncKey, []byte(syncedAt.UTC().Format(time.RFC3339)))
}

func (s *localContentStore) LastSync(ctx context.Context) (time.Time, error) {
	raw, err := s.kv.Get(ctx, lastSyncKey)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, errs.NewValidationError("cached sync time is corrupt")
	}
	return t, nil
}
