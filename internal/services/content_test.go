package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

type fakeRemote struct {
	mu     sync.Mutex
	bundle models.ContentBundle
	err    error
	calls  int

	// when set, Fetch signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (f *fakeRemote) Fetch(ctx context.Context) (models.ContentBundle, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.release != nil {
		f.started <- struct{}{}
		<-f.release
		if err := ctx.Err(); err != nil {
			return models.ContentBundle{}, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bundle, f.err
}

type fakeLocalContent struct {
	mu       sync.Mutex
	bundle   models.ContentBundle
	loadErr  error
	saveErr  error
	lastSync time.Time
	saved    []models.ContentBundle
}

func (f *fakeLocalContent) LoadBundle(ctx context.Context) (models.ContentBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bundle, f.loadErr
}

func (f *fakeLocalContent) SaveBundle(ctx context.Context, bundle models.ContentBundle, syncedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, bundle)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.bundle = bundle
	f.lastSync = syncedAt
	return nil
}

func (f *fakeLocalContent) LastSync(ctx context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSync, nil
}

// taggedBundle is the default bundle with a marker hospital in English.
func taggedBundle(tag string) models.ContentBundle {
	b := seed.DefaultBundle()
	b.EN.Hospitals = append([]models.Hospital{{Name: tag}}, b.EN.Hospitals...)
	return b
}

func TestContentStartPrefersCacheThenRemote(t *testing.T) {
	ctx := helpers.TestCtx()
	synced := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	local := &fakeLocalContent{bundle: taggedBundle("cached"), lastSync: synced}
	remote := &fakeRemote{bundle: taggedBundle("remote")}
	svc := NewContentService(remote, local, seed.DefaultBundle(), time.Second)

	var updates []string
	var mu sync.Mutex
	svc.OnUpdate(func(ctx context.Context, b models.ContentBundle) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, b.EN.Hospitals[0].Name)
	})

	done := svc.Start(ctx)
	<-done

	assert.Equal(t, models.SourceRemote, svc.Source())
	assert.Equal(t, "remote", svc.Language(models.LanguageEN).Hospitals[0].Name)
	assert.False(t, svc.Loading())
	assert.True(t, svc.LastSync().After(synced))
	require.Len(t, local.saved, 1)
	assert.Equal(t, []string{"cached", "remote"}, updates)
}

func TestContentRemoteFailureKeepsCache(t *testing.T) {
	ctx := helpers.TestCtx()
	synced := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	local := &fakeLocalContent{bundle: taggedBundle("cached"), lastSync: synced}
	svc := NewContentService(&fakeRemote{err: errBoom}, local, seed.DefaultBundle(), time.Second)

	<-svc.Start(ctx)

	assert.Equal(t, models.SourceCache, svc.Source())
	assert.Equal(t, "cached", svc.Language(models.LanguageEN).Hospitals[0].Name)
	assert.Equal(t, synced, svc.LastSync())
	assert.False(t, svc.Loading())
	assert.Empty(t, local.saved)
}

func TestContentNeverEmpty(t *testing.T) {
	tests := []struct {
		name   string
		local  *fakeLocalContent
		remote *fakeRemote
	}{
		{name: "nothing cached and remote down", local: &fakeLocalContent{loadErr: errs.NewNotFoundError("none")}, remote: &fakeRemote{err: errBoom}},
		{name: "corrupt cache", local: &fakeLocalContent{loadErr: errs.NewValidationError("corrupt")}, remote: &fakeRemote{err: errBoom}},
		{name: "incomplete cache", local: &fakeLocalContent{bundle: models.ContentBundle{BN: seed.DefaultBundle().BN}}, remote: &fakeRemote{err: errBoom}},
		{name: "incomplete remote", local: &fakeLocalContent{loadErr: errs.NewNotFoundError("none")}, remote: &fakeRemote{bundle: models.ContentBundle{EN: seed.DefaultBundle().EN}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContentService(tt.remote, tt.local, seed.DefaultBundle(), time.Second)
			assert.True(t, svc.Bundle().Valid())

			<-svc.Start(helpers.TestCtx())

			assert.True(t, svc.Bundle().Valid())
			assert.Equal(t, models.SourceDefault, svc.Source())
			assert.False(t, svc.Loading())
			assert.NotEmpty(t, svc.Language(models.LanguageBN).Hospitals)
		})
	}
}

func TestContentSyncReportsErrors(t *testing.T) {
	ctx := helpers.TestCtx()

	svc := NewContentService(&fakeRemote{bundle: models.ContentBundle{}}, nil, seed.DefaultBundle(), time.Second)
	var validation *errs.ValidationError
	require.ErrorAs(t, svc.Sync(ctx), &validation)

	svc = NewContentService(&fakeRemote{err: errBoom}, nil, seed.DefaultBundle(), time.Second)
	require.ErrorIs(t, svc.Sync(ctx), errBoom)

	svc = NewContentService(nil, nil, seed.DefaultBundle(), time.Second)
	require.Error(t, svc.Sync(ctx))
}

func TestContentSharedFetchOutlivesFirstCaller(t *testing.T) {
	remote := &fakeRemote{
		bundle:  taggedBundle("remote"),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := NewContentService(remote, nil, seed.DefaultBundle(), time.Second)

	reqCtx, cancel := context.WithCancel(helpers.TestCtx())
	result := make(chan error, 1)
	go func() { result <- svc.Sync(reqCtx) }()

	<-remote.started
	cancel()
	close(remote.release)

	require.NoError(t, <-result)
	assert.Equal(t, models.SourceRemote, svc.Source())
	assert.Equal(t, "remote", svc.Language(models.LanguageEN).Hospitals[0].Name)
}

func TestContentPersistFailureStillAdopts(t *testing.T) {
	ctx := helpers.TestCtx()
	local := &fakeLocalContent{loadErr: errs.NewNotFoundError("none"), saveErr: errBoom}
	svc := NewContentService(&fakeRemote{bundle: taggedBundle("remote")}, local, seed.DefaultBundle(), time.Second)

	require.NoError(t, svc.Sync(ctx))
	assert.Equal(t, models.SourceRemote, svc.Source())
	assert.Equal(t, "remote", svc.Language(models.LanguageEN).Hospitals[0].Name)
}

func TestContentLanguageFallsBackToBangla(t *testing.T) {
	svc := NewContentService(nil, nil, seed.DefaultBundle(), time.Second)
	assert.Same(t, svc.Bundle().BN, svc.Language(models.Language("fr")))
}
