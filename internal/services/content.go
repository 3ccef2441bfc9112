package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type remoteContentSource interface {
	Fetch(ctx context.Context) (models.ContentBundle, error)
}

type localContentStore interface {
	LoadBundle(ctx context.Context) (models.ContentBundle, error)
	SaveBundle(ctx context.Context, bundle models.ContentBundle, syncedAt time.Time) error
	LastSync(ctx context.Context) (time.Time, error)
}

// contentService serves the reference dataset cache-first: a persisted copy
// is adopted immediately and a background fetch replaces it when it succeeds.
// The active bundle is never empty; the compiled-in default is the floor.
type contentService struct {
	remote       remoteContentSource
	local        localContentStore
	fetchTimeout time.Duration
	clockNow     func() time.Time

	mu        sync.RWMutex
	bundle    models.ContentBundle
	source    models.ContentSource
	loading   bool
	lastSync  time.Time
	listeners []func(ctx context.Context, bundle models.ContentBundle)

	refresh singleflight.Group
}

func NewContentService(remote remoteContentSource, local localContentStore, fallback models.ContentBundle, fetchTimeout time.Duration) *contentService {
	return &contentService{
		remote:       remote,
		local:        local,
		fetchTimeout: fetchTimeout,
		clockNow:     time.Now,
		bundle:       fallback,
		source:       models.SourceDefault,
		loading:      true,
	}
}

// OnUpdate registers a callback run after every adopted bundle.
func (s *contentService) OnUpdate(fn func(ctx context.Context, bundle models.ContentBundle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start adopts the cached bundle if there is a valid one, then refreshes in
// the background. The returned channel closes when that first refresh ends.
func (s *contentService) Start(ctx context.Context) <-chan struct{} {
	log := logger.FromContext(ctx)

	if s.local != nil {
		bundle, err := s.local.LoadBundle(ctx)
		switch {
		case err == nil && bundle.Valid():
			lastSync, _ := s.local.LastSync(ctx)
			s.adopt(ctx, bundle, models.SourceCache, lastSync)
			log.Info("content loaded from cache", "last_sync", lastSync)
		case err == nil:
			log.Warn("cached content bundle is incomplete, ignoring")
		default:
			var notFound *errs.NotFoundError
			if !errors.As(err, &notFound) {
				log.Warn("failed to read cached content", "error", err)
			}
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Refresh(logger.Detach(ctx))
	}()
	return done
}

// Refresh fetches the remote bundle and never reports failure; the active
// bundle is kept when the fetch fails.
func (s *contentService) Refresh(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		logger.FromContext(ctx).Warn("content refresh failed, keeping active bundle",
			"error", err, "source", s.Source())
	}
}

// Sync is Refresh with the error surfaced, for the one-shot sync job.
// Concurrent calls share one fetch, which is not bound to any one caller's
// cancellation.
func (s *contentService) Sync(ctx context.Context) error {
	_, err, _ := s.refresh.Do("refresh", func() (any, error) {
		return nil, s.fetchAndStore(logger.Detach(ctx))
	})
	return err
}

func (s *contentService) fetchAndStore(ctx context.Context) error {
	defer s.finishLoading()

	if s.remote == nil {
		return errors.New("no remote content source configured")
	}

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	bundle, err := s.remote.Fetch(fetchCtx)
	if err != nil {
		return err
	}
	if !bundle.Valid() {
		return errs.NewValidationError("remote bundle is missing a language section")
	}

	syncedAt := s.clockNow()
	s.adopt(ctx, bundle, models.SourceRemote, syncedAt)

	if s.local != nil {
		if err := s.local.SaveBundle(ctx, bundle, syncedAt); err != nil {
			// the new bundle is already active; only persistence failed
			logger.FromContext(ctx).Warn("failed to persist content bundle", "error", err)
		}
	}

	logger.FromContext(ctx).Info("content refreshed from remote")
	return nil
}

func (s *contentService) adopt(ctx context.Context, bundle models.ContentBundle, source models.ContentSource, syncedAt time.Time) {
	s.mu.Lock()
	s.bundle = bundle
	s.source = source
	s.loading = false
	if !syncedAt.IsZero() {
		s.lastSync = syncedAt
	}
	listeners := append([]func(context.Context, models.ContentBundle){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, bundle)
	}
}

func (s *contentService) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *contentService) Bundle() models.ContentBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

func (s *contentService) Language(lang models.Language) *models.LanguageData {
	return s.Bundle().For(lang)
}

func (s *contentService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *contentService) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

func (s *contentService) Source() models.ContentSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}
