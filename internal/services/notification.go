package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type toaster interface {
	Show(ctx context.Context, kind models.ToastKind, message string) error
}

type chimer interface {
	Chime(ctx context.Context) error
}

// notificationService owns the in-app feed. The unread count is always
// derived from the feed.
type notificationService struct {
	mu     sync.RWMutex
	feed   []models.Notification
	seeded bool
	toasts toaster
	chime  chimer
}

func NewNotificationService(toasts toaster, chime chimer) *notificationService {
	return &notificationService{
		toasts: toasts,
		chime:  chime,
	}
}

func (s *notificationService) Broadcast(ctx context.Context, title, message string) (models.Notification, error) {
	title, message = strings.TrimSpace(title), strings.TrimSpace(message)
	if title == "" || message == "" {
		return models.Notification{}, errs.NewValidationError("title and message are required")
	}

	n := models.Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Time:    "Just now",
	}

	s.mu.Lock()
	s.feed = append([]models.Notification{n}, s.feed...)
	s.mu.Unlock()

	bestEffort(ctx, "toast", func() error {
		return s.toasts.Show(ctx, models.ToastInfo, fmt.Sprintf("%s: %s", title, message))
	})
	bestEffort(ctx, "chime", func() error {
		return s.chime.Chime(ctx)
	})

	logger.FromContext(ctx).Info("notification broadcast", "notification_id", n.ID)
	return n, nil
}

// MarkAllRead is idempotent.
func (s *notificationService) MarkAllRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.feed {
		s.feed[i].Read = true
	}
}

func (s *notificationService) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.feed {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *notificationService) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Notification{}, s.feed...)
}

// Seed fills the feed from content once; later calls, including after a
// language switch, are ignored. Reports whether seeding happened.
func (s *notificationService) Seed(ctx context.Context, notes []models.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded || len(s.feed) > 0 || len(notes) == 0 {
		return false
	}
	s.feed = append([]models.Notification{}, notes...)
	s.seeded = true

	logger.FromContext(ctx).Debug("notification feed seeded", "count", len(notes))
	return true
}

// bestEffort runs a side effect whose failure must not affect the caller.
func bestEffort(ctx context.Context, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Debug("side effect panicked", "effect", name, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		logger.FromContext(ctx).Debug("side effect failed", "effect", name, "error", err)
	}
}
