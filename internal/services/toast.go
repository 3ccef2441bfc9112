package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

var errChimeDisabled = errors.New("notification chime is not configured")

// toastService is a bounded FIFO of transient notices waiting for the device
// to pick them up. When full, the oldest notice is dropped.
type toastService struct {
	mu       sync.Mutex
	queue    []models.Toast
	capacity int
	chimeURL string
	clockNow func() time.Time
}

func NewToastService(capacity int, chimeURL string) *toastService {
	if capacity <= 0 {
		capacity = 50
	}
	return &toastService{
		capacity: capacity,
		chimeURL: chimeURL,
		clockNow: time.Now,
	}
}

func (s *toastService) Show(ctx context.Context, kind models.ToastKind, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("toast message is empty")
	}
	s.push(models.Toast{Kind: kind, Message: message})
	return nil
}

// Chime queues a sound-only cue; the device plays Sound.
func (s *toastService) Chime(ctx context.Context) error {
	if s.chimeURL == "" {
		return errChimeDisabled
	}
	s.push(models.Toast{Kind: models.ToastInfo, Sound: s.chimeURL})
	return nil
}

// Drain returns every pending notice, oldest first, and empties the queue.
func (s *toastService) Drain(ctx context.Context) []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.queue
	s.queue = nil
	if out == nil {
		out = []models.Toast{}
	}
	return out
}

func (s *toastService) push(t models.Toast) {
	t.ID = uuid.NewString()
	t.CreatedAt = s.clockNow()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) >= s.capacity {
		s.queue = s.queue[len(s.queue)-s.capacity+1:]
	}
	s.queue = append(s.queue, t)
}
