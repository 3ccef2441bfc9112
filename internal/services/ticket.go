package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

const DefaultTicketDelay = 2 * time.Second

type ticketSession struct {
	id         string
	service    string
	location   models.Location
	step       models.TicketStep
	providers  []models.TicketProvider
	reference  string
	processing bool
	cancel     context.CancelFunc
	generation uint64
}

// ticketService walks a train or bus ticket from provider list to a
// confirmed reference. It never touches the ledger.
type ticketService struct {
	mu        sync.Mutex
	session   *ticketSession
	locations locationResolver
	delay     time.Duration

	closeOther func(ctx context.Context) error
}

func NewTicketService(locations locationResolver, delay time.Duration) *ticketService {
	return &ticketService{locations: locations, delay: delay}
}

func (s *ticketService) Open(ctx context.Context, req dto.OpenSessionRequest) (dto.TicketSessionView, error) {
	providers, ok := seed.TicketProviders(req.Service)
	if !ok {
		return dto.TicketSessionView{}, errs.NewValidationError(fmt.Sprintf("unknown ticket service %q", req.Service))
	}
	loc, ok := s.locations.Resolve(req.District, req.Upazila)
	if !ok {
		return dto.TicketSessionView{}, errs.NewValidationError("location required: select a district and upazila")
	}
	if s.closeOther != nil {
		if err := s.closeOther(ctx); err != nil {
			return dto.TicketSessionView{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardLocked()
	s.session = &ticketSession{
		id:        uuid.NewString(),
		service:   req.Service,
		location:  loc,
		step:      models.TicketStepList,
		providers: providers,
	}
	logger.FromContext(ctx).Info("ticket session opened", "session_id", s.session.id, "service", req.Service)
	return s.viewLocked(), nil
}

func (s *ticketService) Current(ctx context.Context) (dto.TicketSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return dto.TicketSessionView{}, errs.NewNotFoundError("no open ticket session")
	}
	return s.viewLocked(), nil
}

func (s *ticketService) StartPayment(ctx context.Context) (dto.TicketSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.TicketStepList)
	if err != nil {
		return dto.TicketSessionView{}, err
	}
	sess.step = models.TicketStepPayment
	return s.viewLocked(), nil
}

// SubmitReference records the booking reference the user got from the
// provider site. After the confirmation delay the session succeeds.
func (s *ticketService) SubmitReference(ctx context.Context, reference string) (dto.TicketSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.TicketStepPayment)
	if err != nil {
		return dto.TicketSessionView{}, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return dto.TicketSessionView{}, errs.NewValidationError("transaction reference is required")
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sess.processing = true
	sess.cancel = cancel
	gen := sess.generation

	s.mu.Unlock()
	err = wait(waitCtx, s.delay)
	s.mu.Lock()

	if s.session != sess || sess.generation != gen {
		return dto.TicketSessionView{}, errs.NewInvalidStateError("ticket session was closed")
	}
	sess.processing = false
	sess.cancel = nil
	if err != nil {
		return dto.TicketSessionView{}, err
	}

	sess.reference = reference
	sess.step = models.TicketStepSuccess
	logger.FromContext(ctx).Info("ticket confirmed", "session_id", sess.id, "service", sess.service)
	return s.viewLocked(), nil
}

func (s *ticketService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardLocked()
	return nil
}

func (s *ticketService) discardLocked() {
	if s.session == nil {
		return
	}
	if s.session.cancel != nil {
		s.session.cancel()
	}
	s.session.generation++
	s.session = nil
}

func (s *ticketService) activeLocked(step models.TicketStep) (*ticketSession, error) {
	sess := s.session
	if sess == nil {
		return nil, errs.NewNotFoundError("no open ticket session")
	}
	if sess.processing {
		return nil, errs.NewInvalidStateError("ticket confirmation already in progress")
	}
	if sess.step != step {
		return nil, errs.NewInvalidStateError(fmt.Sprintf("action not allowed at step %s", sess.step))
	}
	return sess, nil
}

func (s *ticketService) viewLocked() dto.TicketSessionView {
	sess := s.session
	return dto.TicketSessionView{
		ID:         sess.id,
		Service:    sess.service,
		Location:   sess.location,
		Step:       sess.step,
		Providers:  append([]models.TicketProvider(nil), sess.providers...),
		Reference:  sess.reference,
		Processing: sess.processing,
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
