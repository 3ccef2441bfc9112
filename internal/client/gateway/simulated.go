package gatewayclient

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
)

const serviceName = "gateway"

// Delays are the processing times of each simulated wallet screen.
type Delays struct {
	SavedAccount time.Duration
	Number       time.Duration
	OTP          time.Duration
	Authorize    time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		SavedAccount: time.Second,
		Number:       1500 * time.Millisecond,
		OTP:          1500 * time.Millisecond,
		Authorize:    2 * time.Second,
	}
}

// Simulated stands in for a real MFS checkout. Verification always passes;
// authorization fails with probability failureRate.
type Simulated struct {
	delays      Delays
	failureRate float64
	draw        func() float64
	online      atomic.Bool
	now         func() time.Time
}

type Option func(*Simulated)

func WithDelays(d Delays) Option {
	return func(s *Simulated) { s.delays = d }
}

// WithDraw replaces the uniform [0,1) source used for the failure draw.
func WithDraw(draw func() float64) Option {
	return func(s *Simulated) { s.draw = draw }
}

func NewSimulated(failureRate float64, opts ...Option) *Simulated {
	s := &Simulated{
		delays:      DefaultDelays(),
		failureRate: failureRate,
		draw:        rand.Float64,
		now:         time.Now,
	}
	s.online.Store(true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetOnline toggles the simulated network link.
func (s *Simulated) SetOnline(online bool) {
	s.online.Store(online)
}

func (s *Simulated) Available(_ context.Context) bool {
	return s.online.Load()
}

func (s *Simulated) VerifyAccount(ctx context.Context, req dto.GatewayAccountRequest) error {
	if strings.TrimSpace(req.Number) == "" {
		return errs.NewValidationError("wallet number is required")
	}
	if req.Saved {
		return s.wait(ctx, s.delays.SavedAccount)
	}
	return s.wait(ctx, s.delays.Number)
}

func (s *Simulated) VerifyOTP(ctx context.Context, req dto.GatewayOTPRequest) error {
	if len(req.OTP) != 4 {
		return errs.NewValidationError("verification code must be 4 digits")
	}
	return s.wait(ctx, s.delays.OTP)
}

func (s *Simulated) Authorize(ctx context.Context, req dto.GatewayAuthorizeRequest) (dto.GatewayReceipt, error) {
	if err := s.wait(ctx, s.delays.Authorize); err != nil {
		return dto.GatewayReceipt{}, err
	}
	if !s.Available(ctx) {
		return dto.GatewayReceipt{}, errs.NewExternalServiceError(serviceName, "Network connection error", true, nil)
	}
	if s.draw() < s.failureRate {
		return dto.GatewayReceipt{}, errs.NewExternalServiceError(serviceName, "Payment failed. Please try again.", true, nil)
	}
	return dto.GatewayReceipt{
		Reference:    strings.ToUpper(req.Wallet) + "-" + uuid.NewString(),
		AuthorizedAt: s.now(),
	}, nil
}

func (s *Simulated) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errs.NewExternalServiceError(serviceName, "gateway did not respond in time", true, ctx.Err())
	case <-timer.C:
		return nil
	}
}
