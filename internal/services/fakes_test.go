package services

import (
	"context"
	"errors"
	"sync"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

type recordedToast struct {
	kind    models.ToastKind
	message string
}

type fakeToaster struct {
	mu     sync.Mutex
	shown  []recordedToast
	err    error
	panics bool
}

func (f *fakeToaster) Show(ctx context.Context, kind models.ToastKind, message string) error {
	if f.panics {
		panic("toast exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, recordedToast{kind: kind, message: message})
	return f.err
}

func (f *fakeToaster) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.shown))
	for _, t := range f.shown {
		out = append(out, t.message)
	}
	return out
}

type fakeChimer struct {
	calls int
	err   error
}

func (f *fakeChimer) Chime(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeLanguage struct {
	lang models.Language
}

func (f fakeLanguage) Language() models.Language { return f.lang }

type fakeGateway struct {
	mu        sync.Mutex
	offline   bool
	verifyErr error
	otpErr    error
	authErr   error
	block     chan struct{}
	started   chan string
	calls     []string
	accounts  []dto.GatewayAccountRequest
}

func (g *fakeGateway) enter(ctx context.Context, name string) error {
	g.mu.Lock()
	g.calls = append(g.calls, name)
	block, started := g.block, g.started
	g.mu.Unlock()

	if started != nil {
		started <- name
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (g *fakeGateway) Available(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.offline
}

func (g *fakeGateway) VerifyAccount(ctx context.Context, req dto.GatewayAccountRequest) error {
	g.mu.Lock()
	g.accounts = append(g.accounts, req)
	g.mu.Unlock()
	if err := g.enter(ctx, "verify_account"); err != nil {
		return err
	}
	return g.verifyErr
}

func (g *fakeGateway) VerifyOTP(ctx context.Context, req dto.GatewayOTPRequest) error {
	if err := g.enter(ctx, "verify_otp"); err != nil {
		return err
	}
	return g.otpErr
}

func (g *fakeGateway) Authorize(ctx context.Context, req dto.GatewayAuthorizeRequest) (dto.GatewayReceipt, error) {
	if err := g.enter(ctx, "authorize"); err != nil {
		return dto.GatewayReceipt{}, err
	}
	if g.authErr != nil {
		return dto.GatewayReceipt{}, g.authErr
	}
	return dto.GatewayReceipt{Reference: "WALLET-test"}, nil
}

func (g *fakeGateway) callCount(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == name {
			n++
		}
	}
	return n
}

type fakeSnapshotStore struct {
	mu      sync.Mutex
	snap    models.WalletSnapshot
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSnapshotStore) Load(ctx context.Context) (models.WalletSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return models.WalletSnapshot{}, f.loadErr
	}
	return f.snap, nil
}

// Save fails on a cancelled context the way a real database write does.
func (f *fakeSnapshotStore) Save(ctx context.Context, snap models.WalletSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snap = snap
	return nil
}

var errBoom = errors.New("boom")
