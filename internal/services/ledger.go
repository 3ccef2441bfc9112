package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type walletSnapshotStore interface {
	Load(ctx context.Context) (models.WalletSnapshot, error)
	Save(ctx context.Context, snap models.WalletSnapshot) error
}

// ledgerService is the single writer of balance, linked accounts and
// transaction history. Snapshots are written after each mutation, best effort.
type ledgerService struct {
	mu           sync.Mutex
	balance      decimal.Decimal
	accounts     []models.LinkedAccount
	transactions []models.Transaction
	version      uint64

	persistMu sync.Mutex
	persisted uint64
	snapshots walletSnapshotStore
}

func NewLedgerService(initial models.WalletSnapshot, snapshots walletSnapshotStore) *ledgerService {
	s := &ledgerService{snapshots: snapshots}
	s.replace(initial)
	return s
}

// Restore replaces the in-memory state with the persisted snapshot, if any.
func (s *ledgerService) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.replace(snap)
	s.mu.Unlock()

	logger.FromContext(ctx).Info("wallet restored",
		"accounts", len(snap.Accounts), "transactions", len(snap.Transactions))
	return nil
}

func (s *ledgerService) Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Decimal{}, errs.NewValidationError("amount must be greater than zero")
	}

	s.mu.Lock()
	s.balance = s.balance.Add(amount)
	balance := s.balance
	snap := s.mutatedLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	return balance, nil
}

func (s *ledgerService) LinkAccount(ctx context.Context, acct models.LinkedAccount) (models.LinkedAccount, error) {
	acct.Provider = seed.CanonicalProvider(acct.Provider)
	acct.Number = strings.TrimSpace(acct.Number)
	if acct.Provider == "" || acct.Number == "" {
		return models.LinkedAccount{}, errs.NewValidationError("provider and number are required")
	}
	if acct.Kind == "" {
		acct.Kind = models.KindForProvider(acct.Provider)
	}
	if acct.Kind != models.AccountKindMFS && acct.Kind != models.AccountKindBank {
		return models.LinkedAccount{}, errs.NewValidationError("account type must be mfs or bank")
	}
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}

	s.mu.Lock()
	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Provider, acct.Provider) && existing.Number == acct.Number {
			s.mu.Unlock()
			return models.LinkedAccount{}, errs.NewAlreadyExistsError("account is already linked")
		}
	}
	s.accounts = append(s.accounts, acct)
	snap := s.mutatedLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
	logger.FromContext(ctx).Info("account linked", "account_id", acct.ID, "provider", acct.Provider)
	return acct, nil
}

// UnlinkAccount is a no-op for unknown ids.
func (s *ledgerService) UnlinkAccount(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.accounts[:0:0]
	for _, a := range s.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(s.accounts) {
		s.mu.Unlock()
		return
	}
	s.accounts = kept
	snap := s.mutatedLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// RecordTransaction prepends tx to the history.
func (s *ledgerService) RecordTransaction(ctx context.Context, tx models.Transaction) {
	s.mu.Lock()
	s.transactions = append([]models.Transaction{tx}, s.transactions...)
	snap := s.mutatedLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

func (s *ledgerService) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *ledgerService) Accounts() []models.LinkedAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LinkedAccount{}, s.accounts...)
}

// AccountsFor returns the linked accounts of one provider.
func (s *ledgerService) AccountsFor(provider string) []models.LinkedAccount {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.LinkedAccount{}
	for _, a := range s.accounts {
		if strings.EqualFold(a.Provider, provider) {
			out = append(out, a)
		}
	}
	return out
}

func (s *ledgerService) Account(id string) (models.LinkedAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.LinkedAccount{}, false
}

func (s *ledgerService) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction{}, s.transactions...)
}

func (s *ledgerService) Snapshot() models.WalletSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ledgerService) replace(snap models.WalletSnapshot) {
	s.balance = snap.Balance
	s.accounts = append([]models.LinkedAccount{}, snap.Accounts...)
	s.transactions = append([]models.Transaction{}, snap.Transactions...)
}

// versionedSnapshot pairs a snapshot with the mutation count it reflects so
// an older snapshot never overwrites a newer one.
type versionedSnapshot struct {
	models.WalletSnapshot
	version uint64
}

func (s *ledgerService) mutatedLocked() versionedSnapshot {
	s.version++
	return versionedSnapshot{WalletSnapshot: s.snapshotLocked(), version: s.version}
}

func (s *ledgerService) snapshotLocked() models.WalletSnapshot {
	return models.WalletSnapshot{
		Balance:      s.balance,
		Accounts:     append([]models.LinkedAccount{}, s.accounts...),
		Transactions: append([]models.Transaction{}, s.transactions...),
	}
}

func (s *ledgerService) persist(ctx context.Context, snap versionedSnapshot) {
	if s.snapshots == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if snap.version <= s.persisted {
		return
	}
	if err := s.snapshots.Save(ctx, snap.WalletSnapshot); err != nil {
		logger.FromContext(ctx).Warn("failed to persist wallet snapshot", "error", err)
		return
	}
	s.persisted = snap.version
}
