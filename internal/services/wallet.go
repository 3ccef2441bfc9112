package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type walletLedger interface {
	Credit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	LinkAccount(ctx context.Context, acct models.LinkedAccount) (models.LinkedAccount, error)
}

// WalletDelays are the simulated processing times of the wallet screens.
type WalletDelays struct {
	AddMoney    time.Duration
	LinkAccount time.Duration
}

func DefaultWalletDelays() WalletDelays {
	return WalletDelays{AddMoney: 2 * time.Second, LinkAccount: 1500 * time.Millisecond}
}

// walletService fronts the ledger for the wallet page: input checks, the
// simulated processing delay and the success notice.
type walletService struct {
	ledger   walletLedger
	toasts   toaster
	language languageSource
	delays   WalletDelays
}

func NewWalletService(ledger walletLedger, toasts toaster, language languageSource, delays WalletDelays) *walletService {
	return &walletService{
		ledger:   ledger,
		toasts:   toasts,
		language: language,
		delays:   delays,
	}
}

func (s *walletService) AddMoney(ctx context.Context, amount, source string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !value.IsPositive() {
		return decimal.Decimal{}, errs.NewValidationError("amount must be a number greater than zero")
	}
	if strings.TrimSpace(source) == "" {
		return decimal.Decimal{}, errs.NewValidationError("select a funding source")
	}

	if err := wait(ctx, s.delays.AddMoney); err != nil {
		return decimal.Decimal{}, err
	}
	balance, err := s.ledger.Credit(ctx, value)
	if err != nil {
		return decimal.Decimal{}, err
	}

	logger.FromContext(ctx).Info("money added", "amount", value.String(), "source", strings.TrimSpace(source))
	s.success(ctx, "Money added successfully", "টাকা সফলভাবে যোগ করা হয়েছে")
	return balance, nil
}

func (s *walletService) LinkAccount(ctx context.Context, provider, number string, kind *string) (models.LinkedAccount, error) {
	acct := models.LinkedAccount{
		Provider: provider,
		Number:   number,
		Kind:     models.AccountKind(strings.ToLower(strings.TrimSpace(helpers.ValueOr(kind, "")))),
	}
	if strings.TrimSpace(provider) == "" || strings.TrimSpace(number) == "" {
		return models.LinkedAccount{}, errs.NewValidationError("provider and number are required")
	}

	if err := wait(ctx, s.delays.LinkAccount); err != nil {
		return models.LinkedAccount{}, err
	}
	linked, err := s.ledger.LinkAccount(ctx, acct)
	if err != nil {
		return models.LinkedAccount{}, err
	}

	s.success(ctx, "Account added successfully", "অ্যাকাউন্ট সফলভাবে যুক্ত হয়েছে")
	return linked, nil
}

func (s *walletService) success(ctx context.Context, en, bn string) {
	msg := en
	if s.language != nil && s.language.Language() == models.LanguageBN {
		msg = bn
	}
	bestEffort(ctx, "toast", func() error {
		return s.toasts.Show(ctx, models.ToastSuccess, msg)
	})
}
