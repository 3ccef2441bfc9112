package services

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestLedgerCredit(t *testing.T) {
	ctx := helpers.TestCtx()
	store := &fakeSnapshotStore{}
	svc := NewLedgerService(seed.Wallet(), store)

	balance, err := svc.Credit(ctx, decimal.RequireFromString("500"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("5020.00")))
	assert.Equal(t, 1, store.saves)
	assert.True(t, store.snap.Balance.Equal(balance))

	for _, amount := range []string{"0", "-1"} {
		_, err := svc.Credit(ctx, decimal.RequireFromString(amount))
		var validation *errs.ValidationError
		require.ErrorAs(t, err, &validation)
	}
	assert.True(t, svc.Balance().Equal(balance))
	assert.Equal(t, 1, store.saves)
}

func TestLedgerLinkAccount(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewLedgerService(seed.Wallet(), nil)

	acct, err := svc.LinkAccount(ctx, models.LinkedAccount{Provider: " Rocket ", Number: "01811111111"})
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "Rocket", acct.Provider)
	assert.Equal(t, models.AccountKindMFS, acct.Kind)

	bank, err := svc.LinkAccount(ctx, models.LinkedAccount{Provider: "City Bank", Number: "123456789"})
	require.NoError(t, err)
	assert.Equal(t, models.AccountKindBank, bank.Kind)

	_, err = svc.LinkAccount(ctx, models.LinkedAccount{Provider: "rocket", Number: "01811111111"})
	var exists *errs.AlreadyExistsError
	require.ErrorAs(t, err, &exists)

	_, err = svc.LinkAccount(ctx, models.LinkedAccount{Provider: "Rocket"})
	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.LinkAccount(ctx, models.LinkedAccount{Provider: "Rocket", Number: "1", Kind: "card"})
	require.ErrorAs(t, err, &validation)

	assert.Len(t, svc.Accounts(), 4)
	assert.Len(t, svc.AccountsFor("Rocket"), 1)
}

func TestLedgerLinkAccountUsesCatalogProviderName(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewLedgerService(walletWithoutBKash(), nil)

	acct, err := svc.LinkAccount(ctx, models.LinkedAccount{Provider: "bkash", Number: "01722222222"})
	require.NoError(t, err)
	assert.Equal(t, "bKash", acct.Provider)

	_, err = svc.LinkAccount(ctx, models.LinkedAccount{Provider: "bKash", Number: "01722222222"})
	var exists *errs.AlreadyExistsError
	require.ErrorAs(t, err, &exists)

	card, err := svc.LinkAccount(ctx, models.LinkedAccount{Provider: "city bank", Number: "4111"})
	require.NoError(t, err)
	assert.Equal(t, "City Bank", card.Provider)
	assert.Equal(t, models.AccountKindBank, card.Kind)

	require.Len(t, svc.AccountsFor("bKash"), 1)
	assert.Equal(t, acct.ID, svc.AccountsFor("bKash")[0].ID)
}

func TestLedgerUnlinkAccount(t *testing.T) {
	ctx := helpers.TestCtx()
	store := &fakeSnapshotStore{}
	svc := NewLedgerService(seed.Wallet(), store)

	svc.UnlinkAccount(ctx, "missing")
	assert.Zero(t, store.saves)

	svc.UnlinkAccount(ctx, "1")
	_, ok := svc.Account("1")
	assert.False(t, ok)
	assert.Len(t, svc.Accounts(), 1)
	assert.Equal(t, 1, store.saves)
}

func TestLedgerRecordTransactionPrepends(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewLedgerService(seed.Wallet(), nil)

	svc.RecordTransaction(ctx, models.Transaction{ID: "TXN-new", Status: models.TransactionSuccess})
	txs := svc.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "TXN-new", txs[0].ID)
	assert.Equal(t, "TXN2593", txs[1].ID)
}

func TestLedgerRestore(t *testing.T) {
	ctx := helpers.TestCtx()

	t.Run("not found keeps seed", func(t *testing.T) {
		svc := NewLedgerService(seed.Wallet(), &fakeSnapshotStore{loadErr: errs.NewNotFoundError("no wallet")})
		require.NoError(t, svc.Restore(ctx))
		assert.True(t, svc.Balance().Equal(decimal.RequireFromString("4520")))
	})

	t.Run("persisted snapshot wins", func(t *testing.T) {
		saved := models.WalletSnapshot{Balance: decimal.RequireFromString("10")}
		svc := NewLedgerService(seed.Wallet(), &fakeSnapshotStore{snap: saved})
		require.NoError(t, svc.Restore(ctx))
		assert.True(t, svc.Balance().Equal(decimal.RequireFromString("10")))
		assert.Empty(t, svc.Accounts())
	})

	t.Run("read failure is reported", func(t *testing.T) {
		svc := NewLedgerService(seed.Wallet(), &fakeSnapshotStore{loadErr: errBoom})
		require.ErrorIs(t, svc.Restore(ctx), errBoom)
	})
}

func TestLedgerPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewLedgerService(seed.Wallet(), &fakeSnapshotStore{saveErr: errBoom})

	balance, err := svc.Credit(ctx, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, svc.Balance().Equal(balance))
}

func TestLedgerConcurrentCredits(t *testing.T) {
	ctx := helpers.TestCtx()
	store := &fakeSnapshotStore{}
	svc := NewLedgerService(models.WalletSnapshot{}, store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Credit(ctx, decimal.NewFromInt(1))
		}()
	}
	wg.Wait()

	assert.True(t, svc.Balance().Equal(decimal.NewFromInt(50)))
	assert.True(t, store.snap.Balance.Equal(decimal.NewFromInt(50)), "the newest snapshot is the one persisted")
}
