package store

import (
	"context"
	"encoding/json"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

const walletKey = "nirvor_wallet"

type sealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Unseal(ctx context.Context, ciphertext string) (string, error)
}

// walletStore snapshots the ledger to local storage. Account numbers are
// sealed before they are written.
type walletStore struct {
	kv     kv
	sealer sealer
}

func NewWalletStore(kv kv, sealer sealer) *walletStore {
	return &walletStore{kv: kv, sealer: sealer}
}

func (s *walletStore) Load(ctx context.Context) (models.WalletSnapshot, error) {
	var snap models.WalletSnapshot

	raw, err := s.kv.Get(ctx, walletKey)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.WalletSnapshot{}, errs.NewValidationError("wallet snapshot is corrupt")
	}

	for i := range snap.Accounts {
		number, err := s.sealer.Unseal(ctx, snap.Accounts[i].Number)
		if err != nil {
			return models.WalletSnapshot{}, err
		}
		snap.Accounts[i].Number = number
	}
	return snap, nil
}

func (s *walletStore) Save(ctx context.Context, snap models.WalletSnapshot) error {
	sealed := snap
	sealed.Accounts = make([]models.LinkedAccount, len(snap.Accounts))
	for i, acct := range snap.Accounts {
		number, err := s.sealer.Seal(ctx, acct.Number)
		if err != nil {
			return err
		}
		acct.Number = number
		sealed.Accounts[i] = acct
	}

	raw, err := json.Marshal(sealed)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, walletKey, raw)
}
