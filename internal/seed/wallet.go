package seed

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

// Wallet is the state of a fresh ledger.
func Wallet() models.WalletSnapshot {
	return models.WalletSnapshot{
		Balance: decimal.RequireFromString("4520.00"),
		Accounts: []models.LinkedAccount{
			{ID: "1", Kind: models.AccountKindMFS, Provider: "bKash", Number: "01711***890"},
			{ID: "2", Kind: models.AccountKindMFS, Provider: "Nagad", Number: "01922***123"},
		},
		Transactions: []models.Transaction{
			{ID: "TXN2593", Service: ServiceMobileRecharge, Provider: "Grameenphone", Amount: "1000", Date: "31/12/2025, 22:18:13", Method: "bKash", Recipient: "01514656466", Status: models.TransactionSuccess},
			{ID: "TXN1234", Service: ServiceElectricity, Provider: "DESCO", Amount: "1250", Date: "20/12/2025, 14:15:00", Method: "Nagad", Recipient: "Meter: 55667788", Status: models.TransactionSuccess},
		},
	}
}
