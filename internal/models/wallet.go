package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type AccountKind string

const (
	AccountKindMFS  AccountKind = "mfs"
	AccountKindBank AccountKind = "bank"
)

var bankProviders = map[string]struct{}{
	"visa":       {},
	"mastercard": {},
	"city bank":  {},
}

// KindForProvider derives the account kind from a provider name; card
// networks and banks are bank accounts, everything else is a mobile wallet.
func KindForProvider(provider string) AccountKind {
	if _, ok := bankProviders[strings.ToLower(strings.TrimSpace(provider))]; ok {
		return AccountKindBank
	}
	return AccountKindMFS
}

// LinkedAccount is a saved funding source. Number is opaque, only its
// presence is ever checked.
type LinkedAccount struct {
	ID       string      `json:"id"`
	Kind     AccountKind `json:"type"`
	Provider string      `json:"provider"`
	Number   string      `json:"number"`
}

type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "Success"
	TransactionFailed  TransactionStatus = "Failed"
)

// Transaction is an immutable record of a completed payment.
type Transaction struct {
	ID        string            `json:"id"`
	Service   string            `json:"service"`
	Provider  string            `json:"provider"`
	Amount    string            `json:"amount"`
	Date      string            `json:"date"`
	Method    string            `json:"method"`
	Recipient string            `json:"recipient"`
	Status    TransactionStatus `json:"status"`
}

// WalletSnapshot is the persisted form of the ledger.
type WalletSnapshot struct {
	Balance      decimal.Decimal `json:"balance"`
	Accounts     []LinkedAccount `json:"linkedAccounts"`
	Transactions []Transaction   `json:"transactions"`
}
