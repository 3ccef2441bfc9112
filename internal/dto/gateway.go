package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type GatewayAccountRequest struct {
	Wallet string
	Number string
	Saved  bool
}

type GatewayOTPRequest struct {
	Wallet string
	Number string
	OTP    string
}

type GatewayAuthorizeRequest struct {
	SessionID string
	Service   string
	Provider  string
	Recipient string
	Amount    decimal.Decimal
	Wallet    string
	Number    string
	PIN       string
}

type GatewayReceipt struct {
	Reference    string
	AuthorizedAt time.Time
}
