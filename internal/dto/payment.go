package dto

import "github.com/GregMSThompson/nirvor-backend/internal/models"

type OpenSessionRequest struct {
	Service  string `json:"service"`
	District string `json:"district"`
	Upazila  string `json:"upazila"`
}

type PaymentInput struct {
	Provider      string `json:"provider"`
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
}

type SelectMethodRequest struct {
	Method string `json:"method"`
}

type SavedAccountRequest struct {
	AccountID string `json:"accountId"`
}

type GatewayNumberRequest struct {
	Number string `json:"number"`
}

type GatewayOTPInput struct {
	OTP string `json:"otp"`
}

type GatewayPINInput struct {
	PIN string `json:"pin"`
}

// PaymentSessionView is what the device renders for the open payment modal.
// The gateway number is masked; OTP and PIN are never echoed.
type PaymentSessionView struct {
	ID               string                 `json:"id"`
	Service          string                 `json:"service"`
	Location         models.Location        `json:"location"`
	Step             models.PaymentStep     `json:"step"`
	Provider         string                 `json:"provider,omitempty"`
	ProviderHelpline string                 `json:"providerHelpline,omitempty"`
	AccountNumber    string                 `json:"accountNumber,omitempty"`
	Amount           string                 `json:"amount,omitempty"`
	Method           string                 `json:"method,omitempty"`
	GatewayNumber    string                 `json:"gatewayNumber,omitempty"`
	SavedAccounts    []models.LinkedAccount `json:"savedAccounts,omitempty"`
	Placeholder      string                 `json:"placeholder"`
	Processing       bool                   `json:"processing"`
	Receipt          *models.Transaction    `json:"receipt,omitempty"`
}

type PaymentCatalog struct {
	Services        map[string][]models.ServiceProvider `json:"services"`
	Placeholders    map[string]string                   `json:"placeholders"`
	Wallets         []string                            `json:"wallets"`
	TicketProviders map[string][]models.TicketProvider  `json:"ticketProviders"`
}

type TicketReferenceRequest struct {
	Reference string `json:"reference"`
}

type TicketSessionView struct {
	ID         string                  `json:"id"`
	Service    string                  `json:"service"`
	Location   models.Location         `json:"location"`
	Step       models.TicketStep       `json:"step"`
	Providers  []models.TicketProvider `json:"providers"`
	Reference  string                  `json:"reference,omitempty"`
	Processing bool                    `json:"processing"`
}
