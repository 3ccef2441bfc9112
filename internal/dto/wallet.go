package dto

import "github.com/GregMSThompson/nirvor-backend/internal/models"

type AddMoneyRequest struct {
	Amount string `json:"amount"`
	Source string `json:"source"`
}

type LinkAccountRequest struct {
	Provider string  `json:"provider"`
	Number   string  `json:"number"`
	Kind     *string `json:"type,omitempty"`
}

type WalletResponse struct {
	Balance  string                 `json:"balance"`
	Accounts []models.LinkedAccount `json:"linkedAccounts"`
}
