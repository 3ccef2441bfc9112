package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ContentSvc      ContentService
	SettingsSvc     SettingsService
	NotificationSvc NotificationService
	ToastSvc        ToastService
	LedgerSvc       LedgerService
	WalletSvc       WalletService
	PaymentSvc      PaymentService
	TicketSvc       TicketService
	AssistantSvc    AssistantService
	Locations       LocationDirectory

	// AssistantRate and AssistantBurst throttle the assistant and payment
	// gateway routes per client.
	AssistantRate  float64
	AssistantBurst int
}
