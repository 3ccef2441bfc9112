package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type LedgerService interface {
	Balance() decimal.Decimal
	Accounts() []models.LinkedAccount
	Transactions() []models.Transaction
	UnlinkAccount(ctx context.Context, id string)
}

type WalletService interface {
	AddMoney(ctx context.Context, amount, source string) (decimal.Decimal, error)
	LinkAccount(ctx context.Context, provider, number string, kind *string) (models.LinkedAccount, error)
}

type walletHandlers struct {
	ResponseHandler response.ResponseHandler
	LedgerSvc       LedgerService
	WalletSvc       WalletService
}

func NewWalletHandlers(deps *Deps) *walletHandlers {
	return &walletHandlers{
		ResponseHandler: deps.ResponseHandler,
		LedgerSvc:       deps.LedgerSvc,
		WalletSvc:       deps.WalletSvc,
	}
}

func (h *walletHandlers) WalletRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetWallet)
	r.Post("/add-money", h.AddMoney)
	r.Post("/accounts", h.LinkAccount)
	r.Delete("/accounts/{accountId}", h.UnlinkAccount)
	r.Get("/transactions", h.ListTransactions)
	return r
}

func (h *walletHandlers) GetWallet(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.wallet(h.LedgerSvc.Balance()))
}

func (h *walletHandlers) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMoneyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	balance, err := h.WalletSvc.AddMoney(r.Context(), req.Amount, req.Source)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.wallet(balance))
}

func (h *walletHandlers) LinkAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.LinkAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	acct, err := h.WalletSvc.LinkAccount(r.Context(), req.Provider, req.Number, req.Kind)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, acct)
}

func (h *walletHandlers) UnlinkAccount(w http.ResponseWriter, r *http.Request) {
	h.LedgerSvc.UnlinkAccount(r.Context(), chi.URLParam(r, "accountId"))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.wallet(h.LedgerSvc.Balance()))
}

func (h *walletHandlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.LedgerSvc.Transactions())
}

func (h *walletHandlers) wallet(balance decimal.Decimal) dto.WalletResponse {
	return dto.WalletResponse{
		Balance:  balance.StringFixed(2),
		Accounts: h.LedgerSvc.Accounts(),
	}
}
