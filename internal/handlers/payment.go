package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type PaymentService interface {
	Catalog() dto.PaymentCatalog
	Open(ctx context.Context, req dto.OpenSessionRequest) (dto.PaymentSessionView, error)
	Current(ctx context.Context) (dto.PaymentSessionView, error)
	Close(ctx context.Context) error
	Submit(ctx context.Context, in dto.PaymentInput) (dto.PaymentSessionView, error)
	Proceed(ctx context.Context) (dto.PaymentSessionView, error)
	Back(ctx context.Context) (dto.PaymentSessionView, error)
	SelectMethod(ctx context.Context, method string) (dto.PaymentSessionView, error)
	UseSavedAccount(ctx context.Context, accountID string) (dto.PaymentSessionView, error)
	UseAnotherAccount(ctx context.Context) (dto.PaymentSessionView, error)
	SubmitNumber(ctx context.Context, number string) (dto.PaymentSessionView, error)
	SubmitOTP(ctx context.Context, otp string) (dto.PaymentSessionView, error)
	SubmitPIN(ctx context.Context, pin string) (dto.PaymentSessionView, error)
	Cancel(ctx context.Context) (dto.PaymentSessionView, error)
	Receipt(ctx context.Context) (models.Transaction, error)
}

type paymentHandlers struct {
	ResponseHandler response.ResponseHandler
	PaymentSvc      PaymentService
	gatewayLimit    func(http.Handler) http.Handler
}

func NewPaymentHandlers(deps *Deps, gatewayLimit func(http.Handler) http.Handler) *paymentHandlers {
	return &paymentHandlers{
		ResponseHandler: deps.ResponseHandler,
		PaymentSvc:      deps.PaymentSvc,
		gatewayLimit:    gatewayLimit,
	}
}

func (h *paymentHandlers) PaymentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/catalog", h.Catalog)
	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.Open)
		r.Get("/", h.Current)
		r.Delete("/", h.Close)
		r.Post("/submit", h.Submit)
		r.Post("/proceed", h.Proceed)
		r.Post("/back", h.Back)
		r.Post("/method", h.SelectMethod)
		r.Post("/another-account", h.UseAnotherAccount)
		r.Post("/cancel", h.Cancel)
		r.Get("/receipt", h.Receipt)

		// steps that reach the wallet gateway
		r.Group(func(r chi.Router) {
			if h.gatewayLimit != nil {
				r.Use(h.gatewayLimit)
			}
			r.Post("/saved-account", h.UseSavedAccount)
			r.Post("/number", h.SubmitNumber)
			r.Post("/otp", h.SubmitOTP)
			r.Post("/pin", h.SubmitPIN)
		})
	})
	return r
}

func (h *paymentHandlers) Catalog(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.PaymentSvc.Catalog())
}

func (h *paymentHandlers) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.Open(r.Context(), req)
	h.respond(w, r, http.StatusCreated, view, err)
}

func (h *paymentHandlers) Current(w http.ResponseWriter, r *http.Request) {
	view, err := h.PaymentSvc.Current(r.Context())
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.PaymentSvc.Close(r.Context()); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *paymentHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.Submit(r.Context(), req)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.SelectMethod(r.Context(), req.Method)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) UseSavedAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.SavedAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.UseSavedAccount(r.Context(), req.AccountID)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) SubmitNumber(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayNumberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.SubmitNumber(r.Context(), req.Number)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) SubmitOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayOTPInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.SubmitOTP(r.Context(), req.OTP)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) SubmitPIN(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayPINInput
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.PaymentSvc.SubmitPIN(r.Context(), req.PIN)
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) Receipt(w http.ResponseWriter, r *http.Request) {
	tx, err := h.PaymentSvc.Receipt(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *paymentHandlers) Proceed(w http.ResponseWriter, r *http.Request) {
	view, err := h.PaymentSvc.Proceed(r.Context())
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) Back(w http.ResponseWriter, r *http.Request) {
	view, err := h.PaymentSvc.Back(r.Context())
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) UseAnotherAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.PaymentSvc.UseAnotherAccount(r.Context())
	h.respond(w, r, http.StatusOK, view, err)
}

// Cancel leaves the wallet screens for method selection.
func (h *paymentHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	view, err := h.PaymentSvc.Cancel(r.Context())
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *paymentHandlers) respond(w http.ResponseWriter, r *http.Request, status int, view dto.PaymentSessionView, err error) {
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, status, view)
}
