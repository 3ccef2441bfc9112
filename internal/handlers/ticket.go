package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type TicketService interface {
	Open(ctx context.Context, req dto.OpenSessionRequest) (dto.TicketSessionView, error)
	Current(ctx context.Context) (dto.TicketSessionView, error)
	StartPayment(ctx context.Context) (dto.TicketSessionView, error)
	SubmitReference(ctx context.Context, reference string) (dto.TicketSessionView, error)
	Close(ctx context.Context) error
}

type ticketHandlers struct {
	ResponseHandler response.ResponseHandler
	TicketSvc       TicketService
}

func NewTicketHandlers(deps *Deps) *ticketHandlers {
	return &ticketHandlers{
		ResponseHandler: deps.ResponseHandler,
		TicketSvc:       deps.TicketSvc,
	}
}

func (h *ticketHandlers) TicketRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/session", h.Open)
	r.Get("/session", h.Current)
	r.Delete("/session", h.Close)
	r.Post("/session/pay", h.StartPayment)
	r.Post("/session/reference", h.SubmitReference)
	return r
}

func (h *ticketHandlers) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.TicketSvc.Open(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, view)
}

func (h *ticketHandlers) Current(w http.ResponseWriter, r *http.Request) {
	view, err := h.TicketSvc.Current(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *ticketHandlers) StartPayment(w http.ResponseWriter, r *http.Request) {
	view, err := h.TicketSvc.StartPayment(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *ticketHandlers) SubmitReference(w http.ResponseWriter, r *http.Request) {
	var req dto.TicketReferenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	view, err := h.TicketSvc.SubmitReference(r.Context(), req.Reference)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *ticketHandlers) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.TicketSvc.Close(r.Context()); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
