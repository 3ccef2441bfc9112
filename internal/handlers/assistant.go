package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type AssistantService interface {
	Query(ctx context.Context, req dto.AssistantQueryRequest) (dto.AssistantQueryResponse, error)
}

type assistantHandlers struct {
	ResponseHandler response.ResponseHandler
	AssistantSvc    AssistantService
}

func NewAssistantHandlers(deps *Deps) *assistantHandlers {
	return &assistantHandlers{
		ResponseHandler: deps.ResponseHandler,
		AssistantSvc:    deps.AssistantSvc,
	}
}

func (h *assistantHandlers) AssistantRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/query", h.Query)
	return r
}

func (h *assistantHandlers) Query(w http.ResponseWriter, r *http.Request) {
	var req dto.AssistantQueryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, err := h.AssistantSvc.Query(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
