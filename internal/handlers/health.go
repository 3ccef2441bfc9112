package handlers

import (
	"net/http"

	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	ContentSvc      ContentService
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		ContentSvc:      deps.ContentSvc,
	}
}

func (h *healthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]any{
		"status":        "ok",
		"contentSource": h.ContentSvc.Source(),
	})
}
