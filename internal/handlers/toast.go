package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type ToastService interface {
	Drain(ctx context.Context) []models.Toast
}

type toastHandlers struct {
	ResponseHandler response.ResponseHandler
	ToastSvc        ToastService
}

func NewToastHandlers(deps *Deps) *toastHandlers {
	return &toastHandlers{
		ResponseHandler: deps.ResponseHandler,
		ToastSvc:        deps.ToastSvc,
	}
}

// Drain hands the pending notices to the device; each is returned once.
func (h *toastHandlers) Drain(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.ToastSvc.Drain(r.Context()))
}
