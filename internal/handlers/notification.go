package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type NotificationService interface {
	Broadcast(ctx context.Context, title, message string) (models.Notification, error)
	MarkAllRead(ctx context.Context)
	UnreadCount() int
	List() []models.Notification
}

type notificationHandlers struct {
	ResponseHandler response.ResponseHandler
	NotificationSvc NotificationService
}

func NewNotificationHandlers(deps *Deps) *notificationHandlers {
	return &notificationHandlers{
		ResponseHandler: deps.ResponseHandler,
		NotificationSvc: deps.NotificationSvc,
	}
}

func (h *notificationHandlers) NotificationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/broadcast", h.Broadcast)
	r.Post("/read-all", h.MarkAllRead)
	return r
}

func (h *notificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.feed())
}

func (h *notificationHandlers) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req dto.BroadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	n, err := h.NotificationSvc.Broadcast(r.Context(), req.Title, req.Message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, n)
}

func (h *notificationHandlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.NotificationSvc.MarkAllRead(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.feed())
}

func (h *notificationHandlers) feed() dto.NotificationsResponse {
	return dto.NotificationsResponse{
		Unread:        h.NotificationSvc.UnreadCount(),
		Notifications: h.NotificationSvc.List(),
	}
}
