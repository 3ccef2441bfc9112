package dto

import (
	"time"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

type ContentResponse struct {
	Language models.Language      `json:"language"`
	Source   models.ContentSource `json:"source"`
	Loading  bool                 `json:"loading"`
	LastSync *time.Time           `json:"lastSync,omitempty"`
	Data     *models.LanguageData `json:"data"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type NotificationsResponse struct {
	Unread        int                   `json:"unread"`
	Notifications []models.Notification `json:"notifications"`
}
