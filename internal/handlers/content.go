package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type ContentService interface {
	Language(lang models.Language) *models.LanguageData
	Loading() bool
	LastSync() time.Time
	Source() models.ContentSource
	Refresh(ctx context.Context)
}

type contentHandlers struct {
	ResponseHandler response.ResponseHandler
	ContentSvc      ContentService
	SettingsSvc     SettingsService
}

func NewContentHandlers(deps *Deps) *contentHandlers {
	return &contentHandlers{
		ResponseHandler: deps.ResponseHandler,
		ContentSvc:      deps.ContentSvc,
		SettingsSvc:     deps.SettingsSvc,
	}
}

func (h *contentHandlers) ContentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetContent)
	r.Post("/refresh", h.Refresh)
	return r
}

// GetContent serves the active bundle section for ?lang, defaulting to the
// configured display language.
func (h *contentHandlers) GetContent(w http.ResponseWriter, r *http.Request) {
	lang := h.SettingsSvc.Language()
	if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" {
		lang = models.Language(q)
		if !lang.Valid() {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("lang must be bn or en"))
			return
		}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.view(lang))
}

// Refresh re-fetches the remote bundle. Fetch failures are not reported;
// the response shows whichever bundle is active afterwards.
func (h *contentHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	h.ContentSvc.Refresh(r.Context())
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.view(h.SettingsSvc.Language()))
}

func (h *contentHandlers) view(lang models.Language) dto.ContentResponse {
	resp := dto.ContentResponse{
		Language: lang,
		Source:   h.ContentSvc.Source(),
		Loading:  h.ContentSvc.Loading(),
		Data:     h.ContentSvc.Language(lang),
	}
	if last := h.ContentSvc.LastSync(); !last.IsZero() {
		resp.LastSync = &last
	}
	return resp
}
