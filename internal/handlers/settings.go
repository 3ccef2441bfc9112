package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
)

type SettingsService interface {
	Language() models.Language
	SetLanguage(ctx context.Context, value string) (models.Language, error)
}

type settingsHandlers struct {
	ResponseHandler response.ResponseHandler
	SettingsSvc     SettingsService
}

func NewSettingsHandlers(deps *Deps) *settingsHandlers {
	return &settingsHandlers{
		ResponseHandler: deps.ResponseHandler,
		SettingsSvc:     deps.SettingsSvc,
	}
}

func (h *settingsHandlers) SettingsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/language", h.GetLanguage)
	r.Put("/language", h.SetLanguage)
	return r
}

func (h *settingsHandlers) GetLanguage(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.LanguageRequest{Language: string(h.SettingsSvc.Language())})
}

func (h *settingsHandlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req dto.LanguageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	lang, err := h.SettingsSvc.SetLanguage(r.Context(), req.Language)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.LanguageRequest{Language: string(lang)})
}
