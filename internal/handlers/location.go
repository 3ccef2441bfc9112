package handlers

import (
	"net/http"

	"github.com/GregMSThompson/nirvor-backend/internal/response"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
)

type LocationDirectory interface {
	Districts() []seed.DistrictEntry
}

type locationHandlers struct {
	ResponseHandler response.ResponseHandler
	Locations       LocationDirectory
}

func NewLocationHandlers(deps *Deps) *locationHandlers {
	return &locationHandlers{
		ResponseHandler: deps.ResponseHandler,
		Locations:       deps.Locations,
	}
}

func (h *locationHandlers) ListDistricts(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.Locations.Districts())
}
