package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
)

// maxBodyBytes caps request bodies; every payload here is a small form.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("invalid request body")
	}
	return nil
}
