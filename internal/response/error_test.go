package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("no session"), http.StatusNotFound, "not_found"},
		{"exists", errs.NewAlreadyExistsError("linked"), http.StatusConflict, "already_exists"},
		{"validation", errs.NewValidationError("amount"), http.StatusBadRequest, "invalid_input"},
		{"wrapped validation", fmt.Errorf("submit: %w", errs.NewValidationError("amount")), http.StatusBadRequest, "invalid_input"},
		{"state", errs.NewInvalidStateError("busy"), http.StatusConflict, "invalid_state"},
		{"database", errs.NewDatabaseError("get", "boom", nil), http.StatusInternalServerError, "internal_error"},
		{"transient", errs.NewExternalServiceError("gateway", "Network connection error", true, nil), http.StatusServiceUnavailable, "service_unavailable"},
		{"permanent", errs.NewExternalServiceError("vertex", "down", false, nil), http.StatusBadGateway, "service_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	h := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
			w := httptest.NewRecorder()

			h.HandleError(w, r, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
	w := httptest.NewRecorder()

	New().WriteSuccess(w, r, http.StatusCreated, map[string]int{"unread": 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"unread":2}}`, w.Body.String())
}
