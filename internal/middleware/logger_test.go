package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

func TestLoggerMiddlewareScopesLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewCloudRunHandlerTo(&buf, slog.LevelInfo))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(NewLoggerMiddleware(log).LoggerMiddleware)
	r.Get("/wallet", func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	type entry struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	var inside, done entry
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &done))
	assert.Equal(t, "/wallet", inside.Data["path"])
	assert.NotEmpty(t, inside.Data["request_id"])
	assert.Equal(t, "request completed", done.Message)
	assert.EqualValues(t, http.StatusTeapot, done.Data["status"])
}
