package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GregMSThompson/nirvor-backend/internal/response"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestRateLimiterPerClient(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, response.New())
	h := limiter.RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/assistant/query", nil).WithContext(helpers.TestCtx())
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000"))
}
