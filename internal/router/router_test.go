package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gatewayclient "github.com/GregMSThompson/nirvor-backend/internal/client/gateway"
	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/handlers"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/internal/services"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

type testApp struct {
	handler http.Handler
	ledger  interface{ Transactions() []models.Transaction }
}

func newTestApp(t *testing.T, opts ...func(*handlers.Deps)) testApp {
	t.Helper()
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))

	toasts := services.NewToastService(10, "")
	feed := services.NewNotificationService(toasts, toasts)
	content := services.NewContentService(nil, nil, seed.DefaultBundle(), time.Second)
	settings := services.NewSettingsService("en", content, feed)
	settings.SeedFeed(logger.ToContext(t.Context(), log))
	ledger := services.NewLedgerService(seed.Wallet(), nil)
	directory := seed.NewDirectory()
	gateway := gatewayclient.NewSimulated(0, gatewayclient.WithDelays(gatewayclient.Delays{}))

	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(),
		ContentSvc:      content,
		SettingsSvc:     settings,
		NotificationSvc: feed,
		ToastSvc:        toasts,
		LedgerSvc:       ledger,
		WalletSvc:       services.NewWalletService(ledger, toasts, settings, services.WalletDelays{}),
		PaymentSvc:      services.NewPaymentService(gateway, ledger, toasts, directory, settings, time.Second, time.UTC),
		TicketSvc:       services.NewTicketService(directory, 0),
		Locations:       directory,
		AssistantRate:   100,
		AssistantBurst:  100,
	}
	for _, opt := range opts {
		opt(deps)
	}
	return testApp{handler: NewRouter(deps), ledger: ledger}
}

func (a testApp) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr.Code, env
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	code, env := app.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestPaymentHappyPathOverHTTP(t *testing.T) {
	app := newTestApp(t)
	before := len(app.ledger.Transactions())

	steps := []struct {
		path string
		body string
		want models.PaymentStep
	}{
		{"/payments/session", `{"service":"Electricity","district":"Dhaka","upazila":"Savar"}`, models.StepInput},
		{"/payments/session/submit", `{"provider":"DESCO (Dhaka) Prepaid","accountNumber":"1234567","amount":"500"}`, models.StepConfirm},
		{"/payments/session/proceed", ``, models.StepMethod},
		{"/payments/session/method", `{"method":"Rocket"}`, models.StepGatewayNumber},
		{"/payments/session/number", `{"number":"01811111111"}`, models.StepGatewayOTP},
		{"/payments/session/otp", `{"otp":"1234"}`, models.StepGatewayPIN},
		{"/payments/session/pin", `{"pin":"12345"}`, models.StepSuccess},
	}
	for _, step := range steps {
		code, env := app.do(t, http.MethodPost, step.path, step.body)
		require.Less(t, code, 300, step.path)

		var view dto.PaymentSessionView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		require.Equal(t, step.want, view.Step, step.path)
	}

	assert.Len(t, app.ledger.Transactions(), before+1)

	code, env := app.do(t, http.MethodGet, "/payments/session/receipt", "")
	assert.Equal(t, http.StatusOK, code)
	var tx models.Transaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, "Rocket", tx.Method)

	code, _ = app.do(t, http.MethodDelete, "/payments/session", "")
	assert.Equal(t, http.StatusOK, code)
	code, env = app.do(t, http.MethodGet, "/payments/session", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Code)
}

func TestBroadcastOverHTTP(t *testing.T) {
	app := newTestApp(t)

	_, env := app.do(t, http.MethodGet, "/notifications", "")
	var before dto.NotificationsResponse
	require.NoError(t, json.Unmarshal(env.Data, &before))

	code, _ := app.do(t, http.MethodPost, "/notifications/broadcast", `{"title":"Cyclone","message":"Signal 7"}`)
	require.Equal(t, http.StatusCreated, code)

	_, env = app.do(t, http.MethodGet, "/notifications", "")
	var after dto.NotificationsResponse
	require.NoError(t, json.Unmarshal(env.Data, &after))
	assert.Equal(t, before.Unread+1, after.Unread)
	assert.Equal(t, "Cyclone", after.Notifications[0].Title)

	_, env = app.do(t, http.MethodPost, "/notifications/read-all", "")
	var read dto.NotificationsResponse
	require.NoError(t, json.Unmarshal(env.Data, &read))
	assert.Zero(t, read.Unread)

	_, env = app.do(t, http.MethodGet, "/toasts", "")
	var toasts []models.Toast
	require.NoError(t, json.Unmarshal(env.Data, &toasts))
	require.Len(t, toasts, 1)
	assert.Equal(t, "Cyclone: Signal 7", toasts[0].Message)
}

func TestTicketFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.do(t, http.MethodPost, "/tickets/session", `{"service":"Bus Ticket","district":"Dhaka","upazila":"Savar"}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = app.do(t, http.MethodPost, "/tickets/session/pay", "")
	require.Equal(t, http.StatusOK, code)
	code, env := app.do(t, http.MethodPost, "/tickets/session/reference", `{"reference":"BUS-42"}`)
	require.Equal(t, http.StatusOK, code)

	var view dto.TicketSessionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.TicketStepSuccess, view.Step)
}

func TestLocationsAndCatalog(t *testing.T) {
	app := newTestApp(t)

	code, env := app.do(t, http.MethodGet, "/locations", "")
	require.Equal(t, http.StatusOK, code)
	var districts []seed.DistrictEntry
	require.NoError(t, json.Unmarshal(env.Data, &districts))
	assert.NotEmpty(t, districts)

	code, env = app.do(t, http.MethodGet, "/payments/catalog", "")
	require.Equal(t, http.StatusOK, code)
	var catalog dto.PaymentCatalog
	require.NoError(t, json.Unmarshal(env.Data, &catalog))
	assert.Contains(t, catalog.Wallets, "bKash")
}

func TestAssistantAndGatewayHaveSeparateRateBuckets(t *testing.T) {
	app := newTestApp(t, func(d *handlers.Deps) {
		d.AssistantRate = 0.001
		d.AssistantBurst = 1
	})

	code, _ := app.do(t, http.MethodPost, "/assistant/query", `{`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, env := app.do(t, http.MethodPost, "/assistant/query", `{`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "rate_limited", env.Code)

	// an exhausted assistant bucket does not block the wallet steps
	code, _ = app.do(t, http.MethodPost, "/payments/session/number", `{"number":"01811111111"}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, env = app.do(t, http.MethodPost, "/payments/session/otp", `{"otp":"1234"}`)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "rate_limited", env.Code)
}
