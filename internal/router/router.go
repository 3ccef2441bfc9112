package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/nirvor-backend/internal/handlers"
	"github.com/GregMSThompson/nirvor-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	// same settings, separate buckets per client
	assistantLimiter := middleware.NewRateLimiter(deps.AssistantRate, deps.AssistantBurst, deps.ResponseHandler)
	gatewayLimiter := middleware.NewRateLimiter(deps.AssistantRate, deps.AssistantBurst, deps.ResponseHandler)

	hh := handlers.NewHealthHandlers(deps)
	ch := handlers.NewContentHandlers(deps)
	sh := handlers.NewSettingsHandlers(deps)
	nh := handlers.NewNotificationHandlers(deps)
	th := handlers.NewToastHandlers(deps)
	lh := handlers.NewLocationHandlers(deps)
	wh := handlers.NewWalletHandlers(deps)
	ph := handlers.NewPaymentHandlers(deps, gatewayLimiter.RateLimitMiddleware)
	tkh := handlers.NewTicketHandlers(deps)
	ah := handlers.NewAssistantHandlers(deps)

	r.Get("/healthz", hh.Healthz)
	r.Get("/toasts", th.Drain)
	r.Get("/locations", lh.ListDistricts)
	r.Mount("/content", ch.ContentRoutes())
	r.Mount("/settings", sh.SettingsRoutes())
	r.Mount("/notifications", nh.NotificationRoutes())
	r.Mount("/wallet", wh.WalletRoutes())
	r.Mount("/payments", ph.PaymentRoutes())
	r.Mount("/tickets", tkh.TicketRoutes())
	r.With(assistantLimiter.RateLimitMiddleware).Mount("/assistant", ah.AssistantRoutes())
	return r
}
