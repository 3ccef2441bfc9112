package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/nirvor-backend/internal/bootstrap"
	gatewayclient "github.com/GregMSThompson/nirvor-backend/internal/client/gateway"
	"github.com/GregMSThompson/nirvor-backend/internal/config"
	"github.com/GregMSThompson/nirvor-backend/internal/crypto"
	"github.com/GregMSThompson/nirvor-backend/internal/handlers"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/response"
	"github.com/GregMSThompson/nirvor-backend/internal/router"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/internal/services"
	"github.com/GregMSThompson/nirvor-backend/internal/store"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx := context.Background()

	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()
	ctx = logger.ToContext(ctx, bs.Log)

	// helpers
	var sealer crypto.Sealer = crypto.NewPlain()
	if bs.KMS != nil {
		sealer = crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	}
	directory := seed.NewDirectory()

	// stores
	remote := store.NewContentStore(bs.Firestore, cfg.ContentCollection, cfg.ContentDoc)
	local := store.NewLocalContentStore(bs.KV)
	wstore := store.NewWalletStore(bs.KV, sealer)

	// services
	toasts := services.NewToastService(cfg.ToastCapacity, cfg.ChimeURL)
	notifications := services.NewNotificationService(toasts, toasts)
	content := services.NewContentService(remote, local, seed.DefaultBundle(), cfg.ContentFetchTimeout)
	settings := services.NewSettingsService(cfg.DefaultLanguage, content, notifications)
	content.OnUpdate(func(ctx context.Context, _ models.ContentBundle) {
		settings.SeedFeed(ctx)
	})

	ledger := services.NewLedgerService(seed.Wallet(), wstore)
	if err := ledger.Restore(ctx); err != nil {
		bs.Log.Warn("wallet restore failed, starting from seed wallet", "error", err)
	}
	wallet := services.NewWalletService(ledger, toasts, settings, services.DefaultWalletDelays())
	gateway := gatewayclient.NewSimulated(cfg.GatewayFailureRate)
	payments := services.NewPaymentService(gateway, ledger, toasts, directory, settings, cfg.GatewayTimeout, cfg.Location())
	tickets := services.NewTicketService(directory, services.DefaultTicketDelay)
	services.ExclusiveSessions(payments, tickets)
	assistant := services.NewAssistantService(bs.VertexAdapter, directory, settings, cfg.VertexModel)

	loaded := content.Start(ctx)
	go func() {
		// a failed first refresh leaves the default bundle, which still seeds the feed
		<-loaded
		settings.SeedFeed(ctx)
	}()

	// response handler
	rh := response.New()

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ContentSvc = content
	deps.SettingsSvc = settings
	deps.NotificationSvc = notifications
	deps.ToastSvc = toasts
	deps.LedgerSvc = ledger
	deps.WalletSvc = wallet
	deps.PaymentSvc = payments
	deps.TicketSvc = tickets
	deps.AssistantSvc = assistant
	deps.Locations = directory
	deps.AssistantRate = cfg.AssistantRate
	deps.AssistantBurst = cfg.AssistantBurst

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
