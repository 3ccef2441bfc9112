package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/nirvor-backend/internal/bootstrap"
	"github.com/GregMSThompson/nirvor-backend/internal/config"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/internal/services"
	"github.com/GregMSThompson/nirvor-backend/internal/store"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

func main() {
	if err := syncCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func syncCmd() *cobra.Command {
	var publishDefault bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull the remote content bundle into the local cache",
		Long: `Fetch the content document from Firestore once, validate it and write
it to the local store. Exits non-zero when the fetch or the write fails.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), publishDefault)
		},
	}
	cmd.Flags().BoolVar(&publishDefault, "publish-default", false, "write the compiled-in content bundle to Firestore before syncing")

	return cmd
}

func runSync(ctx context.Context, publishDefault bool) error {
	cfg, err := config.New()
	if err != nil {
		slog.Error("config failed", "error", err)
		return err
	}
	log := logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	ctx = logger.ToContext(ctx, log)

	kv, err := bootstrap.InitKV(ctx, cfg)
	if err != nil {
		log.Error("local store failed", "error", err)
		return err
	}
	defer func() {
		if closeErr := kv.Close(); closeErr != nil {
			log.Error("failed to close local store", "error", closeErr)
		}
	}()

	fs, err := bootstrap.InitFirestore(ctx, cfg.ProjectID)
	if err != nil {
		log.Error("firestore failed", "error", err)
		return err
	}
	defer fs.Close()

	remote := store.NewContentStore(fs, cfg.ContentCollection, cfg.ContentDoc)
	if publishDefault {
		if err := remote.Publish(ctx, seed.DefaultBundle()); err != nil {
			log.Error("publish failed", "error", err)
			return err
		}
		log.Info("default content published", "collection", cfg.ContentCollection, "doc", cfg.ContentDoc)
	}

	content := services.NewContentService(remote, store.NewLocalContentStore(kv), seed.DefaultBundle(), cfg.ContentFetchTimeout)
	if err := content.Sync(ctx); err != nil {
		log.Error("content sync failed", "error", err)
		return fmt.Errorf("sync: %w", err)
	}
	log.Info("content synced", "source", content.Source(), "last_sync", content.LastSync())
	return nil
}
