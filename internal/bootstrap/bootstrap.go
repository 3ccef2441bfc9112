package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"
	"github.com/go-redis/redis/v8"

	vertexclient "github.com/GregMSThompson/nirvor-backend/internal/client/vertex"
	"github.com/GregMSThompson/nirvor-backend/internal/config"
	"github.com/GregMSThompson/nirvor-backend/internal/store"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

// KV is the local key/value backend behind the content cache and wallet
// snapshots.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Bootstrap struct {
	Log           *slog.Logger
	Firestore     *firestore.Client
	KMS           *gcpkms.KeyManagementClient
	VertexAdapter *vertexclient.Adapter
	KV            KV
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	ctx = logger.ToContext(ctx, bs.Log)

	bs.KV, err = InitKV(ctx, cfg)
	if err != nil {
		return bs, fmt.Errorf("local store: %w", err)
	}
	bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID)
	if err != nil {
		return bs, fmt.Errorf("firestore: %w", err)
	}
	if cfg.KMSKeyName != "" {
		bs.KMS, err = gcpkms.NewKeyManagementClient(ctx)
		if err != nil {
			return bs, fmt.Errorf("kms: %w", err)
		}
	} else {
		bs.Log.Warn("KMSKEYNAME not set, wallet snapshots are stored unencrypted")
	}
	bs.VertexAdapter, err = vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
	if err != nil {
		return bs, fmt.Errorf("vertex: %w", err)
	}

	return bs, nil
}

// InitKV opens the local store selected by LOCALSTORE.
func InitKV(ctx context.Context, cfg *config.Config) (KV, error) {
	switch cfg.LocalStore {
	case config.LocalStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, err
		}
		return store.NewRedisKV(client), nil
	case config.LocalStoreSQLite:
		kv, err := store.NewSQLiteKV(ctx, filepath.Join(cfg.DataDir, "nirvor.db"))
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown local store %q", cfg.LocalStore)
	}
}

// Close releases every client that was opened, even after a partial Run.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.VertexAdapter != nil {
		errList = append(errList, bs.VertexAdapter.Close())
	}
	if bs.KMS != nil {
		errList = append(errList, bs.KMS.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.KV != nil {
		errList = append(errList, bs.KV.Close())
	}
	return errors.Join(errList...)
}
