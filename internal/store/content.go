package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

// contentStore reads the published content bundle from a single Firestore
// document (appData/v1 by default).
type contentStore struct {
	Client *firestore.Client
	Doc    *firestore.DocumentRef
}

func NewContentStore(client *firestore.Client, collection, doc string) *contentStore {
	return &contentStore{
		Client: client,
		Doc:    client.Collection(collection).Doc(doc),
	}
}

func (cs *contentStore) Fetch(ctx context.Context) (models.ContentBundle, error) {
	var bundle models.ContentBundle

	snap, err := cs.Doc.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return bundle, errs.NewNotFoundError(fmt.Sprintf("content document %s not found", cs.Doc.Path))
	}
	if err != nil {
		return bundle, errs.NewExternalServiceError("firestore", "failed to fetch content", true, err)
	}
	if err := snap.DataTo(&bundle); err != nil {
		return models.ContentBundle{}, errs.NewValidationError("remote bundle has an unexpected shape")
	}
	return bundle, nil
}

// Publish replaces the remote bundle, used by the sync job to bootstrap an
// empty project with the compiled-in data.
func (cs *contentStore) Publish(ctx context.Context, bundle models.ContentBundle) error {
	if _, err := cs.Doc.Set(ctx, bundle); err != nil {
		return errs.NewDatabaseError("content.publish", "failed to publish content", err)
	}
	return nil
}
