package database

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
)

// NewStore opens the document store selected by STORE_DRIVER. app is only
// used by the firestore driver and may be nil otherwise.
func NewStore(ctx context.Context, cfg *config.Config, app *firebase.App, log zerolog.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		if app == nil {
			return nil, fmt.Errorf("firestore driver requires a firebase app")
		}
		client, err := NewFirestoreClient(ctx, app, log)
		if err != nil {
			return nil, err
		}
		return docstore.NewFirestore(client, cfg.TxMaxAttempts), nil

	case config.StorePostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return docstore.NewPostgres(pool), nil

	case config.StoreMemory:
		log.Warn().Msg("Using in-memory document store, data is lost on restart")
		return docstore.NewMemory(), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
