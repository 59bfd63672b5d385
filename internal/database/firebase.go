package database

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/careerpath/admin-backend/internal/config"
)

// NewFirebaseApp initializes the Firebase Admin SDK from a service account
// file. When the file is absent (e.g. on GCP or against the emulators)
// application default credentials are used.
func NewFirebaseApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*firebase.App, error) {
	var opts []option.ClientOption
	if _, err := os.Stat(cfg.FirebaseCredentialsFile); err == nil {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	} else {
		log.Warn().
			Str("file", cfg.FirebaseCredentialsFile).
			Msg("Service account file not found, using application default credentials")
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app, nil
}

// NewFirestoreClient opens a Firestore client from the Firebase app.
func NewFirestoreClient(ctx context.Context, app *firebase.App, log zerolog.Logger) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	log.Info().Msg("Firestore connected")
	return client, nil
}

// NewAuthClient opens a Firebase Auth client used to verify ID tokens.
func NewAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("create auth client: %w", err)
	}
	return client, nil
}
