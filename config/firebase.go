package config

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewFirebaseApp builds the Firebase app shared by the Firestore store and the ID token verifier.
func NewFirebaseApp(ctx context.Context, cfg Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
