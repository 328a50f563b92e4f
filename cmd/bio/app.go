package main

import (
	"context"
	"fmt"

	"github.com/guimoneda/gradient-bio/internal/config"
	"github.com/guimoneda/gradient-bio/internal/fetch"
	"github.com/guimoneda/gradient-bio/internal/observability"
	"github.com/guimoneda/gradient-bio/internal/profile"
	"github.com/guimoneda/gradient-bio/internal/snapshot"
	"go.uber.org/zap"
)

// app is the wiring shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	snapshots snapshot.Store
	store     *profile.Store
}

// loadConfig layers the persistent flags over the file and environment config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if snapshotURL != "" {
		cfg.SnapshotURL = snapshotURL
	}
	if profileURL != "" {
		cfg.ProfileURL = profileURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp builds the store without resolving the document.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	snapshots, err := snapshot.Open(ctx, cfg.SnapshotURL)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = cfg.FetchTimeout()

	store := profile.New(profile.Options{
		Snapshots:   snapshots,
		SnapshotKey: cfg.SnapshotKey,
		RemoteURL:   cfg.ProfileURL,
		Fetch:       fetchOpts,
		Logger:      logger,
	})

	return &app{cfg: cfg, logger: logger, snapshots: snapshots, store: store}, nil
}

// loadApp opens the app and resolves the current document.
func loadApp(ctx context.Context) (*app, error) {
	a, err := openApp(ctx)
	if err != nil {
		return nil, err
	}
	source := a.store.Load(ctx)
	a.logger.Debug("profile loaded", zap.String("source", string(source)))
	return a, nil
}

func (a *app) Close() {
	if err := a.snapshots.Close(); err != nil {
		a.logger.Warn("failed to close snapshot store", zap.Error(err))
	}
	_ = a.logger.Sync()
}
