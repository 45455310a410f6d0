package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pankajredekar/catalog/internal/config"
	"github.com/pankajredekar/catalog/internal/logging"
	"github.com/pankajredekar/catalog/internal/storage"
	"github.com/pankajredekar/catalog/internal/store"
	"github.com/pankajredekar/catalog/internal/utils"
	"go.uber.org/zap"
)

// app is what every catalog command works with
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	backend storage.Backend
	store   *store.Store
}

// openApp loads the config, connects to storage and loads the products
func openApp(ctx context.Context) (*app, error) {
	if !utils.FileExists(configPath) {
		return nil, fmt.Errorf("%s not found. Run 'catalog init' first", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.StorageURL)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s := store.New(backend, store.WithKey(cfg.StorageKey), store.WithLogger(log))
	if _, err := s.Initialize(ctx); err != nil {
		// The store starts empty and stays usable
		if errors.Is(err, store.ErrCorruptState) {
			utils.PrintWarning("Stored products could not be read; a copy was saved under %s.corrupt", cfg.StorageKey)
		} else {
			utils.PrintWarning("Failed to load products: %v", err)
		}
	}

	log.Debug("catalog opened", zap.String("storage", storage.Scheme(cfg.StorageURL)), zap.Int("products", s.Len()))
	return &app{cfg: cfg, log: log, backend: backend, store: s}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.log.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}
