package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	configfile "github.com/custodia-labs/appreview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/appreview/internal/adapters/driven/dataset"
	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/appreview/internal/adapters/driving/cli"
	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/core/services"
	"github.com/custodia-labs/appreview/internal/logger"
)

// openConfigStore falls back to an unsaved in-memory store when the config
// directory cannot be used, so commands still run on defaults.
func openConfigStore(dir string) driven.ConfigStore {
	store, err := configfile.NewConfigStore(dir)
	if err != nil {
		logger.Warn("config: %v; settings will not be saved", err)
		return memory.NewConfigStore()
	}
	return store
}

// bootstrap wires the driven adapters into services for one command run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := configfile.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	settingsService := services.NewSettingsService(openConfigStore(configDir))

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	datasetSettings := settings.Dataset
	if path := strings.TrimSpace(opts.Dataset); path != "" {
		datasetSettings.Path = path
		datasetSettings.URL = ""
	}
	source := dataset.NewSource(dataset.Config{Dataset: datasetSettings})

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	commentStore, closeStore := openCommentStore(settings.CommentBackend, dataDir)

	var templates driven.TemplateStore
	stopWatch := func() {}
	if ts, err := configfile.NewTemplateStore(filepath.Join(configDir, "templates")); err == nil {
		templates = ts
		stopWatch = watchTemplates(ctx, ts)
	} else {
		logger.Warn("templates: %v, using built-in templates", err)
	}

	catalog := services.NewCatalogService(source)
	svc := &cli.Services{
		Catalog:  catalog,
		Comment:  services.NewCommentService(commentStore, settingsService),
		Access:   services.NewAccessService(settingsService),
		Settings: settingsService,
		Renderer: render.New(templates, ""),
		Close: func() error {
			stopWatch()
			if closeStore != nil {
				return closeStore()
			}
			return nil
		},

		Refresher: services.NewRefresher(catalog, settings.Server.RefreshInterval),
	}

	logger.Debug("config dir: %s", configDir)
	logger.Debug("comment backend: %s (%s)", settings.CommentBackend, dataDir)
	return svc, nil
}

// watchTemplates reloads edited templates until the returned stop func runs.
func watchTemplates(ctx context.Context, ts *configfile.TemplateStore) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ts.Watch(ctx); err != nil {
			logger.Debug("template watch disabled: %v", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// openCommentStore opens the configured backend. A SQLite or file store that
// cannot be opened falls back to memory so browsing keeps working.
func openCommentStore(backend domain.CommentBackend, dataDir string) (driven.CommentStore, func() error) {
	switch backend {
	case domain.CommentBackendFile:
		store, err := file.NewCommentStore(dataDir)
		if err == nil {
			return store, nil
		}
		logger.Warn("comment file: %v; comments will not be saved", err)
	case domain.CommentBackendMemory:
	default:
		store, err := sqlite.NewStore(dataDir)
		if err == nil {
			return store.CommentStore(), store.Close
		}
		if errors.Is(err, domain.ErrStorageCorrupt) {
			logger.Error("comment database: %v", err)
		}
		logger.Warn("comment database unavailable; comments will not be saved")
	}
	return memory.NewCommentStore(), nil
}
