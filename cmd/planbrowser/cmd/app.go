package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/planbrowser/internal/catalog"
	"github.com/dbsmedya/planbrowser/internal/config"
	"github.com/dbsmedya/planbrowser/internal/database"
	"github.com/dbsmedya/planbrowser/internal/logger"
	"github.com/dbsmedya/planbrowser/internal/render"
	"github.com/dbsmedya/planbrowser/internal/storage/file"
	"github.com/dbsmedya/planbrowser/internal/storage/memory"
	"github.com/dbsmedya/planbrowser/internal/storage/sqlkv"
	"github.com/dbsmedya/planbrowser/internal/store"
)

// app holds what every catalog command needs for one invocation.
type app struct {
	ctx     context.Context
	cfg     *config.Config
	log     *logger.Logger
	medium  store.Medium
	catalog *catalog.Session
	out     *render.Renderer
	errOut  *render.Renderer

	closers  []func() error
	reported int
}

// loadConfig reads the config file, applies CLI overrides and validates.
// Only an explicitly named config file has to exist.
func loadConfig() (*config.Config, error) {
	configFile := GetConfigFile()
	cfg, err := config.LoadOrDefault(configFile, configFile != defaultConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Backend, overrides.DataDir, overrides.NoColor)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and connects the storage medium without
// opening the catalog.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := database.SetupSignalHandler(cmd.Context())
	a := &app{
		ctx:    ctx,
		cfg:    cfg,
		log:    log,
		out:    render.New(cmd.OutOrStdout(), cfg.Display.Color),
		errOut: render.New(cmd.ErrOrStderr(), cfg.Display.Color),
		closers: []func() error{
			func() error { stop(); return nil },
		},
	}

	medium, err := a.openMedium()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.medium = medium
	return a, nil
}

// openApp is newApp plus an open catalog session.
func openApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}

	session, err := catalog.Open(a.ctx, a.medium, catalog.Options{
		PersistSelection: a.cfg.Selection.Persist,
		SelectionKey:     a.cfg.Selection.Key,
		Logger:           a.log,
		StoreOptions:     []store.Option{store.WithKey(a.cfg.Storage.Key)},
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	a.catalog = session
	a.reportNotices()
	return a, nil
}

func (a *app) openMedium() (store.Medium, error) {
	log := a.log.WithBackend(a.cfg.Storage.Backend)

	switch a.cfg.Storage.Backend {
	case config.BackendMemory:
		log.Debug("Using in-memory storage, changes are discarded on exit")
		return memory.New(), nil

	case config.BackendFile:
		log.Debugw("Using file storage", "dir", a.cfg.Storage.File.Dir)
		return file.New(a.cfg.Storage.File.Dir), nil

	case config.BackendMySQL:
		dbCfg := &a.cfg.Storage.MySQL
		manager := database.NewManager(dbCfg)
		if err := manager.Connect(a.ctx); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, manager.Close)

		medium, err := sqlkv.New(manager.DB, dbCfg.Table, a.log)
		if err != nil {
			return nil, err
		}
		if err := medium.EnsureSchema(a.ctx); err != nil {
			return nil, err
		}
		log.Debugw("Using MySQL storage", "host", dbCfg.Host, "database", dbCfg.Database, "table", dbCfg.Table)
		return medium, nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", a.cfg.Storage.Backend)
}

// reportNotices prints catalog notices not yet shown.
func (a *app) reportNotices() {
	if a.catalog == nil {
		return
	}
	notices := a.catalog.Notices()
	for _, n := range notices[a.reported:] {
		a.errOut.Notice(n)
	}
	a.reported = len(notices)
}

// Close reports pending notices and releases resources in reverse order.
func (a *app) Close() {
	a.reportNotices()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warnw("Failed to release resource", "error", err)
		}
	}
	a.closers = nil
	_ = a.log.Sync()
}
