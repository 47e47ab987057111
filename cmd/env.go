package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jfmyers9/srfsongs/internal/auth"
	"github.com/jfmyers9/srfsongs/internal/config"
	"github.com/jfmyers9/srfsongs/internal/console"
	"github.com/jfmyers9/srfsongs/internal/credentials"
	"github.com/jfmyers9/srfsongs/internal/menu"
	"github.com/jfmyers9/srfsongs/internal/songfeed"
	"github.com/jfmyers9/srfsongs/pkg/srf"
	"github.com/rs/zerolog"
)

// env holds everything a command needs, built from config and flags
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	console *console.Console
	store   credentials.Store
	feed    *songfeed.Feed

	closers []func() error
}

// newEnv loads configuration, applies global flags, and wires the components
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flagUsersFile != "" {
		cfg.UsersFile = flagUsersFile
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}

	e := &env{cfg: cfg}
	e.logger = setupLogger(cfg.LogFile, cfg.LogLevel)
	e.console = console.NewTerminal()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	e.store = store
	if closeStore != nil {
		e.closers = append(e.closers, closeStore)
	}

	httpClient := http.DefaultClient
	if cfg.Feed.Timeout > 0 {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Feed.Timeout) * time.Second}
	}

	client, err := srf.NewClient(srf.Config{
		URL:        cfg.Feed.URL,
		HTTPClient: httpClient,
		UserAgent:  "srfsongs/" + version,
		Logger:     debugLogger{logger: e.logger.With().Str("component", "srf").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create song list client: %w", err)
	}

	e.feed = songfeed.New(client, e.logger)
	e.feed.Width = cfg.OutputWidth

	e.logger.Debug().
		Str("store", cfg.Store).
		Str("users_file", cfg.UsersFile).
		Str("feed_url", cfg.Feed.URL).
		Msg("Configuration loaded")

	return e, nil
}

// menu builds the interactive menu around the given song viewer
func (e *env) menu(view menu.ViewFunc) *menu.Controller {
	out := e.console.Out()
	flow := auth.New(e.store, e.console, out, auth.Config{MaxAttempts: e.cfg.Auth.MaxAttempts}, e.logger)
	return menu.New(flow, view, e.console, out, e.logger)
}

// Close releases resources held by the environment
func (e *env) Close() {
	for _, c := range e.closers {
		if err := c(); err != nil {
			e.logger.Error().Err(err).Msg("Error during shutdown")
		}
	}
}

// openStore returns the configured credential store and an optional close func
func openStore(cfg *config.Config) (credentials.Store, func() error, error) {
	switch cfg.Store {
	case "", config.StoreCSV:
		return credentials.NewCSVStore(cfg.UsersFile), nil, nil
	case config.StoreSQLite:
		store, err := credentials.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open credential database: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential store %q (want %q or %q)", cfg.Store, config.StoreCSV, config.StoreSQLite)
	}
}
