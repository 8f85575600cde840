package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jswain/billfold/internal/config"
	"github.com/jswain/billfold/internal/logging"
	"github.com/jswain/billfold/internal/prefs"
	"github.com/jswain/billfold/internal/state"
	"github.com/jswain/billfold/internal/store"
	"github.com/jswain/billfold/internal/ui"
)

// Options configure the billfold application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/billfold/prefs.toml
	RefreshEvery int    // seconds; zero uses default
}

// Run boots the billfold TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := store.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init store client: %w", err)
	}

	invoices := &state.Store{}

	interval := defaultRefreshInterval
	if opts.RefreshEvery > 0 {
		interval = time.Duration(opts.RefreshEvery) * time.Second
	}

	StartPoller(ctx, invoices, client, interval, logger)

	// Populate the list before the UI starts so the first frame has data.
	refresh(ctx, invoices, client, logger)

	logger.Info().Str("api_url", cfg.APIURL).Msg("billfold starting")

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Invoices:  invoices,
		Config:    &cfg,
		Logger:    logger,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
