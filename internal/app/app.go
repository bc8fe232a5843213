package app

import (
	"context"
	"fmt"

	"github.com/five82/imagefeed/internal/auth"
	"github.com/five82/imagefeed/internal/config"
	"github.com/five82/imagefeed/internal/feed"
	"github.com/five82/imagefeed/internal/prefs"
	"github.com/five82/imagefeed/internal/profile"
	"github.com/five82/imagefeed/internal/session"
	"github.com/five82/imagefeed/internal/state"
	"github.com/five82/imagefeed/internal/ui"
	"github.com/five82/imagefeed/internal/unsplash"
)

// Options configure the imagefeed application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/imagefeed/prefs.toml
	LogLevel   string // overrides log_level from the config when set
}

// Run boots the imagefeed TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logger.With().Str("component", "app").Logger()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := unsplash.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("init unsplash client: %w", err)
	}

	tokens, err := auth.NewTokenStore(cfg.TokenPath())
	if err != nil {
		return err
	}

	authService := auth.NewService(cfg, tokens, logger)
	engine := feed.NewEngine(client, tokens, logger)
	profiles := profile.NewService(client, &state.Store{}, logger)
	logout := session.Logout{
		Tokens:  tokens,
		Profile: profiles,
		Feed:    engine,
		Log:     logger,
	}

	log.Info().Str("api", cfg.APIBaseURL).Bool("signed_in", tokens.Authorized()).Msg("starting")
	startupErr := bootstrap(ctx, tokens, profiles, log)
	if startupErr != nil {
		log.Error().Err(startupErr).Msg("startup profile load failed")
	}

	err = ui.Run(ui.Options{
		Context:    ctx,
		Feed:       engine,
		Auth:       authService,
		Profile:    profiles,
		Tokens:     tokens,
		Logout:     logout.Run,
		LogPath:    cfg.LogPath(),
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger,
		StartupErr: startupErr,
	})
	log.Info().Msg("exiting")
	return err
}
