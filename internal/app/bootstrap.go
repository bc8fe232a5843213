package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/five82/imagefeed/internal/state"
)

type tokenSource interface {
	CurrentToken() (string, bool)
}

type profileLoader interface {
	FetchProfile(ctx context.Context, token string) (state.Profile, error)
	FetchAvatarURL(ctx context.Context, token, username string) (string, error)
}

// bootstrap loads the signed-in user's profile before the UI starts. The
// avatar follows in the background. Without a token there is nothing to do
// and the UI opens on the login view.
func bootstrap(ctx context.Context, tokens tokenSource, profiles profileLoader, log zerolog.Logger) error {
	token, ok := tokens.CurrentToken()
	if !ok {
		log.Info().Msg("no stored token, starting signed out")
		return nil
	}

	p, err := profiles.FetchProfile(ctx, token)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	go func() {
		if _, err := profiles.FetchAvatarURL(ctx, token, p.Username); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("avatar lookup failed")
		}
	}()
	return nil
}
