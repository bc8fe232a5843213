// Package session ends a signed-in session.
package session

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TokenClearer forgets the stored bearer token.
type TokenClearer interface {
	Clear() error
}

// Resetter drops in-memory state tied to the signed-in user.
type Resetter interface {
	Reset()
}

// FeedResetter drops the loaded feed.
type FeedResetter interface {
	ResetState()
}

// Logout clears everything that belongs to the current user.
type Logout struct {
	Tokens  TokenClearer
	Profile Resetter
	Feed    FeedResetter
	Log     zerolog.Logger
}

// Run clears the token, the profile and avatar, and the feed. In-memory state
// is reset even when the token file cannot be removed.
func (l Logout) Run() error {
	var err error
	if l.Tokens != nil {
		if clearErr := l.Tokens.Clear(); clearErr != nil {
			err = fmt.Errorf("logout: %w", clearErr)
		}
	}
	if l.Profile != nil {
		l.Profile.Reset()
	}
	if l.Feed != nil {
		l.Feed.ResetState()
	}

	if err != nil {
		l.Log.Error().Err(err).Str("component", "session").Msg("logout incomplete")
		return err
	}
	l.Log.Info().Str("component", "session").Msg("logged out")
	return nil
}
