package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/five82/imagefeed/internal/config"
	"github.com/five82/imagefeed/internal/unsplash"
)

// ErrSuperseded is returned by an exchange that was cancelled because a
// different code was submitted while it was running.
var ErrSuperseded = errors.New("superseded by a newer code")

// NativeRedirectPath is the path Unsplash redirects to when it displays the
// authorization code for out-of-band clients.
const NativeRedirectPath = "/oauth/authorize/native"

const exchangeTimeout = 15 * time.Second

// Service runs the OAuth authorization-code flow against Unsplash.
type Service struct {
	oauth  oauth2.Config
	tokens *TokenStore
	http   *http.Client
	log    zerolog.Logger

	mu       sync.Mutex
	lastCode string
	cancel   context.CancelFunc
	seq      uint64
}

// NewService builds a Service from the loaded configuration.
func NewService(cfg config.Config, tokens *TokenStore, logger zerolog.Logger) *Service {
	return &Service{
		oauth: oauth2.Config{
			ClientID:     cfg.AccessKey,
			ClientSecret: cfg.SecretKey,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       append([]string(nil), cfg.Scopes...),
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		tokens: tokens,
		http:   &http.Client{Timeout: exchangeTimeout},
		log:    logger.With().Str("component", "auth").Logger(),
	}
}

// AuthorizeURL returns the page the user opens to grant access. Each call
// carries a fresh state nonce.
func (s *Service) AuthorizeURL() string {
	return s.oauth.AuthCodeURL(uuid.NewString())
}

// Exchange trades an authorization code for an access token and stores it.
// Submitting the code that is already being exchanged fails with
// unsplash.ErrInvalidRequest; submitting a different code cancels the
// running exchange, which then returns ErrSuperseded.
func (s *Service) Exchange(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty authorization code", unsplash.ErrInvalidRequest)
	}

	s.mu.Lock()
	if code == s.lastCode {
		s.mu.Unlock()
		s.log.Warn().Msg("duplicate authorization code dropped")
		return "", fmt.Errorf("%w: code is already being exchanged", unsplash.ErrInvalidRequest)
	}
	if s.cancel != nil {
		s.log.Info().Msg("cancelling stale token exchange")
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.lastCode = code
	exchangeCtx, cancel := context.WithCancel(context.WithValue(ctx, oauth2.HTTPClient, s.http))
	s.cancel = cancel
	s.mu.Unlock()

	tok, err := s.oauth.Exchange(exchangeCtx, code)
	cancel()

	s.mu.Lock()
	current := seq == s.seq
	if current {
		s.lastCode = ""
		s.cancel = nil
	}
	s.mu.Unlock()

	if !current {
		return "", ErrSuperseded
	}
	if err != nil {
		s.log.Error().Err(err).Msg("token exchange failed")
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("exchange code: %w", &unsplash.DecodeError{Err: errors.New("empty access_token")})
	}
	if err := s.tokens.SetToken(tok.AccessToken); err != nil {
		return "", err
	}
	s.log.Info().Msg("access token stored")
	return tok.AccessToken, nil
}

// CodeFromInput extracts an authorization code from what the user pasted:
// either the bare code or the native redirect URL carrying a code parameter.
func CodeFromInput(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if !strings.Contains(input, "://") {
		if strings.ContainsAny(input, " \t/?&") {
			return "", false
		}
		return input, true
	}

	u, err := url.Parse(input)
	if err != nil || u.Path != NativeRedirectPath {
		return "", false
	}
	code := strings.TrimSpace(u.Query().Get("code"))
	return code, code != ""
}
