package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/imagefeed/internal/observer"
	"github.com/five82/imagefeed/internal/state"
	"github.com/five82/imagefeed/internal/unsplash"
)

// ErrSuperseded is returned by a request that a newer call of the same kind
// cancelled. Its result was discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// Fetcher is the subset of the Unsplash API the service calls.
type Fetcher interface {
	FetchMe(ctx context.Context, token string) (*unsplash.ProfileResult, error)
	FetchUser(ctx context.Context, username, token string) (*unsplash.UserResult, error)
}

// Service loads the signed-in user's profile and avatar into a state.Store.
type Service struct {
	api   Fetcher
	store *state.Store
	log   zerolog.Logger

	profileReq latest
	avatarReq  latest

	avatarObservers observer.Registry
}

// NewService wires a Service to the API and the session store.
func NewService(api Fetcher, store *state.Store, logger zerolog.Logger) *Service {
	return &Service{
		api:   api,
		store: store,
		log:   logger.With().Str("component", "profile").Logger(),
	}
}

// FetchProfile loads /me, cancelling any profile request still running.
func (s *Service) FetchProfile(ctx context.Context, token string) (state.Profile, error) {
	reqCtx, seq, cancel := s.profileReq.start(ctx)
	defer cancel()

	result, err := s.api.FetchMe(reqCtx, token)
	if !s.profileReq.finish(seq) {
		return state.Profile{}, ErrSuperseded
	}
	if err != nil {
		s.log.Error().Err(err).Msg("profile request failed")
		s.store.SetProfile(state.Profile{}, err)
		return state.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	p := makeProfile(result)
	s.store.SetProfile(p, nil)
	s.log.Debug().Str("username", p.Username).Msg("profile loaded")
	return p, nil
}

// FetchAvatarURL loads the medium avatar of username, cancelling any avatar
// request still running. Avatar observers are notified when the URL changes.
func (s *Service) FetchAvatarURL(ctx context.Context, token, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: empty username", unsplash.ErrInvalidRequest)
	}

	reqCtx, seq, cancel := s.avatarReq.start(ctx)
	defer cancel()

	result, err := s.api.FetchUser(reqCtx, username, token)
	if !s.avatarReq.finish(seq) {
		return "", ErrSuperseded
	}
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("avatar request failed")
		s.store.SetAvatar("", err)
		return "", fmt.Errorf("fetch avatar: %w", err)
	}

	url := result.ProfileImage.Medium
	if s.store.SetAvatar(url, nil) {
		s.avatarObservers.Publish()
	}
	return url, nil
}

// Reset cancels outstanding requests and clears the stored profile.
func (s *Service) Reset() {
	s.profileReq.abandon()
	s.avatarReq.abandon()
	s.store.Reset()
}

// Snapshot returns the current session data.
func (s *Service) Snapshot() state.Snapshot {
	return s.store.Snapshot()
}

// SubscribeAvatar registers fn to run after the avatar URL changes. The
// caller must keep the returned subscription reachable.
func (s *Service) SubscribeAvatar(fn func()) *observer.Subscription {
	return s.avatarObservers.Subscribe(fn)
}

// UnsubscribeAvatar removes a subscription.
func (s *Service) UnsubscribeAvatar(sub *observer.Subscription) {
	s.avatarObservers.Unsubscribe(sub)
}

func makeProfile(r *unsplash.ProfileResult) state.Profile {
	name := strings.TrimSpace(r.FirstName)
	if r.LastName != nil {
		name = strings.TrimSpace(name + " " + strings.TrimSpace(*r.LastName))
	}
	p := state.Profile{
		Username:  r.Username,
		Name:      name,
		LoginName: "@" + r.Username,
	}
	if r.Bio != nil {
		p.Bio = strings.TrimSpace(*r.Bio)
	}
	return p
}

// latest tracks the most recent request of one kind so starting a new one
// cancels the previous.
type latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func (l *latest) start(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return reqCtx, l.seq, cancel
}

// finish reports whether seq is still the newest request.
func (l *latest) finish(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return false
	}
	l.cancel = nil
	return true
}

func (l *latest) abandon() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}
