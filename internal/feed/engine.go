package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/imagefeed/internal/observer"
	"github.com/five82/imagefeed/internal/unsplash"
)

// PerPage is the number of photos requested per page.
const PerPage = 10

var (
	// ErrInFlight is returned when an operation of the same kind is already
	// running. The call had no effect.
	ErrInFlight = errors.New("operation already in flight")

	// ErrReset is returned by a page fetch whose session was reset while the
	// request was outstanding. Its result was discarded.
	ErrReset = errors.New("feed reset during fetch")
)

// TokenProvider supplies the bearer token for requests.
type TokenProvider interface {
	CurrentToken() (string, bool)
}

// RemoteFetcher is the subset of the Unsplash API the engine calls.
type RemoteFetcher interface {
	ListPhotos(ctx context.Context, page, perPage int, token string) ([]unsplash.Photo, error)
	SetLike(ctx context.Context, photoID string, liked bool, token string) error
}

// Engine keeps the feed in sync with the API one page at a time.
type Engine struct {
	fetcher RemoteFetcher
	tokens  TokenProvider
	log     zerolog.Logger

	pageSlot slot
	likeSlot slot

	mu         sync.RWMutex
	state      pageState
	generation uint64

	observers observer.Registry
}

// NewEngine builds an engine with an empty feed.
func NewEngine(fetcher RemoteFetcher, tokens TokenProvider, logger zerolog.Logger) *Engine {
	return &Engine{
		fetcher:  fetcher,
		tokens:   tokens,
		log:      logger.With().Str("component", "feed").Logger(),
		pageSlot: newSlot(),
		likeSlot: newSlot(),
	}
}

// FetchNextPage loads the page after the last one merged and returns only the
// items it added. While another page fetch is running it returns ErrInFlight
// without touching the network.
func (e *Engine) FetchNextPage(ctx context.Context) ([]Item, error) {
	if !e.pageSlot.tryAcquire() {
		e.log.Warn().Msg("page fetch already in flight, ignoring")
		return nil, ErrInFlight
	}
	defer e.pageSlot.release()

	token, ok := e.tokens.CurrentToken()
	if !ok {
		e.log.Error().Msg("page fetch without access token")
		return nil, fmt.Errorf("fetch page: %w: no access token", unsplash.ErrInvalidRequest)
	}

	e.mu.RLock()
	page := e.state.lastPage + 1
	generation := e.generation
	e.mu.RUnlock()

	photos, err := e.fetcher.ListPhotos(ctx, page, PerPage, token)
	if err != nil {
		e.log.Error().Err(err).Int("page", page).Msg("page fetch failed")
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	incoming := itemsFromPhotos(photos)

	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		e.log.Info().Int("page", page).Msg("dropping page fetched before reset")
		return nil, ErrReset
	}
	added := e.state.merge(incoming)
	e.state.lastPage = page
	total := len(e.state.items)
	e.mu.Unlock()

	e.log.Debug().
		Int("page", page).
		Int("received", len(incoming)).
		Int("added", len(added)).
		Int("total", total).
		Msg("page merged")

	e.observers.Publish()
	return added, nil
}

// SetLike asks the API to like or unlike id. On success the stored IsLiked of
// the matching item is flipped; the item does not have to be loaded. When the
// feed is reset while the request is outstanding the response is not applied
// and SetLike still returns nil, since the server accepted the change.
func (e *Engine) SetLike(ctx context.Context, id string, liked bool) error {
	if !e.likeSlot.tryAcquire() {
		e.log.Warn().Str("photo_id", id).Msg("like toggle already in flight, ignoring")
		return ErrInFlight
	}
	defer e.likeSlot.release()

	token, ok := e.tokens.CurrentToken()
	if !ok {
		e.log.Error().Str("photo_id", id).Msg("like toggle without access token")
		return fmt.Errorf("set like: %w: no access token", unsplash.ErrInvalidRequest)
	}

	e.mu.RLock()
	generation := e.generation
	e.mu.RUnlock()

	if err := e.fetcher.SetLike(ctx, id, liked, token); err != nil {
		e.log.Error().Err(err).Str("photo_id", id).Bool("liked", liked).Msg("like toggle failed")
		return fmt.Errorf("set like %s: %w", id, err)
	}

	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		e.log.Info().Str("photo_id", id).Msg("dropping like toggle started before reset")
		return nil
	}
	item, found := e.state.toggleLike(id)
	e.mu.Unlock()

	if !found {
		e.log.Debug().Str("photo_id", id).Msg("liked photo not in feed")
		return nil
	}
	e.log.Debug().Str("photo_id", id).Bool("is_liked", item.IsLiked).Msg("like toggled")
	return nil
}

// ResetState empties the feed. The next FetchNextPage requests page 1 again.
func (e *Engine) ResetState() {
	e.mu.Lock()
	e.state.reset()
	e.generation++
	e.mu.Unlock()
	e.log.Info().Msg("feed state reset")
}

// Items returns a copy of the feed in display order.
func (e *Engine) Items() []Item {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneItems(e.state.items)
}

// Item looks up a single item by id.
func (e *Engine) Item(id string) (Item, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	pos, ok := e.state.index[id]
	if !ok {
		return Item{}, false
	}
	return e.state.items[pos].clone(), true
}

// LastLoadedPage returns the last page merged, and false before the first.
func (e *Engine) LastLoadedPage() (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.lastPage, e.state.lastPage > 0
}

// Subscribe registers fn to run after every merged page. Keep the returned
// Subscription for as long as notifications are wanted.
func (e *Engine) Subscribe(fn func()) *observer.Subscription {
	return e.observers.Subscribe(fn)
}

// Unsubscribe stops notifications for sub.
func (e *Engine) Unsubscribe(sub *observer.Subscription) {
	e.observers.Unsubscribe(sub)
}
