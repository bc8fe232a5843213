// Package feed keeps the in-memory photo feed in sync with the Unsplash API.
//
// # Overview
//
// The Engine loads the feed one page at a time, merges each page into a single
// ordered collection without duplicates, tells subscribers when the collection
// changed, and applies like/unlike once the server has confirmed it.
//
// # Core Types
//
// Engine:
//   - Owns the collection (items) and the last merged page number
//   - Calls the API through RemoteFetcher, tokens through TokenProvider
//   - Publishes on an observer.Registry after each merged page
//
// Item:
//   - One photo: id, size, creation time, description, rendition URLs
//   - IsLiked is the only field that changes after an item is appended
//
// # Paging
//
//	FetchNextPage()
//	  ├─> slot taken?          → ErrInFlight (no request, no change)
//	  ├─> token missing?       → unsplash.ErrInvalidRequest
//	  ├─> ListPhotos(last+1, PerPage)
//	  │     └─> error          → returned, state untouched, no publish
//	  ├─> map photos → items   (bad dates become nil)
//	  ├─> merge: drop known ids, append the rest in server order
//	  ├─> last = requested page
//	  ├─> Publish()
//	  └─> return only the newly added items
//
// The merge is idempotent per id but not per page number: a page that
// overlaps one already merged only contributes ids not seen before.
//
// # Likes
//
// SetLike sends POST or DELETE depending on the requested state. On success
// the stored IsLiked of the matching item is flipped, whatever value was
// requested, so the local state toggles in step with the button. If the item
// is not loaded the call still succeeds and nothing changes locally. On
// failure nothing changes.
//
// # Concurrency Model
//
// Each operation kind has its own single-slot semaphore:
//
//	page fetch  ──┐            like toggle ──┐
//	              ▼                          ▼
//	        [ page slot ]              [ like slot ]
//
// A second call of the same kind while the slot is held returns ErrInFlight
// immediately. A page fetch and a like toggle can run at the same time.
// Collection state sits behind a sync.RWMutex that is never held across
// network I/O or while listeners run.
//
// ResetState empties the collection and advances a generation counter. A page
// fetch that was already in flight notices the new generation on completion
// and drops its result with ErrReset, so a logout never leaks the previous
// session's photos into the next one.
//
// # Notifications
//
// Subscribe returns an *observer.Subscription. Notifications carry no
// payload; subscribers re-read Items(). The registry holds subscriptions
// weakly, so dropping the subscription is enough to stop notifications.
package feed
