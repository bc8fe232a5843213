// Package state holds the signed-in user's session data for the UI.
//
// # Overview
//
// Store is the meeting point between the profile service, which writes the
// result of /me and /users/{username} lookups, and the Bubble Tea model,
// which reads a Snapshot every time it renders the profile view or header.
//
//	profile.Service            ui.Model
//	┌──────────────┐           ┌──────────────┐
//	│ FetchProfile │──────────→│ Snapshot()   │
//	│ FetchAvatar  │  (mutex)  │   render     │
//	└──────────────┘           └──────────────┘
//
// # Update Semantics
//
// SetProfile and SetAvatar take the request result and its error together:
//
//	store.SetProfile(p, nil)   → Profile = p, LastError = nil, failures reset
//	store.SetProfile(_, err)   → Profile unchanged, LastError = err, failures++
//
// SetAvatar additionally reports whether the URL changed so the caller only
// notifies observers on a real change. Reset clears everything and is used
// on logout.
//
// # Concurrency Model
//
// A sync.RWMutex guards the snapshot. Snapshot returns a value copy; every
// field is a value type so no further cloning is needed.
//
// The zero Store is ready to use.
package state
