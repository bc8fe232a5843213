// Package ui provides the terminal interface for imagefeed.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds every piece of view
// state and is updated only from Update; network work runs in tea.Cmd
// functions that report back with messages:
//
//	key press ──→ Update ──→ fetchPageCmd ──→ feed.Engine.FetchNextPage
//	                 ↑                                │
//	                 └──────── pageLoadedMsg ─────────┘
//
// # Change Notifications
//
// The feed engine and the profile service publish changes through weak
// observer registries. New subscribes a small callback that signals a
// buffered channel, and waitForSignal turns that channel into a
// feedChangedMsg or avatarChangedMsg. The model keeps the subscriptions in
// its fields so they stay reachable for the life of the program.
//
// # Views
//
//   - Login: the authorize link and a text input for the returned code
//   - Feed: the photo list; moving onto the last row loads the next page
//   - Photo: metadata and rendition URLs for one photo; s copies the full URL
//   - Profile: name, login, bio and avatar; L logs out
//   - Logs: the tail of the application log in a viewport
//
// The help overlay and error alerts are modal and close on any key.
//
// # Themes
//
// Two palettes are available (Dracula and Slate). T cycles between them and
// the choice is saved to the preferences file.
package ui
