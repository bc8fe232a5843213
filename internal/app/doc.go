// Package app is the composition root for imagefeed.
//
// # Overview
//
// Run loads configuration and preferences, opens the zerolog log file under
// the state directory, and builds the collaborators:
//
//	config.Load()            ~/.config/imagefeed/config.toml + env
//	newLogger()              <state_dir>/imagefeed.log (JSON lines)
//	unsplash.NewClient()     HTTP API client
//	auth.NewTokenStore()     <state_dir>/token.toml
//	auth.NewService()        OAuth code exchange
//	feed.NewEngine()         paged feed and likes
//	profile.NewService()     /me and avatar lookups into a state.Store
//	session.Logout{}         token, profile and feed reset
//	ui.Run()                 Bubble Tea program (blocks)
//
// # Startup
//
// When a token is already stored, bootstrap loads the profile before the UI
// starts and requests the avatar in the background. A failure does not stop
// the program: the error is handed to the UI, which opens with an alert.
// Without a token the UI starts on the login view.
//
// # Logging
//
// The UI owns the terminal, so every component logs to the file only. Each
// logger carries a component field, and the logs view reads the same file
// through package logtail.
package app
