// Package profile fetches the signed-in user's profile and avatar.
//
// FetchProfile calls GET /me and derives the display name ("first last") and
// login name ("@username"); FetchAvatarURL calls GET /users/{username} and
// keeps the medium profile image. Each kind of request is latest-wins: a new
// call cancels the one still running, and the cancelled call returns
// ErrSuperseded without touching the store. Results land in a state.Store
// shared with the UI, and a change of avatar URL is published to avatar
// subscribers.
package profile
