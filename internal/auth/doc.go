// Package auth signs imagefeed in to Unsplash.
//
// Service drives the OAuth authorization-code flow with golang.org/x/oauth2:
// AuthorizeURL builds the consent page link (client_id, redirect_uri,
// response_type=code, scope and a random state), the user pastes back the
// code or the native redirect URL, and Exchange posts it to the token
// endpoint. Only one exchange runs at a time. Resubmitting the running code
// is rejected; a different code cancels the older request.
//
// TokenStore holds the resulting bearer token and persists it as TOML with
// 0600 permissions so later runs skip the login view. It satisfies the
// feed engine's token provider.
package auth
