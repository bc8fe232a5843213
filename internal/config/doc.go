// Package config loads imagefeed's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/imagefeed/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. IMAGEFEED_ACCESS_KEY / IMAGEFEED_SECRET_KEY override the file
//
// The command loads a .env file from the working directory before calling
// Load, so credentials can live there during development.
//
// # TOML Format
//
//	api_base_url = "https://api.unsplash.com"
//	auth_url     = "https://unsplash.com/oauth/authorize"
//	token_url    = "https://unsplash.com/oauth/token"
//	access_key   = "..."
//	secret_key   = "..."
//	redirect_uri = "urn:ietf:wg:oauth:2.0:oob"
//	scopes       = ["public", "read_user", "write_likes"]
//	state_dir    = "~/.local/state/imagefeed"
//	log_level    = "info"
//
// Every field is optional. Tilde expansion is performed on state_dir.
//
// # Derived Paths
//
//   - Token file: <state_dir>/token.toml
//   - Log file:   <state_dir>/imagefeed.log
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// TOML parse errors. A missing file is not an error. Validate reports
// missing OAuth credentials; the UI can still start without them but login
// will fail.
package config
