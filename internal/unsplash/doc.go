// Package unsplash provides an HTTP client for the Unsplash API.
//
// # Overview
//
// This package is the transport layer of imagefeed. It builds requests,
// attaches the bearer token, checks the status code and decodes JSON into
// typed records. It keeps no state between calls and never retries.
//
// # API Endpoints
//
//   - GET    /photos?page=N&per_page=M   one page of the feed
//   - POST   /photos/:id/like            like a photo
//   - DELETE /photos/:id/like            remove a like
//   - GET    /me                         authenticated user's profile
//   - GET    /users/:username            public profile (avatar URLs)
//
// Every request carries Authorization: Bearer <token>, Accept-Version: v1
// and User-Agent: imagefeed/0.1. A blank token is rejected before any I/O.
//
// # Error Handling
//
// Failures are reported with four kinds that callers match with errors.Is
// and errors.As:
//
//   - ErrInvalidRequest: the request could not be built (missing token,
//     missing id, bad page number)
//   - *TransportError: connection refused, timeout, DNS failure
//   - *StatusError: any non-2xx response, carrying the status code
//   - *DecodeError: the body did not match the expected JSON shape
//
// Example error messages:
//   - "invalid request: missing bearer token"
//   - "execute request: dial tcp: connection refused"
//   - "api /photos returned status 401"
//   - "decode response: unexpected EOF"
//
// # Timestamps
//
// Photo.ParsedCreatedAt parses ISO-8601 (RFC 3339) timestamps and returns
// nil for anything it cannot read. A bad date never fails a page.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package unsplash
