package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API defines the Unsplash calls the rest of imagefeed depends on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	ListPhotos(ctx context.Context, page, perPage int, token string) ([]Photo, error)
	SetLike(ctx context.Context, photoID string, liked bool, token string) error
	FetchMe(ctx context.Context, token string) (*ProfileResult, error)
	FetchUser(ctx context.Context, username, token string) (*UserResult, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the Unsplash HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://api.unsplash.com"
	defaultUserAgent = "imagefeed/0.1"
	acceptVersion    = "v1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client rooted at baseURL. An empty value selects the
// public Unsplash endpoint.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListPhotos retrieves one page of the editorial feed.
func (c *Client) ListPhotos(ctx context.Context, page, perPage int, token string) ([]Photo, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if page < 1 || perPage < 1 {
		return nil, fmt.Errorf("%w: page %d per_page %d", ErrInvalidRequest, page, perPage)
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	rel := &url.URL{Path: "/photos", RawQuery: values.Encode()}

	var payload []Photo
	if err := c.doURL(ctx, http.MethodGet, rel, token, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SetLike likes (POST) or unlikes (DELETE) a photo on behalf of the user.
func (c *Client) SetLike(ctx context.Context, photoID string, liked bool, token string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	photoID = strings.TrimSpace(photoID)
	if photoID == "" {
		return fmt.Errorf("%w: photo id required", ErrInvalidRequest)
	}
	method := http.MethodDelete
	if liked {
		method = http.MethodPost
	}
	rel := &url.URL{Path: "/photos/" + url.PathEscape(photoID) + "/like"}
	return c.doURL(ctx, method, rel, token, nil)
}

// FetchMe retrieves the authenticated user's profile.
func (c *Client) FetchMe(ctx context.Context, token string) (*ProfileResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProfileResult
	if err := c.do(ctx, http.MethodGet, "/me", token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchUser retrieves a public profile, used for the avatar.
func (c *Client) FetchUser(ctx context.Context, username, token string) (*UserResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrInvalidRequest)
	}
	var payload UserResult
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, token, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, token string, dest any) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: missing bearer token", ErrInvalidRequest)
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", acceptVersion)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: rel.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
