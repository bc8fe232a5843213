package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "api.unsplash.com" {
		t.Fatalf("url = %q, want https://api.unsplash.com", u.String())
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("api.example.com")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestClient_ListPhotosEncodesPagingAndAuth(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotAuth, gotUserAgent, gotVersion string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		gotVersion = r.Header.Get("Accept-Version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"id":"a","created_at":"2016-05-03T11:00:28-04:00","width":640,"height":480,
   "description":null,"liked_by_user":true,
   "urls":{"thumb":"t","small":"s","regular":"r","full":"f"}}
]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	photos, err := c.ListPhotos(ctx, 3, 10, "tok")
	if err != nil {
		t.Fatalf("ListPhotos returned error: %v", err)
	}
	if len(photos) != 1 || photos[0].ID != "a" || !photos[0].LikedByUser {
		t.Fatalf("ListPhotos = %#v, want 1 liked photo id=a", photos)
	}
	if photos[0].URLs.Full != "f" || photos[0].URLs.Thumb != "t" {
		t.Fatalf("urls = %#v, want decoded renditions", photos[0].URLs)
	}
	if gotQuery.Get("page") != "3" || gotQuery.Get("per_page") != "10" {
		t.Fatalf("query = %v, want page=3 per_page=10", gotQuery)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", gotAuth)
	}
	if gotVersion != "v1" {
		t.Fatalf("Accept-Version = %q, want v1", gotVersion)
	}
	if !strings.HasPrefix(gotUserAgent, "imagefeed/") {
		t.Fatalf("User-Agent = %q, want imagefeed/*", gotUserAgent)
	}
}

func TestClient_SetLikeUsesVerbPerState(t *testing.T) {
	t.Parallel()

	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/photos/abc/like" {
			http.NotFound(w, r)
			return
		}
		methods = append(methods, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"photo":{"id":"abc"}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.SetLike(context.Background(), "abc", true, "tok"); err != nil {
		t.Fatalf("SetLike(true) returned error: %v", err)
	}
	if err := c.SetLike(context.Background(), "abc", false, "tok"); err != nil {
		t.Fatalf("SetLike(false) returned error: %v", err)
	}
	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodDelete {
		t.Fatalf("methods = %v, want [POST DELETE]", methods)
	}
}

func TestClient_ProfileEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/me":
			last := "Doe"
			_ = json.NewEncoder(w).Encode(ProfileResult{Username: "jdoe", FirstName: "Jane", LastName: &last})
		case "/users/jdoe":
			_ = json.NewEncoder(w).Encode(UserResult{Username: "jdoe", ProfileImage: ProfileImage{Medium: "https://img/m"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	me, err := c.FetchMe(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchMe returned error: %v", err)
	}
	if me.Username != "jdoe" || me.LastName == nil || *me.LastName != "Doe" {
		t.Fatalf("FetchMe = %#v, want jdoe / Doe", me)
	}
	user, err := c.FetchUser(context.Background(), "jdoe", "tok")
	if err != nil {
		t.Fatalf("FetchUser returned error: %v", err)
	}
	if user.ProfileImage.Medium != "https://img/m" {
		t.Fatalf("FetchUser avatar = %q, want https://img/m", user.ProfileImage.Medium)
	}
}

func TestClient_MissingTokenIsInvalidRequest(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.ListPhotos(context.Background(), 1, 10, "  ")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ListPhotos error = %v, want ErrInvalidRequest", err)
	}
	if err := c.SetLike(context.Background(), "", true, "tok"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("SetLike error = %v, want ErrInvalidRequest", err)
	}
	if _, err := c.FetchUser(context.Background(), " ", "tok"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("FetchUser error = %v, want ErrInvalidRequest", err)
	}
}

func TestClient_HTTPErrorDecodeErrorAndTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/photos":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchMe(context.Background(), "tok")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchMe error = %v, want DecodeError", err)
	}

	_, err = c.ListPhotos(context.Background(), 1, 10, "tok")
	if code, ok := StatusCode(err); !ok || code != http.StatusInternalServerError {
		t.Fatalf("ListPhotos error = %v, want status 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("ListPhotos error = %q, want it to mention status 500", err.Error())
	}

	server.Close()
	_, err = c.FetchMe(context.Background(), "tok")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("FetchMe after close error = %v, want TransportError", err)
	}
}
