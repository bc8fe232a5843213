package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// TokenStore keeps the bearer token in memory and mirrors it to a TOML file
// readable only by the current user.
type TokenStore struct {
	path string

	mu    sync.RWMutex
	token string
}

type tokenFile struct {
	AccessToken string `toml:"access_token"`
}

// NewTokenStore loads any token previously saved at path.
func NewTokenStore(path string) (*TokenStore, error) {
	s := &TokenStore{path: path}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	var stored tokenFile
	if err := toml.Unmarshal(bytes, &stored); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	s.token = strings.TrimSpace(stored.AccessToken)
	return s, nil
}

// CurrentToken returns the stored token and whether one is present.
func (s *TokenStore) CurrentToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Authorized reports whether a token is stored.
func (s *TokenStore) Authorized() bool {
	_, ok := s.CurrentToken()
	return ok
}

// SetToken replaces the token and persists it.
func (s *TokenStore) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.Clear()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	bytes, err := toml.Marshal(tokenFile{AccessToken: token})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	s.token = token
	return nil
}

// Clear forgets the token and removes the file.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
