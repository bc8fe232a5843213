package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything imagefeed needs to reach Unsplash.
type Config struct {
	APIBaseURL  string
	AuthURL     string
	TokenURL    string
	AccessKey   string
	SecretKey   string
	RedirectURI string
	Scopes      []string
	StateDir    string
	LogLevel    string
}

const (
	defaultConfigPath  = "~/.config/imagefeed/config.toml"
	defaultStateDir    = "~/.local/state/imagefeed"
	defaultAPIBaseURL  = "https://api.unsplash.com"
	defaultAuthURL     = "https://unsplash.com/oauth/authorize"
	defaultTokenURL    = "https://unsplash.com/oauth/token"
	defaultRedirectURI = "urn:ietf:wg:oauth:2.0:oob"
	defaultLogLevel    = "info"

	envAccessKey = "IMAGEFEED_ACCESS_KEY"
	envSecretKey = "IMAGEFEED_SECRET_KEY"
)

var defaultScopes = []string{"public", "read_user", "write_likes"}

// Load locates and parses the config, falling back to defaults when missing.
// Credentials from the environment take precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		if err := apply(&cfg, bytes); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(envAccessKey)); v != "" {
		cfg.AccessKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envSecretKey)); v != "" {
		cfg.SecretKey = v
	}
	cfg.StateDir = mustExpand(cfg.StateDir)

	return cfg, nil
}

// TokenPath returns where the access token is persisted.
func (c Config) TokenPath() string {
	return filepath.Join(c.stateDir(), "token.toml")
}

// LogPath returns the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.stateDir(), "imagefeed.log")
}

// Validate reports missing OAuth credentials.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.AccessKey) == "" {
		missing = append(missing, "access_key")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		missing = append(missing, "secret_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config missing %s (set in config.toml or %s/%s)",
			strings.Join(missing, ", "), envAccessKey, envSecretKey)
	}
	return nil
}

func (c Config) stateDir() string {
	if strings.TrimSpace(c.StateDir) == "" {
		return mustExpand(defaultStateDir)
	}
	return c.StateDir
}

func defaults() Config {
	return Config{
		APIBaseURL:  defaultAPIBaseURL,
		AuthURL:     defaultAuthURL,
		TokenURL:    defaultTokenURL,
		RedirectURI: defaultRedirectURI,
		Scopes:      append([]string(nil), defaultScopes...),
		StateDir:    defaultStateDir,
		LogLevel:    defaultLogLevel,
	}
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func apply(cfg *Config, bytes []byte) error {
	var raw struct {
		APIBaseURL  string   `toml:"api_base_url"`
		AuthURL     string   `toml:"auth_url"`
		TokenURL    string   `toml:"token_url"`
		AccessKey   string   `toml:"access_key"`
		SecretKey   string   `toml:"secret_key"`
		RedirectURI string   `toml:"redirect_uri"`
		Scopes      []string `toml:"scopes"`
		StateDir    string   `toml:"state_dir"`
		LogLevel    string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&cfg.APIBaseURL, raw.APIBaseURL)
	setIfPresent(&cfg.AuthURL, raw.AuthURL)
	setIfPresent(&cfg.TokenURL, raw.TokenURL)
	setIfPresent(&cfg.AccessKey, raw.AccessKey)
	setIfPresent(&cfg.SecretKey, raw.SecretKey)
	setIfPresent(&cfg.RedirectURI, raw.RedirectURI)
	setIfPresent(&cfg.StateDir, raw.StateDir)
	setIfPresent(&cfg.LogLevel, strings.ToLower(raw.LogLevel))

	var scopes []string
	for _, s := range raw.Scopes {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	if len(scopes) > 0 {
		cfg.Scopes = scopes
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
