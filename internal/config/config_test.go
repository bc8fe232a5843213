package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAccessKey, "")
	t.Setenv(envSecretKey, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.AuthURL != defaultAuthURL || cfg.TokenURL != defaultTokenURL {
		t.Fatalf("oauth urls = %q %q, want defaults", cfg.AuthURL, cfg.TokenURL)
	}
	if !reflect.DeepEqual(cfg.Scopes, defaultScopes) {
		t.Fatalf("Scopes = %v, want %v", cfg.Scopes, defaultScopes)
	}

	wantStateDir, err := expandPath(defaultStateDir)
	if err != nil {
		t.Fatalf("expandPath(defaultStateDir) returned error: %v", err)
	}
	if cfg.StateDir != wantStateDir {
		t.Fatalf("StateDir = %q, want %q", cfg.StateDir, wantStateDir)
	}
	if cfg.TokenPath() != filepath.Join(wantStateDir, "token.toml") {
		t.Fatalf("TokenPath = %q, want under %q", cfg.TokenPath(), wantStateDir)
	}
	if cfg.LogPath() != filepath.Join(wantStateDir, "imagefeed.log") {
		t.Fatalf("LogPath = %q, want under %q", cfg.LogPath(), wantStateDir)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate returned nil error, want missing credentials")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(envAccessKey, "")
	t.Setenv(envSecretKey, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  http://10.0.0.5:9999  "
access_key = " ak "
secret_key = "sk"
scopes = ["public", " ", "write_likes"]
state_dir = "  ~/.imagefeed  "
log_level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "http://10.0.0.5:9999" {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, "http://10.0.0.5:9999")
	}
	if cfg.AccessKey != "ak" || cfg.SecretKey != "sk" {
		t.Fatalf("credentials = %q/%q, want ak/sk", cfg.AccessKey, cfg.SecretKey)
	}
	if !reflect.DeepEqual(cfg.Scopes, []string{"public", "write_likes"}) {
		t.Fatalf("Scopes = %v, want [public write_likes]", cfg.Scopes)
	}
	if !strings.HasPrefix(cfg.StateDir, home) {
		t.Fatalf("StateDir = %q, want it under HOME %q", cfg.StateDir, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.AuthURL != defaultAuthURL {
		t.Fatalf("AuthURL = %q, want default", cfg.AuthURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoad_EnvironmentOverridesCredentials(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(envAccessKey, "env-ak")
	t.Setenv(envSecretKey, "env-sk")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`access_key = "file-ak"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AccessKey != "env-ak" || cfg.SecretKey != "env-sk" {
		t.Fatalf("credentials = %q/%q, want env-ak/env-sk", cfg.AccessKey, cfg.SecretKey)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "   "
state_dir = ""
scopes = []
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if !reflect.DeepEqual(cfg.Scopes, defaultScopes) {
		t.Fatalf("Scopes = %v, want defaults", cfg.Scopes)
	}
	wantStateDir, err := expandPath(defaultStateDir)
	if err != nil {
		t.Fatalf("expandPath(defaultStateDir) returned error: %v", err)
	}
	if cfg.StateDir != wantStateDir {
		t.Fatalf("StateDir = %q, want %q", cfg.StateDir, wantStateDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestTokenPath_DefaultsWhenStateDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.TokenPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("TokenPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/token.toml")) {
		t.Fatalf("TokenPath = %q, want it to end with /token.toml", got)
	}
}
