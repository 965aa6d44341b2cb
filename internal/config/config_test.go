package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SocketEndpoint != DefaultSocketEndpoint {
		t.Errorf("SocketEndpoint = %q", cfg.SocketEndpoint)
	}
	if cfg.TUITheme != "chatta" {
		t.Errorf("TUITheme = %q", cfg.TUITheme)
	}
	if cfg.MarkdownStyle != "dark" {
		t.Errorf("MarkdownStyle = %q", cfg.MarkdownStyle)
	}
	if cfg.Verbose {
		t.Error("Verbose defaults on")
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir returned relative path: %s", dir)
	}
	if !strings.HasSuffix(dir, ".chattatrader") {
		t.Errorf("GetConfigDir = %s, want .chattatrader suffix", dir)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := Config{
		APIBaseURL:     "https://staging.example.com",
		SocketEndpoint: "wss://staging.example.com/socket",
		TUITheme:       "dracula",
		MarkdownStyle:  "light",
		AttachmentDir:  "/tmp/attachments",
		Verbose:        true,
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadBackfillsEmptyEndpoints(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".chattatrader")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	partial, _ := json.Marshal(map[string]any{"tui_theme": "tokyonight"})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), partial, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("TUITheme = %q", cfg.TUITheme)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL || cfg.SocketEndpoint != DefaultSocketEndpoint {
		t.Errorf("endpoints not backfilled: %+v", cfg)
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".chattatrader")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("LoadConfig accepted a corrupt file")
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("corrupt load did not fall back to defaults: %+v", cfg)
	}
}
