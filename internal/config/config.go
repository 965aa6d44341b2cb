// Package config handles the local configuration for the chatta client.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults for the remote endpoints.
const (
	DefaultAPIBaseURL     = "https://api.chattatrader.com"
	DefaultSocketEndpoint = "wss://api.chattatrader.com/socket"
)

// Config represents the user configuration
type Config struct {
	// APIBaseURL is the REST endpoint for auth and account calls.
	APIBaseURL string `json:"api_base_url"`
	// SocketEndpoint is the real-time chat channel.
	SocketEndpoint string `json:"socket_endpoint"`
	// TUITheme selects the terminal color theme.
	TUITheme string `json:"tui_theme,omitempty"`
	// MarkdownStyle is the glamour style for plain-text messages.
	MarkdownStyle string `json:"markdown_style,omitempty"`
	// AttachmentDir receives attachment payloads written out for
	// playback/preview. Empty means the OS temp dir.
	AttachmentDir string `json:"attachment_dir,omitempty"`
	// Verbose enables debug logging on stderr.
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		SocketEndpoint: DefaultSocketEndpoint,
		TUITheme:       "chatta",
		MarkdownStyle:  "dark",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chattatrader"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk, falling back to defaults
// when no file exists.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.SocketEndpoint == "" {
		cfg.SocketEndpoint = DefaultSocketEndpoint
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
