// Package config loads the tool configuration. Everything is optional
// and defaulted: the config file wires dependency injection for the CLI,
// it is not a hidden global consumed by the execution core.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "/etc/shellcaptain/shellcaptain.conf"
const envOverride = "SHELLCAPTAIN_CONFIG"

type Config struct {
	Exec    ExecConfig    `toml:"exec"`
	History HistoryConfig `toml:"history"`
	GitHub  GitHubConfig  `toml:"github"`
	Log     LogConfig     `toml:"log"`
}

type ExecConfig struct {
	// StreamBufferSize is the chunk size for streaming execution.
	StreamBufferSize int `toml:"stream_buffer_size"`
	// CaptureMaxBytes caps captured stdout/stderr; exceeding it fails
	// the call.
	CaptureMaxBytes int `toml:"capture_max_bytes"`
	// EscalateTool is prefixed to privileged commands as a plain argv
	// element. No prompt handling is done: stdin is closed.
	EscalateTool string `toml:"escalate_tool"`
}

type HistoryConfig struct {
	Disabled bool   `toml:"disabled"`
	Path     string `toml:"path"`
}

type GitHubConfig struct {
	Token        string `toml:"token"`
	Owner        string `toml:"owner"`
	AssetPattern string `toml:"asset_pattern"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultPath returns the configuration file path, honoring the
// SHELLCAPTAIN_CONFIG override.
func DefaultPath() string {
	if p := os.Getenv(envOverride); p != "" {
		return p
	}
	return defaultConfigPath
}

// Load reads configuration from the default path. A missing file is not
// an error; the defaults apply.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Exec.StreamBufferSize < 0 {
		return nil, fmt.Errorf("config: exec.stream_buffer_size must be positive")
	}
	if cfg.Exec.CaptureMaxBytes < 0 {
		return nil, fmt.Errorf("config: exec.capture_max_bytes must be positive")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Exec.StreamBufferSize == 0 {
		cfg.Exec.StreamBufferSize = 4096
	}
	if cfg.Exec.CaptureMaxBytes == 0 {
		cfg.Exec.CaptureMaxBytes = 1 << 20
	}
	if cfg.Exec.EscalateTool == "" {
		cfg.Exec.EscalateTool = "sudo"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "/var/lib/shellcaptain/history.db"
	}
	if cfg.GitHub.AssetPattern == "" {
		cfg.GitHub.AssetPattern = "{{.Name}}-linux-amd64"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// TemplateConfig returns a TOML template with the defaults spelled out
// for first-time setup.
func TemplateConfig() string {
	return `[exec]
stream_buffer_size = 4096
capture_max_bytes  = 1048576
escalate_tool      = "sudo"

[history]
disabled = false
path     = "/var/lib/shellcaptain/history.db"

[github]
token         = ""
owner         = ""
asset_pattern = "{{.Name}}-linux-amd64"

[log]
level = "info"
`
}
