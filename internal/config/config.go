package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chaz8081/padfeed/internal/inject"
	"github.com/chaz8081/padfeed/internal/source"
	"github.com/chaz8081/padfeed/internal/window"
)

// Config holds all application configuration.
type Config struct {
	Interval  time.Duration   `yaml:"interval"`
	Tick      time.Duration   `yaml:"tick"`
	Window    WindowConfig    `yaml:"window"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Delivery  DeliveryConfig  `yaml:"delivery"`
	Source    SourceConfig    `yaml:"source"`
	Hotkey    HotkeyConfig    `yaml:"hotkey"`
	Notify    NotifyConfig    `yaml:"notify"`
	EnvFile   string          `yaml:"env_file"`
	LogLevel  string          `yaml:"log_level"`
	LogFormat string          `yaml:"log_format"`
}

// WindowConfig holds target window lookup and activation settings.
type WindowConfig struct {
	Titles      []string      `yaml:"titles"`
	Attempts    int           `yaml:"attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// ClipboardConfig holds clipboard paste settings.
type ClipboardConfig struct {
	Backend        string        `yaml:"backend"` // "robotgo" or "native"
	PropagateDelay time.Duration `yaml:"propagate_delay"`
	PasteDelay     time.Duration `yaml:"paste_delay"`
	PasteModifier  string        `yaml:"paste_modifier"` // "ctrl" or "cmd"
}

// DeliveryConfig holds the layout of each injected entry.
type DeliveryConfig struct {
	SettleDelay    time.Duration `yaml:"settle_delay"`
	LineBreaks     int           `yaml:"line_breaks"`
	LineBreakDelay time.Duration `yaml:"line_break_delay"`
}

// SourceConfig holds chat-completion endpoint settings.
type SourceConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Prompt      string        `yaml:"prompt"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	APIKeyEnv   string        `yaml:"api_key_env"` // environment variable holding the key
}

// HotkeyConfig holds the pause/resume hotkey.
type HotkeyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Keys    []string `yaml:"keys"`
}

// NotifyConfig controls desktop notifications after each injection.
type NotifyConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "padfeed")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	src := source.DefaultConfig()
	act := window.DefaultActivatorOptions()
	inj := inject.DefaultOptions()

	return &Config{
		Interval: 10 * time.Second,
		Tick:     time.Second,
		Window: WindowConfig{
			Titles:      append([]string(nil), window.DefaultTitles...),
			Attempts:    act.Attempts,
			RetryDelay:  act.RetryDelay,
			SettleDelay: act.SettleDelay,
		},
		Clipboard: ClipboardConfig{
			Backend:        "robotgo",
			PropagateDelay: inj.PropagateDelay,
			PasteDelay:     inj.PasteDelay,
			PasteModifier:  inj.PasteModifier,
		},
		Delivery: DeliveryConfig{
			SettleDelay:    500 * time.Millisecond,
			LineBreaks:     2,
			LineBreakDelay: 200 * time.Millisecond,
		},
		Source: SourceConfig{
			BaseURL:     src.BaseURL,
			Model:       src.Model,
			Prompt:      src.Prompt,
			Temperature: src.Temperature,
			MaxTokens:   src.MaxTokens,
			Timeout:     src.Timeout,
			APIKeyEnv:   "DEEPSEEK_API_KEY",
		},
		Hotkey: HotkeyConfig{
			Enabled: true,
			Keys:    []string{"ctrl", "shift", "p"},
		},
		EnvFile:   ".env",
		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in env_file is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.EnvFile = expandTilde(cfg.EnvFile)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0")
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be > 0")
	}

	if len(nonBlank(c.Window.Titles)) == 0 {
		return fmt.Errorf("window.titles must contain at least one title")
	}
	if c.Window.Attempts <= 0 {
		return fmt.Errorf("window.attempts must be > 0")
	}
	if c.Window.RetryDelay < 0 || c.Window.SettleDelay < 0 {
		return fmt.Errorf("window delays must not be negative")
	}

	switch c.Clipboard.Backend {
	case "robotgo", "native":
	default:
		return fmt.Errorf("clipboard.backend must be \"robotgo\" or \"native\", got %q", c.Clipboard.Backend)
	}
	switch c.Clipboard.PasteModifier {
	case "ctrl", "cmd":
	default:
		return fmt.Errorf("clipboard.paste_modifier must be \"ctrl\" or \"cmd\", got %q", c.Clipboard.PasteModifier)
	}
	if c.Clipboard.PropagateDelay < 0 || c.Clipboard.PasteDelay < 0 {
		return fmt.Errorf("clipboard delays must not be negative")
	}

	if c.Delivery.LineBreaks < 0 {
		return fmt.Errorf("delivery.line_breaks must be >= 0")
	}
	if c.Delivery.SettleDelay < 0 || c.Delivery.LineBreakDelay < 0 {
		return fmt.Errorf("delivery delays must not be negative")
	}

	if c.Source.BaseURL == "" {
		return fmt.Errorf("source.base_url must not be empty")
	}
	if c.Source.Model == "" {
		return fmt.Errorf("source.model must not be empty")
	}
	if strings.TrimSpace(c.Source.Prompt) == "" {
		return fmt.Errorf("source.prompt must not be empty")
	}
	if c.Source.Temperature < 0 || c.Source.Temperature > 2 {
		return fmt.Errorf("source.temperature must be between 0 and 2, got %v", c.Source.Temperature)
	}
	if c.Source.MaxTokens <= 0 {
		return fmt.Errorf("source.max_tokens must be > 0")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be > 0")
	}
	if c.Source.APIKeyEnv == "" {
		return fmt.Errorf("source.api_key_env must not be empty")
	}

	if c.Hotkey.Enabled && len(c.Hotkey.Keys) == 0 {
		return fmt.Errorf("hotkey.keys must not be empty when hotkey is enabled")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log_format must be auto, text, or json, got %q", c.LogFormat)
	}

	return nil
}

// APIKey returns the API key from the environment variable named by
// source.api_key_env.
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.Source.APIKeyEnv))
}

// ParseLogLevel converts a log_level string to a slog.Level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const defaultHeader = `# padfeed configuration
# Durations use Go syntax: 500ms, 10s, 1m.
# The API key is read from the environment variable named by source.api_key_env,
# which may be set in env_file.
`

// WriteDefault writes the default config to DefaultConfigPath if no file
// exists there. It returns the written path, or "" if a config was already
// present.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

func nonBlank(ss []string) []string {
	var out []string
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
