package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/config"
	"github.com/chaz8081/padfeed/internal/controller"
	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/hotkey"
	"github.com/chaz8081/padfeed/internal/inject"
	"github.com/chaz8081/padfeed/internal/logging"
	"github.com/chaz8081/padfeed/internal/notify"
	"github.com/chaz8081/padfeed/internal/ratelimit"
	"github.com/chaz8081/padfeed/internal/source"
	"github.com/chaz8081/padfeed/internal/window"
)

// version is set at build time via -ldflags "-X main.version=x.y.z"
var version = "dev"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "padfeed",
	Short:        "Paste generated text into a text editor on a fixed interval",
	SilenceUsage: true,
	RunE:         runWatcher,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to config file (default: ~/.config/padfeed/config.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: auto, text, json (overrides config)")

	rootCmd.AddCommand(
		versionCmd(),
		windowsCmd(),
		initConfigCmd(),
	)
}

func runWatcher(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := setup()
	if err != nil {
		return err
	}
	levelVar := logging.Setup(logging.ParseFormat(cfg.LogFormat), config.ParseLogLevel(cfg.LogLevel))

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return err
	}
	apiKey := cfg.APIKey()
	if apiKey == "" {
		slog.Warn("[MAIN] API key not set, every fetch will fail until it is", "env", cfg.Source.APIKeyEnv)
	}

	printBanner(cfg, cfgPath)

	clk := clock.Real{}
	windows := desktop.NewWindowSystem()
	input := desktop.Robot{}
	cb, err := desktop.NewClipboard(cfg.Clipboard.Backend)
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	var notifier controller.Notifier
	if cfg.Notify.Enabled {
		notifier = notify.NewDesktop()
	}

	ctrl := controller.New(controller.Deps{
		Limiter:   ratelimit.New(cfg.Interval),
		Locator:   window.NewLocator(windows, cfg.Window.Titles),
		Activator: window.NewActivator(windows, clk, cfg.ActivatorOptions()),
		Guard:     window.NewFocusGuard(input),
		Source:    source.NewOpenAI(cfg.SourceConfig(apiKey), clk),
		Transfer:  inject.NewTransfer(cb, input, clk, cfg.InjectOptions()),
		Clock:     clk,
		Notifier:  notifier,
	}, cfg.ControllerOptions())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfgPath != "" {
		go func() {
			err := config.Watch(ctx, cfgPath, func(next *config.Config) {
				ctrl.Reconfigure(next.Settings())
				if flagLogLevel == "" {
					levelVar.Set(config.ParseLogLevel(next.LogLevel))
				}
			})
			if err != nil {
				slog.Warn("[MAIN] config watch disabled", "error", err)
			}
		}()
	}

	var listener *hotkey.Listener
	if cfg.Hotkey.Enabled {
		listener = hotkey.NewListener(cfg.Hotkey.Keys)
		go listener.Start()
		go func() {
			for ev := range listener.Events() {
				ctrl.SetPaused(ev.Type == hotkey.EventPause)
			}
		}()
		slog.Info("[MAIN] pause hotkey ready", "keys", strings.Join(cfg.Hotkey.Keys, "+"))
	}

	slog.Info("[MAIN] watching for editor window", "titles", cfg.Window.Titles, "interval", cfg.Interval)
	if err := ctrl.Run(ctx); err != nil {
		return err
	}

	slog.Info("[MAIN] shutting down", "last_injection", ctrl.PollState().LastInjection)
	if listener != nil {
		listener.Stop()
		// Exit directly to avoid gohook's C cleanup crash.
		// The OS reclaims the event hook on process exit.
		os.Exit(0)
	}
	return nil
}

// setup loads and validates the config, applying flag overrides. It
// returns the path the config was read from, or "" for built-in defaults.
func setup() (*config.Config, string, error) {
	cfg, path, err := loadConfig(flagConfig)
	if err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config validation: %w", err)
	}
	return cfg, path, nil
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, defaultPath, nil
	}

	return config.Default(), "", nil
}

// loadEnvFile populates the environment from path. A missing file is not an
// error; variables already set are not overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("[MAIN] no env file", "path", path)
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	slog.Debug("[MAIN] env file loaded", "path", path)
	return nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config, cfgPath string) {
	if cfgPath == "" {
		cfgPath = "(built-in defaults)"
	}
	hk := "disabled"
	if cfg.Hotkey.Enabled {
		hk = strings.Join(cfg.Hotkey.Keys, "+") + " (pause/resume)"
	}
	fmt.Println("=== padfeed ===")
	fmt.Printf("  Config:    %s\n", cfgPath)
	fmt.Printf("  Windows:   %s\n", strings.Join(cfg.Window.Titles, ", "))
	fmt.Printf("  Interval:  %s\n", cfg.Interval)
	fmt.Printf("  Model:     %s @ %s\n", cfg.Source.Model, cfg.Source.BaseURL)
	fmt.Printf("  Clipboard: %s\n", cfg.Clipboard.Backend)
	fmt.Printf("  Hotkey:    %s\n", hk)
	fmt.Printf("  Log:       %s\n", cfg.LogLevel)
	fmt.Println("===============")
}
