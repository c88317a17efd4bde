package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaz8081/padfeed/internal/config"
	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/logging"
	"github.com/chaz8081/padfeed/internal/window"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "padfeed %s\n", version)
		},
	}
}

func windowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List visible windows and show which one would be targeted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			logging.Setup(logging.ParseFormat(cfg.LogFormat), config.ParseLogLevel(cfg.LogLevel))

			ws := desktop.NewWindowSystem()
			list, err := ws.Windows()
			if err != nil {
				return fmt.Errorf("listing windows: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, w := range list {
				fmt.Fprintf(out, "%#08x  %-24s  %q\n", uint64(w.Handle), w.Bounds, w.Title)
			}

			target, err := window.NewLocator(ws, cfg.Window.Titles).Locate()
			if err != nil {
				fmt.Fprintf(out, "\nno window matches %v\n", cfg.Window.Titles)
				return nil
			}
			fmt.Fprintf(out, "\ntarget: %q %s\n", target.Title, target.Bounds)
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config to ~/.config/padfeed/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path == "" {
				fmt.Fprintf(out, "config already exists at %s\n", config.DefaultConfigPath())
				return nil
			}
			fmt.Fprintf(out, "wrote default config to %s\n", path)
			return nil
		},
	}
}
