// Package cli wires configuration, logging and the refreshnow commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"refreshnow/internal/collector"
	"refreshnow/internal/config"
	"refreshnow/ui/console"
	"refreshnow/ui/tui"
)

// GlobalFlags holds the persistent command line flags.
type GlobalFlags struct {
	Config  string
	Mode    string
	Density float64
	Debug   bool
}

// NewRootCmd creates the root cobra command. It runs the TUI.
func NewRootCmd() *cobra.Command {
	var flags GlobalFlags
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:           "refreshnow",
		Short:         "Pull-to-refresh process list for the terminal",
		Long:          "refreshnow lists running processes. Drag past the top to reload, past the bottom to load more.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			loaded, err := config.Load(flags.Config)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, loaded, flags); err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupTUILogging(cfg.LogFile, flags.Debug)
			if err != nil {
				return err
			}
			defer closer.Close()

			provider, err := collector.NewSystemCollector(cfg.Collector())
			if err != nil {
				return err
			}
			var reloads <-chan config.Reload
			if w, err := config.Watch(flags.Config); err != nil {
				slog.Warn("config watch disabled", "err", err)
			} else {
				defer w.Stop()
				reloads = w.Changes()
			}
			return tui.Start(provider, cfg, reloads)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.Config, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVarP(&flags.Mode, "mode", "m", "", "Refresh edges: none, start, end or both")
	cmd.PersistentFlags().Float64Var(&flags.Density, "density", 0, "Display density scaling the pull threshold")
	cmd.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "Write debug logs")

	cmd.AddCommand(newReplayCmd(cfg, &flags))
	return cmd
}

func newReplayCmd(cfg *config.Config, flags *GlobalFlags) *cobra.Command {
	var script string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a scripted gesture and print the refresh lifecycle",
		Example: `  refreshnow replay
  refreshnow replay --script "down move:-40x6 up frames complete"
  refreshnow replay --mode end --script "down move:40x6 up frames"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Debug {
				slog.SetDefault(debugLogger(cmd.ErrOrStderr()))
			}
			steps := console.DefaultScript()
			if script != "" {
				parsed, err := console.ParseScript(script)
				if err != nil {
					return err
				}
				steps = parsed
			}
			mode, err := cfg.RefreshMode()
			if err != nil {
				return err
			}
			_, err = console.Replay(cmd.OutOrStdout(), cfg.Refresh(), mode, steps)
			return err
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "Steps: down, up, cancel, frames, complete, move:<delta>[x<count>]")
	return cmd
}

// applyFlags lays explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags GlobalFlags) error {
	if cmd.Flags().Changed("mode") {
		cfg.Mode = flags.Mode
	}
	if cmd.Flags().Changed("density") {
		cfg.Density = flags.Density
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// setupTUILogging sends slog output to a file while the TUI owns the
// terminal. Without debug, logs are discarded.
func setupTUILogging(path string, debug bool) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "refreshnow")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(debugLogger(f))
	return f, nil
}

func debugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
