package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	atriumApp "github.com/shhac/atrium/internal/app"
	"github.com/shhac/atrium/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command starts the GUI.
func newRootCmd() *cobra.Command {
	var cfg *atriumApp.Config

	rootCmd := &cobra.Command{
		Use:   "atrium",
		Short: "Atrium - Librarian dashboard",
		Long: `Atrium is a desktop dashboard for Librarian content servers.

Without a subcommand it opens the dashboard window for --location. The ls and
url subcommands work headless against the same location.`,
		Version: ui.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
			loaded, err := atriumApp.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cfg = loaded

			if cfg.Debug && cfg.FileUsed != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", cfg.FileUsed)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApp(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	atriumApp.RegisterFlags(rootCmd.PersistentFlags())

	_ = rootCmd.RegisterFlagCompletionFunc("theme", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{ui.ThemeSystem, ui.ThemeLight, ui.ThemeDark}, cobra.ShellCompDirectiveNoFileComp
	})

	config := func() *atriumApp.Config { return cfg }
	rootCmd.AddCommand(newListCommand(config))
	rootCmd.AddCommand(newURLCommand(config))

	return rootCmd
}

// runApp is the main application entry point with panic recovery.
func runApp(cfg *atriumApp.Config) (err error) {
	// Create a temporary stdout logger for bootstrap errors
	tempLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			tempLogger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	tempLogger.Info("starting Atrium", slog.String("location", cfg.Location))

	fyneApp := app.NewWithID("com.shhac.atrium")
	ui.LoadThemePreference(fyneApp, cfg.Theme)

	atrium, err := atriumApp.New(fyneApp, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer atrium.Close()

	mainWindow := ui.NewMainWindow(atrium.FyneApp(), atrium)

	// Blocks until the window closes.
	atrium.Run(mainWindow.Window())

	atrium.Logger().Info("application shutdown complete")
	return nil
}
