package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shhac/atrium/internal/api"
	atriumApp "github.com/shhac/atrium/internal/app"
	apperrors "github.com/shhac/atrium/internal/errors"
	"github.com/shhac/atrium/internal/page"
	"github.com/shhac/atrium/internal/ui/listing"
)

// newClient builds a listing client for the configured location. Debug
// output goes to stderr as text.
func newClient(cmd *cobra.Command, cfg *atriumApp.Config) (*api.Client, error) {
	loc, err := page.NewLocation(cfg.Location)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return api.New(loc, api.WithLogger(logger)), nil
}

func newListCommand(config func() *atriumApp.Config) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "Print the JSON file listing for a path",
		Long: `Request the listing for path (default "/") under the locale of --location
and print the JSON payload. Failures are explained and exit with status 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}

			client, err := newClient(cmd, config())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			payload, err := client.Fetch(ctx, path)
			if err != nil {
				printUIError(cmd.ErrOrStderr(), apperrors.ClassifyError(err))
				return fmt.Errorf("listing %s failed", client.ListingURL(path))
			}

			text, _, err := listing.Format(payload)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout (0 for none)")
	return cmd
}

func newURLCommand(config func() *atriumApp.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "url <path>",
		Short: "Print the locale-prefixed link for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd, config())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), client.AbsoluteURL(client.FileURL(api.RootedPath(args[0]))))
			return err
		},
	}
}

func printUIError(w io.Writer, uiErr *apperrors.UIError) {
	fmt.Fprintf(w, "%s: %s\n", uiErr.Title, uiErr.Message)
	for _, suggestion := range uiErr.Recovery {
		fmt.Fprintf(w, "  - %s\n", suggestion)
	}
	if uiErr.Details != "" {
		fmt.Fprintf(w, "Details: %s\n", uiErr.Details)
	}
}
