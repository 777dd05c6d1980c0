package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/adapters/backend"
	"github.com/superhedge/listingctl/internal/cli/render"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/logging"
)

const devShutdownTimeout = 5 * time.Second

// NewDevCmd creates the dev command with subcommands
func NewDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long:  `Development utilities for running listingctl against a local chain.`,
		Annotations: map[string]string{
			skipAppAnnotation: "true",
		},
	}

	cmd.AddCommand(newDevBackendCmd())

	return cmd
}

// newDevBackendCmd serves an in-memory listing backend
func newDevBackendCmd() *cobra.Command {
	var (
		addr     string
		fixtures string
	)

	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Run an in-memory listing backend",
		Long: `Run an in-memory implementation of the listing backend API, optionally
seeded from a fixtures YAML file. Point backend_url in listing.toml at it
to exercise listing commands against a local chain.`,
		Example: `  listingctl dev backend --addr :8787 --fixtures fixtures.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *backend.Fixtures
			if fixtures != "" {
				f, err := backend.LoadFixtures(fixtures)
				if err != nil {
					return err
				}
				seed = f
			}

			debug, _ := cmd.Flags().GetBool("debug")
			log := logging.NewLogger(&config.RuntimeConfig{Debug: debug})
			server := &http.Server{
				Addr:              addr,
				Handler:           backend.NewDevServer(seed, log).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			return serveUntilDone(cmd.Context(), server, func() {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Dev backend listening on %s", addr)))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "Fixtures YAML file to seed the backend")

	return cmd
}

func serveUntilDone(ctx context.Context, server *http.Server, ready func()) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	ready()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), devShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev backend: %w", err)
		}
		return nil
	}
}
