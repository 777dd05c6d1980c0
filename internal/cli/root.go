package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/app"
	"github.com/superhedge/listingctl/internal/config"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// skipAppAnnotation marks commands that run without configuration
	skipAppAnnotation = "listingctl/skip-app"
)

// ExitError carries a process exit code for a failure that has already
// been reported to the user
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "listingctl",
		Short: "Manage structured-product listings on the marketplace",
		Long: `listingctl creates, edits and cancels marketplace listings of structured
product positions. It reconciles the off-chain listing record with on-chain
product status and balances before any transaction is signed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil {
				a.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., goerli, mainnet)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json or yaml")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "listing",
		Title: "Listing Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "portfolio",
		Title: "Portfolio Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	listingCmd := NewListingCmd()
	listingCmd.GroupID = "listing"
	rootCmd.AddCommand(listingCmd)

	listingsCmd := NewListingsCmd()
	listingsCmd.GroupID = "portfolio"
	rootCmd.AddCommand(listingsCmd)

	positionsCmd := NewPositionsCmd()
	positionsCmd.GroupID = "portfolio"
	rootCmd.AddCommand(positionsCmd)

	historyCmd := NewHistoryCmd()
	historyCmd.GroupID = "portfolio"
	rootCmd.AddCommand(historyCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	devCmd := NewDevCmd()
	devCmd.GroupID = "management"
	rootCmd.AddCommand(devCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func skipApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipAppAnnotation] == "true" {
			return true
		}
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// connectSession refreshes the wallet session. A failure leaves the session
// degraded rather than failing the command.
func connectSession(cmd *cobra.Command, a *app.App) models.Session {
	session, err := a.Session.Refresh(cmd.Context())
	if err != nil {
		a.Log.Warn("wallet session degraded", "error", err)
	}
	return session
}

// stopProgress halts a running spinner before output is written
func stopProgress(a *app.App) {
	if s, ok := a.Sink.(interface{ Stop() }); ok {
		s.Stop()
	}
}

// ExitCode maps a command error onto the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	if domain.ClassifyError(err) == domain.ClassPrecondition {
		return 2
	}
	return 1
}
