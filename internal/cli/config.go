package cli

import (
	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration resolved from listing.toml, .env files,
LISTINGCTL_* environment variables and flags.

When run without subcommands, displays the current config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	return cmd
}

func showConfig(cmd *cobra.Command) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	connectSession(cmd, a)

	result, err := a.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, result); handled {
		return err
	}
	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
}
