package cli

import (
	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in networks and those configured in the [networks] sections
of listing.toml. The active network is marked with *.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, result); handled {
				return err
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}
