package cli

import (
	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/cli/render"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// NewPositionsCmd creates the positions command
func NewPositionsCmd() *cobra.Command {
	var issuedOnly bool
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List the structured products you hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			connectSession(cmd, a)

			positions, err := a.ListPositions.Run(cmd.Context(), usecase.ListPositionsParams{IssuedOnly: issuedOnly})
			stopProgress(a)
			if err != nil {
				return err
			}

			if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, positions); handled {
				return err
			}
			return render.NewPortfolioRenderer(cmd.OutOrStdout(), a.Config.Network).RenderPositions(positions)
		},
	}
	cmd.Flags().BoolVar(&issuedOnly, "issued", false, "Only show issued positions, which can be listed")
	return cmd
}

// NewListingsCmd creates the listings command
func NewListingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listings",
		Short: "List your marketplace listings on the active network",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			connectSession(cmd, a)

			result, err := a.ListListings.Run(cmd.Context())
			stopProgress(a)
			if err != nil {
				return err
			}

			if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, result); handled {
				return err
			}
			return render.NewPortfolioRenderer(cmd.OutOrStdout(), a.Config.Network).RenderListings(result)
		},
	}
}

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var sort, txType string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your transaction history",
		Example: `  listingctl history
  listingctl history --sort asc --type listing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			order, err := parseHistoryOrder(sort)
			if err != nil {
				return err
			}
			connectSession(cmd, a)

			entries, err := a.ShowHistory.Run(cmd.Context(), usecase.ShowHistoryParams{Order: order, Type: txType})
			stopProgress(a)
			if err != nil {
				return err
			}

			if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, entries); handled {
				return err
			}
			return render.NewPortfolioRenderer(cmd.OutOrStdout(), a.Config.Network).RenderHistory(entries)
		},
	}
	cmd.Flags().StringVar(&sort, "sort", "desc", "Sort order: desc (newest first) or asc")
	cmd.Flags().StringVar(&txType, "type", "", "Only show transactions of this type")
	return cmd
}

func parseHistoryOrder(s string) (models.HistoryOrder, error) {
	switch s {
	case "", "desc":
		return models.HistoryNewestFirst, nil
	case "asc":
		return models.HistoryOldestFirst, nil
	default:
		return 0, &domain.ValidationError{Field: "sort", Value: s, Message: "must be desc or asc"}
	}
}
