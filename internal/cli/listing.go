package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/adapters/interactive"
	"github.com/superhedge/listingctl/internal/app"
	"github.com/superhedge/listingctl/internal/cli/render"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// NewListingCmd creates the listing command group
func NewListingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Show and change a marketplace listing",
		Long: `Show, update, create, cancel or watch a single marketplace listing.

Every change is checked against the listing record, the product status and
your position balance before the transaction is signed.`,
	}

	cmd.AddCommand(newListingShowCmd())
	cmd.AddCommand(newListingUpdateCmd())
	cmd.AddCommand(newListingCreateCmd())
	cmd.AddCommand(newListingCancelCmd())
	cmd.AddCommand(newListingWatchCmd())

	return cmd
}

func newListingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <listing-id>",
		Short: "Show a listing with its product status and your balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			session := connectSession(cmd, a)
			view, _ := a.Sync.SyncListing(cmd.Context(), models.ListingKey{
				ListingID: args[0],
				Address:   session.Address,
				ChainID:   session.ChainID,
			})
			stopProgress(a)

			if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, view); handled {
				return err
			}
			return render.NewListingRenderer(cmd.OutOrStdout(), a.Config.Network).RenderView(view)
		},
	}
}

// mutationFlags holds the flags shared by the listing change commands
type mutationFlags struct {
	price string
	lots  uint64
	start string
}

func addSigningFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("timeout", usecase.DefaultConfirmTimeout, "How long to wait for the transaction to be mined")
	cmd.Flags().BoolP("yes", "y", false, "Sign without asking for confirmation")
}

func newListingUpdateCmd() *cobra.Command {
	flags := &mutationFlags{}
	cmd := &cobra.Command{
		Use:   "update <listing-id>",
		Short: "Change the price and lot count of a listing",
		Long: `Change the offer price and optionally the lot count of one of your listings.

The price is given in currency units (e.g. 10500.00). Without --lots the
listed lot count is kept.

Examples:
  listingctl listing update 7 --price 10500.00
  listingctl listing update 7 --price 9800 --lots 2 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, usecase.UpdateListingParams{
				Kind:      models.MutationUpdate,
				ListingID: args[0],
				Lots:      flags.lots,
				Price:     flags.price,
			})
		},
	}

	cmd.Flags().StringVar(&flags.price, "price", "", "New offer price in currency units")
	cmd.Flags().Uint64Var(&flags.lots, "lots", 0, "Lots to list (defaults to the listed lot count)")
	_ = cmd.MarkFlagRequired("price")
	addSigningFlags(cmd)
	return cmd
}

func newListingCreateCmd() *cobra.Command {
	flags := &mutationFlags{}
	cmd := &cobra.Command{
		Use:   "create [product-address]",
		Short: "List lots of a position you hold",
		Long: `List lots of an issued product you hold on the marketplace.

Without a product address you pick one of your issued positions.

Examples:
  listingctl listing create --lots 5 --price 10500
  listingctl listing create 0x3333...3333 --lots 1 --price 990.5 --start 2024-01-01T00:00:00Z`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.UpdateListingParams{
				Kind:  models.MutationCreate,
				Lots:  flags.lots,
				Price: flags.price,
			}

			if flags.start != "" {
				params.StartingTime, err = time.Parse(time.RFC3339, flags.start)
				if err != nil {
					return &domain.ValidationError{Field: "start", Value: flags.start, Message: "must be an RFC3339 time"}
				}
			}

			if len(args) == 1 {
				params.ProductAddress, err = domain.ParseChecksumAddress(args[0])
				if err != nil {
					return &domain.ValidationError{Field: "product", Value: args[0], Message: err.Error()}
				}
			} else {
				connectSession(cmd, a)
				position, err := a.ListPositions.Select(cmd.Context(), "Select a position to list")
				stopProgress(a)
				if err != nil {
					return err
				}
				params.ProductAddress = position.Address
			}

			return runMutation(cmd, params)
		},
	}

	cmd.Flags().StringVar(&flags.price, "price", "", "Offer price per lot in currency units")
	cmd.Flags().Uint64Var(&flags.lots, "lots", 0, "Lots to list")
	cmd.Flags().StringVar(&flags.start, "start", "", "Listing start time (RFC3339, defaults to now)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("lots")
	addSigningFlags(cmd)
	return cmd
}

func newListingCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <listing-id>",
		Short: "Cancel one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMutation(cmd, usecase.UpdateListingParams{
				Kind:      models.MutationCancel,
				ListingID: args[0],
			})
		},
	}
	addSigningFlags(cmd)
	return cmd
}

// runMutation drives a listing change and reports its outcome. Reverted
// outcomes exit non-zero; declined and unconfirmed ones do not.
func runMutation(cmd *cobra.Command, params usecase.UpdateListingParams) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	if err := requireSigningMode(a); err != nil {
		return err
	}

	connectSession(cmd, a)
	params.ConfirmTimeout = a.Config.ConfirmTimeout

	renderer := render.NewListingRenderer(cmd.OutOrStdout(), a.Config.Network)
	structured := a.Config.Output != "text"
	if !structured {
		// Submitted is the only outcome not returned by Run
		stop := a.Submit.Subscribe(func(o models.TransactionOutcome) {
			if o.Kind == models.OutcomeSubmitted {
				stopProgress(a)
				_ = renderer.RenderOutcome(o)
			}
		})
		defer stop()
	}

	result, err := a.UpdateListing.Run(cmd.Context(), params)
	stopProgress(a)
	if err != nil {
		return err
	}

	if handled, err := render.Structured(cmd.OutOrStdout(), a.Config.Output, result); handled {
		if err != nil {
			return err
		}
	} else if err := renderer.RenderUpdate(result); err != nil {
		return err
	}

	if result.Outcome.Kind == models.OutcomeReverted {
		return &ExitError{Code: 1}
	}
	return nil
}

// requireSigningMode fails early when a signature would need a prompt that
// cannot be shown
func requireSigningMode(a *app.App) error {
	cfg := a.Config
	if cfg.NonInteractive && cfg.Wallet.Confirm && !cfg.AssumeYes {
		return &domain.PreconditionError{Op: "sign", Err: interactive.ErrConfirmationUnavailable}
	}
	if !cfg.Wallet.HasSigner() {
		return &domain.PreconditionError{Op: "sign", Err: fmt.Errorf("%w: no private key configured (set LISTINGCTL_PRIVATE_KEY or [wallet] private_key)", domain.ErrSessionNotReady)}
	}
	return nil
}
