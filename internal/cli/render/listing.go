package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// ListingRenderer renders listing views and mutation results
type ListingRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewListingRenderer creates a new listing renderer
func NewListingRenderer(out io.Writer, network *config.Network) *ListingRenderer {
	return &ListingRenderer{out: out, network: network}
}

func (r *ListingRenderer) decimals() int32 {
	if r.network == nil {
		return domain.DefaultCurrencyDecimals
	}
	return r.network.Currency.Decimals
}

func (r *ListingRenderer) symbol() string {
	if r.network == nil || r.network.Currency.Symbol == "" {
		return "USDC"
	}
	return r.network.Currency.Symbol
}

// RenderView renders the merged view of a listing or position
func (r *ListingRenderer) RenderView(view models.MergedListingView) error {
	if view.Key.IsPosition() {
		fmt.Fprintln(r.out, headerStyle.Sprintf("Position %s", view.Key.ProductAddress.Hex()))
	} else {
		fmt.Fprintln(r.out, headerStyle.Sprintf("Listing #%s", view.Key.ListingID))
	}
	if view.Loading {
		fmt.Fprintln(r.out, absentStyle.Sprint("  loading…"))
		return nil
	}

	if rec := view.Record; rec != nil {
		r.field("Product", addressStyle.Sprint(rec.ProductAddress.Hex()))
		r.field("Seller", addressStyle.Sprint(rec.Seller.Hex()))
		r.field("Price", amountStyle.Sprintf("%s %s", FormatAmount(rec.OfferPriceMinorUnits, r.decimals()), r.symbol()))
		r.field("Lots", fmt.Sprintf("%d", rec.Lots))
		r.field("Starts", rec.StartsAt().Format("2006-01-02 15:04:05 MST"))
	} else if !view.Key.IsPosition() {
		r.field("Record", absentStyle.Sprint("unavailable"))
	}

	if p := view.Product; p != nil {
		statusColor := color.New(color.FgYellow)
		if p.IsIssued() {
			statusColor = color.New(color.FgGreen)
		}
		r.field("Status", statusColor.Sprint(p.Status))
		r.field("Token ID", FormatCount(p.CurrentTokenID))
	} else {
		r.field("Status", absentStyle.Sprint("unavailable"))
	}

	if view.Balance != nil {
		r.field("Balance", FormatCount(view.Balance)+" lots")
	} else {
		r.field("Balance", absentStyle.Sprint("unavailable"))
	}

	if view.Degraded() {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("Some data could not be loaded; listing changes may be blocked"))
	}
	return nil
}

func (r *ListingRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-9s", label+":"), value)
}

// RenderOutcome renders a transaction outcome on one line
func (r *ListingRenderer) RenderOutcome(outcome models.TransactionOutcome) error {
	switch outcome.Kind {
	case models.OutcomeSubmitted:
		fmt.Fprintf(r.out, "📤 Submitted %s\n", r.txRef(outcome))
	case models.OutcomeConfirmed:
		msg := fmt.Sprintf("Confirmed in block %d (%s)", outcome.BlockNumber, r.txRef(outcome))
		if outcome.ListingID != "" {
			msg += fmt.Sprintf(", listing #%s", outcome.ListingID)
		}
		fmt.Fprintln(r.out, FormatSuccess(msg))
	case models.OutcomeRejectedByUser:
		fmt.Fprintln(r.out, FormatWarning("Signature request declined"))
	case models.OutcomeReverted:
		fmt.Fprintln(r.out, color.New(color.FgRed).Sprintf("❌ Reverted: %s", outcome.Reason))
	case models.OutcomeTimedOut:
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No confirmation observed in time; %s may still be mined", r.txRef(outcome))))
	default:
		fmt.Fprintln(r.out, Title(string(outcome.Kind)))
	}
	return nil
}

func (r *ListingRenderer) txRef(outcome models.TransactionOutcome) string {
	if !outcome.Broadcast() {
		return "unsent transaction"
	}
	if url := r.network.ExplorerTxURL(outcome.TxHash); url != "" {
		return url
	}
	return outcome.TxHash.Hex()
}

// RenderUpdate renders the request, the outcome and the refreshed view
func (r *ListingRenderer) RenderUpdate(result *usecase.UpdateListingResult) error {
	req := result.Request
	fmt.Fprintln(r.out, headerStyle.Sprintf("%s listing", Title(string(req.Kind))))
	if req.ListingID != "" {
		r.field("Listing", "#"+req.ListingID)
	}
	if req.Kind != models.MutationCancel {
		r.field("Price", amountStyle.Sprintf("%s %s", FormatAmount(req.PriceMinorUnits, r.decimals()), r.symbol()))
		r.field("Lots", fmt.Sprintf("%d", req.Lots))
	}
	fmt.Fprintln(r.out)

	if err := r.RenderOutcome(result.Outcome); err != nil {
		return err
	}

	if result.After != nil {
		fmt.Fprintln(r.out)
		return r.RenderView(*result.After)
	}
	return nil
}

// WithOutput returns a copy of the renderer writing to out
func (r *ListingRenderer) WithOutput(out io.Writer) *ListingRenderer {
	return &ListingRenderer{out: out, network: r.network}
}
