package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// PortfolioRenderer renders positions, listed items and history as tables
type PortfolioRenderer struct {
	out      io.Writer
	decimals int32
}

// NewPortfolioRenderer creates a new portfolio renderer
func NewPortfolioRenderer(out io.Writer, network *config.Network) *PortfolioRenderer {
	decimals := domain.DefaultCurrencyDecimals
	if network != nil {
		decimals = network.Currency.Decimals
	}
	return &PortfolioRenderer{out: out, decimals: decimals}
}

func newTable(header table.Row, rightAligned ...int) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		MiddleHorizontal: "─",
		PaddingRight:     "   ",
	}
	t.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	return t
}

// RenderPositions renders the user's positions
func (r *PortfolioRenderer) RenderPositions(positions []*models.Position) error {
	if len(positions) == 0 {
		fmt.Fprintln(r.out, "No positions found")
		return nil
	}

	t := newTable(table.Row{"Product", "Underlying", "Status", "Capacity", "Address"}, 4)
	for _, p := range positions {
		capacity := fmt.Sprintf("%s / %s", FormatAmount(p.CurrentCapacity, r.decimals), FormatAmount(p.MaxCapacity, r.decimals))
		t.AppendRow(table.Row{p.Name, p.Underlying, p.Status.String(), capacity, p.Address.Hex()})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderListings renders the user's listed items
func (r *PortfolioRenderer) RenderListings(result *usecase.ListListingsResult) error {
	if result.HasNoPosition {
		fmt.Fprintln(r.out, FormatWarning("You hold no products; nothing can be listed"))
	}
	if len(result.Items) == 0 {
		fmt.Fprintln(r.out, "No listed items found")
		return nil
	}

	t := newTable(table.Row{"ID", "Product", "Price", "Lots", "Starts"}, 3, 4)
	for _, item := range result.Items {
		t.AppendRow(table.Row{
			"#" + item.ListingID,
			item.ProductAddress.Hex(),
			FormatAmount(item.OfferPriceMinorUnits, r.decimals),
			item.Lots,
			item.StartsAt().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderHistory renders the user's transaction history
func (r *PortfolioRenderer) RenderHistory(entries []*models.HistoryEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No transactions found")
		return nil
	}

	t := newTable(table.Row{"Date", "Type", "Product", "Amount", "Lots", "Tx"}, 4, 5)
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.CreatedAt.Format("2006-01-02 15:04"),
			Title(e.Type),
			e.ProductName,
			FormatAmount(e.AmountMinor, r.decimals),
			e.Lots,
			e.TxHash.TerminalString(),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
