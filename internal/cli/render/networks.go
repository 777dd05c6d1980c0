package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the list of networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := " "
		if network.Active {
			marker = "*"
		}

		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "%s ❌ %s - Error: %v\n", marker, network.Name, network.Error)
		case network.Marketplace == (common.Address{}):
			fmt.Fprintf(r.out, "%s ⚠️  %s - Chain ID: %d (no marketplace configured)\n", marker, network.Name, network.ChainID)
		default:
			fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d, marketplace %s, %s\n",
				marker, network.Name, network.ChainID, network.Marketplace.Hex(), network.Currency)
		}
	}

	return nil
}
