package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/superhedge/listingctl/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintln(r.out, FormatWarning("No listing.toml found; using built-in networks and environment"))
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "📋 Current config:")
	if n := result.Network; n != nil {
		fmt.Fprintf(r.out, "Network:      %s (chain %d)\n", n.Name, n.ChainID)
		fmt.Fprintf(r.out, "RPC:          %s\n", orNotSet(n.RPCURL))
		fmt.Fprintf(r.out, "Marketplace:  %s\n", n.Contracts.Marketplace.Hex())
		fmt.Fprintf(r.out, "NFT:          %s\n", n.Contracts.NFT.Hex())
		fmt.Fprintf(r.out, "Currency:     %s %s (%d decimals)\n", n.Currency.Symbol, n.Currency.Address.Hex(), n.Currency.Decimals)
	}
	fmt.Fprintf(r.out, "Backend:      %s (timeout %s)\n", orNotSet(result.Backend.URL), result.Backend.Timeout)
	fmt.Fprintf(r.out, "Confirm wait: %s\n", result.ConfirmTimeout)
	fmt.Fprintf(r.out, "Session:      %s\n", result.Session)

	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
