package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/superhedge/listingctl/internal/config"
	"github.com/superhedge/listingctl/internal/domain"
	domainconfig "github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/usecase"
)

// NetworkResolverAdapter serves usecase.NetworkResolver from the runtime
// networks. Networks can be named or given by chain id ("137", "0x89"),
// which is what wallets and explorers report.
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: config.NewNetworkResolver(cfg),
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name or chain id to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(networkName))
	n, err := a.resolver.Resolve(name)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return n, err
	}

	chainID, perr := strconv.ParseUint(name, 0, 64)
	if perr != nil || chainID == 0 {
		return nil, err
	}
	return a.byChainID(chainID)
}

func (a *NetworkResolverAdapter) byChainID(chainID uint64) (*domainconfig.Network, error) {
	matches := lo.FilterMap(a.resolver.GetNetworks(), func(name string, _ int) (*domainconfig.Network, bool) {
		n, err := a.resolver.Resolve(name)
		return n, err == nil && n.ChainID == chainID
	})
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("chain id %d: %w", chainID, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		names := lo.Map(matches, func(n *domainconfig.Network, _ int) string { return n.Name })
		return nil, fmt.Errorf("chain id %d is configured as %s; pick one by name", chainID, strings.Join(names, ", "))
	}
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
