package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superhedge/listingctl/internal/domain"
	domainconfig "github.com/superhedge/listingctl/internal/domain/config"
)

func testConfig() *domainconfig.RuntimeConfig {
	return &domainconfig.RuntimeConfig{
		Networks: map[string]*domainconfig.Network{
			"goerli":  {Name: "goerli", ChainID: 5},
			"polygon": {Name: "polygon", ChainID: 137},
			"devnet":  {Name: "devnet", ChainID: 1337},
			"devnet2": {Name: "devnet2", ChainID: 1337},
		},
	}
}

func TestNetworkResolverAdapter_ResolveNetwork(t *testing.T) {
	a := NewNetworkResolverAdapter(testConfig())
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		want     string
		notFound bool
		wantErr  string
	}{
		{name: "by name", input: "polygon", want: "polygon"},
		{name: "name is case-insensitive", input: " Goerli ", want: "goerli"},
		{name: "decimal chain id", input: "137", want: "polygon"},
		{name: "hex chain id", input: "0x89", want: "polygon"},
		{name: "unknown name", input: "sepolia", notFound: true},
		{name: "unknown chain id", input: "10", notFound: true},
		{name: "zero chain id", input: "0", notFound: true},
		{name: "ambiguous chain id", input: "1337", wantErr: "devnet, devnet2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := a.ResolveNetwork(ctx, tt.input)
			switch {
			case tt.notFound:
				assert.ErrorIs(t, err, domain.ErrNotFound)
			case tt.wantErr != "":
				assert.ErrorContains(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, n.Name)
			}
		})
	}
}

func TestNetworkResolverAdapter_CanceledContext(t *testing.T) {
	a := NewNetworkResolverAdapter(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ResolveNetwork(ctx, "goerli")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"devnet", "devnet2", "goerli", "polygon"}, a.GetNetworks(ctx))
}
