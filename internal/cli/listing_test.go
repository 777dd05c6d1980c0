package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superhedge/listingctl/internal/adapters/interactive"
	"github.com/superhedge/listingctl/internal/app"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

func TestRequireSigningMode(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RuntimeConfig
		wantErr error
	}{
		{
			name: "interactive with key",
			cfg:  config.RuntimeConfig{Wallet: config.WalletConfig{PrivateKey: "0x01", Confirm: true}},
		},
		{
			name:    "non-interactive needs --yes",
			cfg:     config.RuntimeConfig{NonInteractive: true, Wallet: config.WalletConfig{PrivateKey: "0x01", Confirm: true}},
			wantErr: interactive.ErrConfirmationUnavailable,
		},
		{
			name: "non-interactive with --yes",
			cfg:  config.RuntimeConfig{NonInteractive: true, AssumeYes: true, Wallet: config.WalletConfig{PrivateKey: "0x01", Confirm: true}},
		},
		{
			name: "confirmation disabled",
			cfg:  config.RuntimeConfig{NonInteractive: true, Wallet: config.WalletConfig{PrivateKey: "0x01"}},
		},
		{
			name:    "no key",
			cfg:     config.RuntimeConfig{Wallet: config.WalletConfig{Confirm: true}},
			wantErr: domain.ErrSessionNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := requireSigningMode(&app.App{Config: &cfg})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, domain.ClassPrecondition, domain.ClassifyError(err))
			assert.Equal(t, 2, ExitCode(err))
		})
	}
}

func TestParseHistoryOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    models.HistoryOrder
		wantErr bool
	}{
		{"", models.HistoryNewestFirst, false},
		{"desc", models.HistoryNewestFirst, false},
		{"asc", models.HistoryOldestFirst, false},
		{"newest", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHistoryOrder(tt.in)
			if tt.wantErr {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "sort", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
