package usecase

import (
	"context"

	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	ConfigPath     string
	Exists         bool
	Network        *config.Network
	Backend        config.BackendConfig
	ConfirmTimeout string
	Session        models.Session
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	cfg     *config.RuntimeConfig
	session SessionSource
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, session SessionSource) *ShowConfig {
	return &ShowConfig{
		cfg:     cfg,
		session: session,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	return &ShowConfigResult{
		ConfigPath:     uc.cfg.ConfigFile,
		Exists:         uc.cfg.ConfigFile != "",
		Network:        uc.cfg.Network,
		Backend:        uc.cfg.Backend,
		ConfirmTimeout: uc.cfg.ConfirmTimeout.String(),
		Session:        uc.session.Current(),
	}, nil
}
