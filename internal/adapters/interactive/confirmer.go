package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/usecase"
)

// ErrConfirmationUnavailable is returned when a signature needs approval but
// no terminal prompt can be shown.
var ErrConfirmationUnavailable = errors.New("signature confirmation not available in non-interactive mode; pass --yes")

// Confirmer asks on the terminal before every signature
type Confirmer struct {
	config *config.RuntimeConfig

	run func(prompt *promptui.Prompt) (string, error)
}

// NewConfirmer creates a terminal confirmer
func NewConfirmer(cfg *config.RuntimeConfig) *Confirmer {
	return &Confirmer{
		config: cfg,
		run: func(p *promptui.Prompt) (string, error) {
			return p.Run()
		},
	}
}

// ConfirmSignature shows the request and returns the user's decision
func (c *Confirmer) ConfirmSignature(ctx context.Context, req usecase.SignatureRequest) (bool, error) {
	if c.config.AssumeYes {
		return true, nil
	}
	if c.config.NonInteractive {
		return false, ErrConfirmationUnavailable
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Println()
	color.New(color.FgCyan, color.Bold).Println("Signature request")
	fmt.Printf("  Method:  %s\n", req.Method)
	fmt.Printf("  From:    %s\n", req.From.Hex())
	fmt.Printf("  To:      %s\n", req.To.Hex())
	fmt.Printf("  Chain:   %d\n", req.ChainID)
	if req.Summary != "" {
		fmt.Printf("  Details: %s\n", req.Summary)
	}

	_, err := c.run(&promptui.Prompt{
		Label:     "Sign and send this transaction",
		IsConfirm: true,
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	case errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	default:
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
}

var _ usecase.Confirmer = (*Confirmer)(nil)
