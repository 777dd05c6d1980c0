package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectPosition selects a position from a list
func (s *SelectorAdapter) SelectPosition(ctx context.Context, positions []*models.Position, prompt string) (*models.Position, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions provided for selection")
	}
	if len(positions) == 1 {
		return positions[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	options := formatPositionOptions(positions)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(positionSearchKeys(positions)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return positions[index], nil
}

// formatPositionOptions renders "Name [Status] (0xabc…)" lines
func formatPositionOptions(positions []*models.Position) []string {
	options := make([]string, len(positions))
	for i, p := range positions {
		name := color.New(color.FgWhite, color.Bold).Sprint(p.Name)
		addr := color.New(color.FgBlue).Sprint(p.Address.Hex())

		statusColor := color.New(color.FgYellow)
		if p.Status == models.ProductStatusIssued {
			statusColor = color.New(color.FgGreen)
		}
		status := statusColor.Sprintf("[%s]", p.Status)

		if p.Underlying != "" {
			options[i] = fmt.Sprintf("%s %s %s (%s)", name, p.Underlying, status, addr)
		} else {
			options[i] = fmt.Sprintf("%s %s (%s)", name, status, addr)
		}
	}
	return options
}

// positionSearchKeys are the uncolored strings the searcher matches against
func positionSearchKeys(positions []*models.Position) []string {
	keys := make([]string, len(positions))
	for i, p := range positions {
		keys[i] = strings.ToLower(strings.Join([]string{p.Name, p.Underlying, p.Address.Hex()}, " "))
	}
	return keys
}

// fuzzySearcher matches by substring first, then by fuzzy subsequence
func fuzzySearcher(keys []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := keys[index]
		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.PositionSelector = (*SelectorAdapter)(nil)
