package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/superhedge/listingctl/internal/app"
	"github.com/superhedge/listingctl/internal/cli/render"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

// viewMsg carries a synchronizer update into the bubbletea loop
type viewMsg models.MergedListingView

// watchModel is the bubbletea model for the live listing view
type watchModel struct {
	view     models.MergedListingView
	render   func(models.MergedListingView) string
	updated  time.Time
	interval time.Duration
	done     bool
}

// Init is the initial command for bubbletea
func (m watchModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}
	case viewMsg:
		m.view = models.MergedListingView(msg)
		if !m.view.Loading {
			m.updated = time.Now()
		}
	}
	return m, nil
}

// View renders the UI
func (m watchModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.render(m.view))
	b.WriteString("\n")

	status := "waiting for first update"
	if !m.updated.IsZero() {
		status = fmt.Sprintf("updated %s, refreshing every %s", m.updated.Format("15:04:05"), m.interval)
	}
	b.WriteString(color.New(color.Faint).Sprint(status + "\n"))
	b.WriteString(color.New(color.FgYellow).Sprint("q: quit\n"))

	return b.String()
}

// forwardViews decouples synchronizer observers from a slow consumer. Only
// the latest pending view is kept.
func forwardViews(ctx context.Context, send func(models.MergedListingView)) func(models.MergedListingView) {
	latest := make(chan models.MergedListingView, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case v := <-latest:
				send(v)
			}
		}
	}()

	return func(v models.MergedListingView) {
		for {
			select {
			case latest <- v:
				return
			default:
				select {
				case <-latest:
				default:
				}
			}
		}
	}
}

func newListingWatchCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch <listing-id>",
		Short: "Follow a listing live",
		Long: `Keep a listing view up to date. The view is refreshed on every interval
and whenever the wallet session changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			connectSession(cmd, a)
			stopProgress(a)

			params := usecase.WatchListingParams{ListingID: args[0], Interval: interval}
			if a.Config.NonInteractive || a.Config.Output != "text" {
				return watchPlain(cmd, a, params)
			}
			return watchLive(cmd, a, params)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", usecase.DefaultWatchInterval, "Refresh interval")
	return cmd
}

// watchLive renders the view in a bubbletea program until the user quits
func watchLive(cmd *cobra.Command, a *app.App, params usecase.WatchListingParams) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	renderer := render.NewListingRenderer(nil, a.Config.Network)
	model := watchModel{
		view:     models.MergedListingView{Key: models.ListingKey{ListingID: params.ListingID}, Loading: true},
		interval: params.Interval,
		render: func(v models.MergedListingView) string {
			var b strings.Builder
			_ = renderer.WithOutput(&b).RenderView(v)
			return b.String()
		},
	}
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.WatchListing.Run(ctx, params, forwardViews(ctx, func(v models.MergedListingView) {
			p.Send(viewMsg(v))
		}))
	}()

	_, runErr := p.Run()
	cancel()
	if err := <-errCh; err != nil {
		return err
	}
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("live view failed: %w", runErr)
	}
	return nil
}

// watchPlain prints every settled view until ctx is done
func watchPlain(cmd *cobra.Command, a *app.App, params usecase.WatchListingParams) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	renderer := render.NewListingRenderer(out, a.Config.Network)

	return a.WatchListing.Run(ctx, params, forwardViews(ctx, func(v models.MergedListingView) {
		if v.Loading {
			return
		}
		if handled, err := render.Structured(out, a.Config.Output, v); handled {
			if err != nil {
				a.Log.Warn("failed to write view", "error", err)
			}
			return
		}
		_ = renderer.RenderView(v)
		fmt.Fprintln(out)
	}))
}
