package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/superhedge/listingctl/internal/usecase"
)

// stageOrder is the display order of listing stages
var stageOrder = []string{
	usecase.StageSyncing,
	usecase.StageValidating,
	usecase.StageSigning,
	usecase.StageConfirming,
	usecase.StageCompleted,
}

// SpinnerSink renders listing progress as a spinner with a stage trail
type SpinnerSink struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Message   string
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	return &SpinnerSink{spinner: s, out: out}
}

// OnProgress advances the stage trail and toggles the spinner
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stages); n == 0 || r.stages[n-1].Stage != event.Stage {
		r.completeCurrentStage()
		r.stages = append(r.stages, stageInfo{Stage: event.Stage, StartTime: time.Now()})
	}
	r.stages[len(r.stages)-1].Message = event.Message

	if event.Stage == usecase.StageCompleted {
		r.completeCurrentStage()
	}

	switch {
	case event.Spinner:
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	case r.spinner.Active():
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.interrupt(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.interrupt(color.New(color.FgRed), message)
}

// Stop halts the spinner if it is running
func (r *SpinnerSink) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *SpinnerSink) interrupt(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	_, _ = c.Fprintln(r.out, message)
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) completeCurrentStage() {
	if n := len(r.stages); n > 0 && r.stages[n-1].EndTime.IsZero() {
		r.stages[n-1].EndTime = time.Now()
	}
}

// display renders "✓ syncing (120ms) → ● signing (3s) updating listing 7"
func (r *SpinnerSink) display() string {
	var out string
	for i, stage := range r.stages {
		if !knownStage(stage.Stage) {
			continue
		}

		icon, stageColor := "●", color.New(color.FgYellow)
		duration := fmt.Sprintf(" (%s)", time.Since(stage.StartTime).Round(time.Second))
		if !stage.EndTime.IsZero() {
			icon, stageColor = "✓", color.New(color.FgGreen)
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if out != "" {
			out += " → "
		}
		out += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(stage.Stage), duration)

		if i == len(r.stages)-1 && stage.Message != "" {
			out += " " + stage.Message
		}
	}
	return out
}

func knownStage(stage string) bool {
	for _, s := range stageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
