package progress

import (
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/usecase"
)

// NewSink picks the spinner for interactive text output and a silent sink
// otherwise, so json and yaml output stay parseable.
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || (cfg.Output != "" && cfg.Output != "text") {
		return usecase.NopProgress{}
	}
	return NewSpinnerSink()
}
