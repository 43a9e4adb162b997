package tasks

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/services"
	"github.com/desertthunder/moodlists/internal/shared"
)

// Engine runs discovery and genre resolution against a [services.Catalog].
type Engine struct {
	catalog services.Catalog
	logger  *log.Logger
	backoff BackoffPolicy
}

// NewEngine creates an Engine. A zero backoff policy is replaced by [DefaultBackoffPolicy].
func NewEngine(catalog services.Catalog, logger *log.Logger, backoff BackoffPolicy) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		catalog: catalog,
		logger:  logger,
		backoff: backoff.withDefaults(),
	}
}

func (e *Engine) ready() error {
	if e.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
