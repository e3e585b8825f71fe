package scheduler

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/slotwise/scheduler/internal/observability/metrics"
	"github.com/slotwise/scheduler/pkg/logging"
)

var engineTracer = otel.Tracer("scheduler.internal.engine")

// maxSuggestions caps how many ranked slots one computation returns.
const maxSuggestions = 5

// Fallback values for a zero-value Defaults.
const (
	DefaultSlotLength = 30 * time.Minute
	DefaultBuffer     = 10 * time.Minute
)

// Defaults carries the configured fallback slot length and buffer applied
// to requests that omit them. They are passed in explicitly so concurrent
// requests with different overrides cannot interfere through ambient state.
type Defaults struct {
	SlotLength time.Duration
	Buffer     time.Duration
}

// Engine computes ranked candidate slots for a single provider. It is safe
// for concurrent use; every computation works purely on its own request.
type Engine struct {
	defaults Defaults
	logger   *logging.Logger
	metrics  *metrics.Scheduler
}

// New constructs an engine. A zero SlotLength in defaults falls back to
// DefaultSlotLength; a negative Buffer falls back to DefaultBuffer (zero is
// a valid configured buffer).
func New(defaults Defaults, logger *logging.Logger, m *metrics.Scheduler) *Engine {
	if defaults.SlotLength == 0 {
		defaults.SlotLength = DefaultSlotLength
	}
	if defaults.Buffer < 0 {
		defaults.Buffer = DefaultBuffer
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{defaults: defaults, logger: logger, metrics: m}
}

// Suggest validates the request and returns up to five ranked candidate
// slots. A valid request with nothing available yields an empty slice and a
// nil error; only validation failures return an error.
func (e *Engine) Suggest(ctx context.Context, req Request) ([]Slot, error) {
	_, span := engineTracer.Start(ctx, "scheduler.suggest")
	defer span.End()
	span.SetAttributes(attribute.String("scheduler.provider_id", req.ProviderID))

	started := time.Now()
	n, err := normalize(req, e.defaults)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	candidates := generateWindows(n)
	free := excludeConflicts(candidates, n.appointments, n.buffer)
	ranked := rank(free, n.prefs, n.loc)
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}

	span.SetAttributes(
		attribute.Int("scheduler.candidates", len(candidates)),
		attribute.Int("scheduler.returned", len(ranked)),
	)
	e.metrics.ObserveComputation(time.Since(started), len(ranked))
	e.logger.Debug("slots computed",
		"provider_id", req.ProviderID,
		"candidates", len(candidates),
		"conflict_free", len(free),
		"returned", len(ranked),
	)
	return ranked, nil
}
