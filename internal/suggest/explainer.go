package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/slotwise/scheduler/internal/llm"
	"github.com/slotwise/scheduler/internal/scheduler"
	"github.com/slotwise/scheduler/pkg/logging"
)

// fallbackExplanation is used for any slot the model could not explain.
const fallbackExplanation = "This slot fits the requested availability."

const explainerSystemPrompt = `You write one short, friendly sentence per appointment slot explaining why it works.
Respond with a single JSON object: {"explanations": ["...", ...]} with exactly one string per slot, in order. No other text.`

// Explainer asks an LLM for a one-sentence explanation per suggested slot.
// It is strictly best-effort: any failure or timeout yields fallback text
// and never disturbs the computed slot list.
type Explainer struct {
	client  llm.Client
	logger  *logging.Logger
	tracer  trace.Tracer
	timeout time.Duration
}

func NewExplainer(client llm.Client, timeout time.Duration, logger *logging.Logger) *Explainer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Explainer{
		client:  client,
		logger:  logger,
		tracer:  otel.Tracer("scheduler.internal.suggest"),
		timeout: timeout,
	}
}

// ExplainSlots returns one explanation per slot. The result always has
// len(slots) entries.
func (e *Explainer) ExplainSlots(ctx context.Context, slots []scheduler.Slot, avail *Availability) []string {
	out := make([]string, len(slots))
	for i := range out {
		out[i] = fallbackExplanation
	}
	if len(slots) == 0 || e.client == nil {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx, span := e.tracer.Start(ctx, "suggest.explain_slots")
	defer span.End()

	var prompt strings.Builder
	prompt.WriteString("The patient asked for these constraints:\n")
	if avail != nil {
		if enc, err := json.Marshal(avail); err == nil {
			prompt.Write(enc)
		}
	}
	prompt.WriteString("\n\nSuggested slots:\n")
	for i, slot := range slots {
		fmt.Fprintf(&prompt, "%d. %s to %s (provider %s)\n",
			i+1, slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339), slot.ProviderID)
	}

	resp, err := e.client.Complete(ctx, llm.Request{
		System:      []string{explainerSystemPrompt},
		Messages:    []llm.ChatMessage{{Role: llm.ChatRoleUser, Content: prompt.String()}},
		Temperature: 0.1,
	})
	if err != nil {
		span.RecordError(err)
		e.logger.Warn("slot explanation failed, using fallback text", "error", err)
		return out
	}

	var decoded struct {
		Explanations []string `json:"explanations"`
	}
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &decoded); err != nil {
		e.logger.Warn("slot explanation response malformed, using fallback text", "error", err)
		return out
	}

	for i := range out {
		if i < len(decoded.Explanations) && strings.TrimSpace(decoded.Explanations[i]) != "" {
			out[i] = strings.TrimSpace(decoded.Explanations[i])
		}
	}
	return out
}
