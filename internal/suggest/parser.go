package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/slotwise/scheduler/internal/llm"
	"github.com/slotwise/scheduler/pkg/logging"
)

const parserSystemPrompt = `You convert free-text appointment availability descriptions into strict JSON.
Respond with a single JSON object and nothing else. The object must have exactly these fields:
- provider_id: string
- timezone: string (IANA, e.g. America/New_York)
- slot_length_minutes: integer (omit if not mentioned; default is 30)
- buffer_minutes: integer (omit if not mentioned; default is 10)
- business_hours: object mapping lowercase weekday names to arrays of {"start": "HH:MM", "end": "HH:MM"}
- date_range: {"start": "YYYY-MM-DD", "end": "YYYY-MM-DD"}
- existing_appointments: array of {"start": RFC3339, "end": RFC3339} (empty array if none)
- preferred_days: array of lowercase weekday names (empty array if none)
- preferred_times: array of {"start": "HH:MM", "end": "HH:MM"} (empty array if none)`

// Parser turns free-text availability into the structured wire schema via
// an LLM. One retry is made with the validation error fed back to the
// model; a second failure fails the request before the engine ever runs.
type Parser struct {
	client llm.Client
	logger *logging.Logger
	tracer trace.Tracer
}

func NewParser(client llm.Client, logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.Default()
	}
	return &Parser{
		client: client,
		logger: logger,
		tracer: otel.Tracer("scheduler.internal.suggest"),
	}
}

// ParseAvailability converts free text into an Availability value.
func (p *Parser) ParseAvailability(ctx context.Context, text string) (*Availability, error) {
	ctx, span := p.tracer.Start(ctx, "suggest.parse_availability")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return nil, errors.New("suggest: availability text is empty")
	}

	messages := []llm.ChatMessage{
		{Role: llm.ChatRoleUser, Content: text},
	}

	avail, err := p.parseOnce(ctx, messages)
	if err == nil {
		return avail, nil
	}
	p.logger.Warn("availability parse failed, retrying with feedback", "error", err)

	messages = append(messages,
		llm.ChatMessage{Role: llm.ChatRoleAssistant, Content: "(previous attempt)"},
		llm.ChatMessage{Role: llm.ChatRoleUser, Content: fmt.Sprintf(
			"Your previous output was invalid: %v. Respond again with only the corrected JSON object.", err)},
	)
	avail, err = p.parseOnce(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("suggest: parse availability text: %w", err)
	}
	return avail, nil
}

func (p *Parser) parseOnce(ctx context.Context, messages []llm.ChatMessage) (*Availability, error) {
	resp, err := p.client.Complete(ctx, llm.Request{
		System:      []string{parserSystemPrompt},
		Messages:    messages,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	var avail Availability
	raw := llm.ExtractJSON(resp.Text)
	if err := json.Unmarshal([]byte(raw), &avail); err != nil {
		return nil, fmt.Errorf("decode availability JSON: %w", err)
	}
	if strings.TrimSpace(avail.Timezone) == "" {
		return nil, errors.New("missing timezone")
	}
	if avail.DateRange.Start == "" || avail.DateRange.End == "" {
		return nil, errors.New("missing date_range")
	}
	// Everything else is checked by ToRequest and the engine.
	if _, err := avail.ToRequest(); err != nil {
		return nil, err
	}
	return &avail, nil
}
