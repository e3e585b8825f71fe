package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/slotwise/scheduler/internal/observability/metrics"
	"github.com/slotwise/scheduler/internal/scheduler"
	"github.com/slotwise/scheduler/pkg/logging"
)

// AvailabilityParser converts free-text availability into the structured
// schema. Implemented by Parser; mocked in tests.
type AvailabilityParser interface {
	ParseAvailability(ctx context.Context, text string) (*Availability, error)
}

// SlotExplainer produces one explanation per slot, best-effort.
type SlotExplainer interface {
	ExplainSlots(ctx context.Context, slots []scheduler.Slot, avail *Availability) []string
}

// Handler handles HTTP requests for slot suggestions.
type Handler struct {
	engine    *scheduler.Engine
	parser    AvailabilityParser
	explainer SlotExplainer
	metrics   *metrics.Scheduler
	logger    *logging.Logger
}

// NewHandler creates a new suggestion handler. parser and explainer may be
// nil when no LLM backend is configured; structured requests still work.
func NewHandler(engine *scheduler.Engine, parser AvailabilityParser, explainer SlotExplainer, m *metrics.Scheduler, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("suggest: engine required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:    engine,
		parser:    parser,
		explainer: explainer,
		metrics:   m,
		logger:    logger,
	}
}

// Suggest handles POST /suggest requests.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		h.metrics.ObserveSuggest("bad_request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	avail := req.StructuredAvailability
	if avail == nil {
		if req.AvailabilityText == "" {
			h.metrics.ObserveSuggest("bad_request")
			http.Error(w, "either availability_text or structured_availability is required", http.StatusUnprocessableEntity)
			return
		}
		if h.parser == nil {
			h.metrics.ObserveSuggest("parser_unavailable")
			http.Error(w, "availability text parsing is not configured", http.StatusServiceUnavailable)
			return
		}
		parsed, err := h.parser.ParseAvailability(r.Context(), req.AvailabilityText)
		if err != nil {
			// A parse failure prevents the engine from running at all:
			// fail fast, no partial scheduling.
			h.logger.Error("availability parsing failed", "error", err)
			h.metrics.ObserveSuggest("parse_failed")
			http.Error(w, "failed to parse availability text", http.StatusBadGateway)
			return
		}
		avail = parsed
	}

	engineReq, err := avail.ToRequest()
	if err != nil {
		h.metrics.ObserveSuggest("invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slots, err := h.engine.Suggest(r.Context(), engineReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidTimeZone),
			errors.Is(err, scheduler.ErrInvalidInterval),
			errors.Is(err, scheduler.ErrInvalidDuration):
			h.metrics.ObserveSuggest("invalid")
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("slot computation failed", "error", err)
			h.metrics.ObserveSuggest("error")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	// Explanations are attached after the engine has produced its result;
	// a failure there degrades to fallback text and never drops slots.
	var explanations []string
	if h.explainer != nil && len(slots) > 0 {
		explanations = h.explainer.ExplainSlots(r.Context(), slots, avail)
	}

	resp := SuggestResponse{
		Slots:            make([]SuggestedSlot, 0, len(slots)),
		AvailabilityUsed: avail,
	}
	for i, slot := range slots {
		out := SuggestedSlot{
			ProviderID: slot.ProviderID,
			Start:      slot.Start.Format(time.RFC3339),
			End:        slot.End.Format(time.RFC3339),
		}
		if i < len(explanations) {
			out.Explanation = explanations[i]
		}
		resp.Slots = append(resp.Slots, out)
	}

	h.metrics.ObserveSuggest("ok")
	h.logger.Info("slots suggested",
		"provider_id", engineReq.ProviderID,
		"returned", len(resp.Slots),
		"from_text", req.StructuredAvailability == nil,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// HealthCheck handles GET /health requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
