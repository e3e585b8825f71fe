package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/scheduler/internal/llm"
	"github.com/slotwise/scheduler/internal/scheduler"
)

func testSlots(t *testing.T, n int) []scheduler.Slot {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	slots := make([]scheduler.Slot, n)
	for i := range slots {
		start := time.Date(2025, time.February, 3, 9+i, 0, 0, 0, loc)
		slots[i] = scheduler.Slot{ProviderID: "dr-1", Start: start, End: start.Add(30 * time.Minute)}
	}
	return slots
}

func TestExplainSlotsSuccess(t *testing.T) {
	client := &fakeLLM{responses: []llm.Response{
		{Text: `{"explanations": ["Early Monday works well.", "Mid-morning option."]}`},
	}}
	explainer := NewExplainer(client, time.Second, nil)

	got := explainer.ExplainSlots(context.Background(), testSlots(t, 2), validAvailability())
	require.Len(t, got, 2)
	assert.Equal(t, "Early Monday works well.", got[0])
	assert.Equal(t, "Mid-morning option.", got[1])
}

func TestExplainSlotsFallsBackOnError(t *testing.T) {
	client := &fakeLLM{errs: []error{errors.New("model unavailable")}}
	explainer := NewExplainer(client, time.Second, nil)

	got := explainer.ExplainSlots(context.Background(), testSlots(t, 3), nil)
	require.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, fallbackExplanation, e)
	}
}

func TestExplainSlotsFallsBackOnMalformedResponse(t *testing.T) {
	client := &fakeLLM{responses: []llm.Response{{Text: "no json here"}}}
	explainer := NewExplainer(client, time.Second, nil)

	got := explainer.ExplainSlots(context.Background(), testSlots(t, 1), nil)
	require.Len(t, got, 1)
	assert.Equal(t, fallbackExplanation, got[0])
}

func TestExplainSlotsPadsShortAnswers(t *testing.T) {
	client := &fakeLLM{responses: []llm.Response{
		{Text: `{"explanations": ["only one"]}`},
	}}
	explainer := NewExplainer(client, time.Second, nil)

	got := explainer.ExplainSlots(context.Background(), testSlots(t, 2), nil)
	require.Len(t, got, 2)
	assert.Equal(t, "only one", got[0])
	assert.Equal(t, fallbackExplanation, got[1])
}

func TestExplainSlotsEmptyInput(t *testing.T) {
	explainer := NewExplainer(&fakeLLM{}, time.Second, nil)
	assert.Empty(t, explainer.ExplainSlots(context.Background(), nil, nil))
}
