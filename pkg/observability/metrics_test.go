package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

func TestMetricsHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()

	base := domain.EventBase{Timestamp: time.Now(), SessionID: "call-1"}

	hooks.OnNodeEnter(ctx, &domain.NodeEvent{EventBase: base, NodeID: "node_prenom", NodeKind: "prompt"})
	hooks.OnNodeEnter(ctx, &domain.NodeEvent{EventBase: base, NodeID: "node_prenom", NodeKind: "prompt"})
	hooks.OnPromptRetry(ctx, &domain.PromptEvent{EventBase: base, NodeID: "node_telephone", Slot: "telephone", Attempt: 1})
	hooks.OnSlotFilled(ctx, &domain.PromptEvent{EventBase: base, NodeID: "node_prenom", Slot: "prenom"})
	hooks.OnCallEnd(ctx, &domain.NodeEvent{EventBase: base, NodeID: "node_end"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.nodeVisits.WithLabelValues("node_prenom", "prompt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promptRetries.WithLabelValues("node_telephone", "telephone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotsFilled.WithLabelValues("prenom")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.callsEnded))
}

func TestMetricsToolDuration(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()

	start := time.Now()
	hooks.OnToolCall(ctx, &domain.ToolEvent{
		EventBase: domain.EventBase{Timestamp: start, SessionID: "call-1"},
		NodeID:    "node_check_availability",
		ToolName:  "checkAvailability",
	})
	hooks.OnToolReturn(ctx, &domain.ToolEvent{
		EventBase: domain.EventBase{Timestamp: start.Add(250 * time.Millisecond), SessionID: "call-1"},
		NodeID:    "node_check_availability",
		ToolName:  "checkAvailability",
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("checkAvailability", "success")))

	count, err := testutil.GatherAndCount(reg, "sara_tool_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Start timestamps are cleaned up once consumed.
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.started)
}

func TestCombine(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnNodeEnter: func(context.Context, *domain.NodeEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnNodeEnter: func(context.Context, *domain.NodeEvent) { calls = append(calls, "b") },
		OnCallEnd:   func(context.Context, *domain.NodeEvent) { calls = append(calls, "end") },
	}

	combined := Combine(a, b)
	combined.OnNodeEnter(context.Background(), &domain.NodeEvent{})
	combined.OnCallEnd(context.Background(), &domain.NodeEvent{})

	assert.Equal(t, []string{"a", "b", "end"}, calls)
	assert.Nil(t, combined.OnToolCall)
}
