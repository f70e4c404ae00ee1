// Package observability turns orchestrator lifecycle events into prometheus
// metrics and structured logs. Hook sets compose, so a host can register
// metrics, logging and its own callbacks at once.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// Metrics holds the prometheus collectors for one engine.
type Metrics struct {
	nodeVisits    *prometheus.CounterVec
	promptRetries *prometheus.CounterVec
	slotsFilled   *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	toolDuration  *prometheus.HistogramVec
	callsEnded    prometheus.Counter

	mu      sync.Mutex
	started map[string]time.Time // session+node -> tool call start
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodeVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sara_node_visits_total",
			Help: "Number of times each conversation node was entered.",
		}, []string{"node", "kind"}),
		promptRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sara_prompt_retries_total",
			Help: "Validation failures per prompt node.",
		}, []string{"node", "slot"}),
		slotsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sara_slots_filled_total",
			Help: "Accepted answers per slot.",
		}, []string{"slot"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sara_tool_calls_total",
			Help: "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sara_tool_duration_seconds",
			Help:    "Wall time of tool invocations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		callsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sara_calls_ended_total",
			Help: "Calls that reached the end node.",
		}),
		started: make(map[string]time.Time),
	}
	reg.MustRegister(
		m.nodeVisits,
		m.promptRetries,
		m.slotsFilled,
		m.toolCalls,
		m.toolDuration,
		m.callsEnded,
	)
	return m
}

// Hooks returns lifecycle hooks feeding these collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(e.NodeID, e.NodeKind).Inc()
		},
		OnPromptRetry: func(_ context.Context, e *domain.PromptEvent) {
			m.promptRetries.WithLabelValues(e.NodeID, e.Slot).Inc()
		},
		OnSlotFilled: func(_ context.Context, e *domain.PromptEvent) {
			m.slotsFilled.WithLabelValues(e.Slot).Inc()
		},
		OnToolCall: func(_ context.Context, e *domain.ToolEvent) {
			m.mu.Lock()
			m.started[e.SessionID+"/"+e.NodeID] = e.Timestamp
			m.mu.Unlock()
		},
		OnToolReturn: func(_ context.Context, e *domain.ToolEvent) {
			outcome := "success"
			if e.IsError {
				outcome = "failure"
			}
			m.toolCalls.WithLabelValues(e.ToolName, outcome).Inc()

			key := e.SessionID + "/" + e.NodeID
			m.mu.Lock()
			start, ok := m.started[key]
			delete(m.started, key)
			m.mu.Unlock()
			if ok {
				m.toolDuration.WithLabelValues(e.ToolName).Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
		OnCallEnd: func(_ context.Context, e *domain.NodeEvent) {
			m.callsEnded.Inc()
		},
	}
}
