package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter   EventType = "node_enter"
	EventPromptRetry EventType = "prompt_retry"
	EventSlotFilled  EventType = "slot_filled"
	EventToolCall    EventType = "tool_call"
	EventToolReturn  EventType = "tool_return"
	EventCallEnd     EventType = "call_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// NodeEvent represents entry into a node or call termination.
type NodeEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	NodeKind string `json:"node_kind"`
}

// PromptEvent represents a slot collection attempt at a prompt node.
type PromptEvent struct {
	EventBase
	NodeID  string `json:"node_id"`
	Slot    string `json:"slot"`
	Attempt int    `json:"attempt"`
	Reason  string `json:"reason,omitempty"` // validation failure, on retries
}

// ToolEvent represents a tool invocation or its outcome.
type ToolEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	ToolName string `json:"tool_name"`
	IsError  bool   `json:"is_error,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for orchestrator observability.
// Any field may be nil; hooks must not mutate the state they observe.
type LifecycleHooks struct {
	OnNodeEnter   func(context.Context, *NodeEvent)
	OnPromptRetry func(context.Context, *PromptEvent)
	OnSlotFilled  func(context.Context, *PromptEvent)
	OnToolCall    func(context.Context, *ToolEvent)
	OnToolReturn  func(context.Context, *ToolEvent)
	OnCallEnd     func(context.Context, *NodeEvent)
}
