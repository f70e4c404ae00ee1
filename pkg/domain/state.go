package domain

// CallStatus defines the current mode of the call mechanics.
type CallStatus string

const (
	StatusActive         CallStatus = "active"           // Normal operation
	StatusWaitingForTool CallStatus = "waiting_for_tool" // Suspended, waiting for the host to return a tool result
	StatusDone           CallStatus = "done"             // End node reached
)

// Turn records one exchange for observability and testing. It never drives
// control flow.
type Turn struct {
	NodeID string `json:"node_id"`
	// Said is the rendered text spoken to the caller at this turn.
	Said string `json:"said,omitempty"`
	// Heard is the raw caller utterance, or the tool outcome summary.
	Heard string `json:"heard,omitempty"`
}

// State is the mutable snapshot of one call. It is created when the call
// starts, mutated exclusively by the orchestrator, and discarded when the end
// node is reached or the caller hangs up. It is never shared across calls.
type State struct {
	SessionID string `json:"session_id"`

	// Current is the identifier of the active node.
	Current string `json:"current_node"`

	Status CallStatus `json:"status"`

	// Asked reports whether the current prompt node's question has already
	// been spoken and the call is waiting for the answer.
	Asked bool `json:"asked,omitempty"`

	// Slots holds the values collected from the caller so far, plus derived
	// spoken forms (e.g. "telephone_epele") and seeded values like "today".
	Slots map[string]string `json:"slots"`

	// Offered is the ordered list of time slot labels most recently narrated
	// by the availability tool. The chosen-time validator checks against it.
	Offered []string `json:"offered,omitempty"`

	// Retries counts consecutive invalid answers at the current prompt node.
	// It resets to zero when the node is left. Capping it is the host's call.
	Retries int `json:"retries,omitempty"`

	// ToolRetries counts consecutive failures at the current tool node.
	ToolRetries int `json:"tool_retries,omitempty"`

	History []Turn `json:"history,omitempty"`
}

// NewState creates a clean call state positioned at the given start node.
func NewState(sessionID, startNodeID string) *State {
	return &State{
		SessionID: sessionID,
		Current:   startNodeID,
		Status:    StatusActive,
		Slots:     make(map[string]string),
	}
}

// Done reports whether the call has terminated.
func (s *State) Done() bool { return s.Status == StatusDone }
