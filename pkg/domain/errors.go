package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// GraphIntegrityError reports a malformed conversation graph at construction
// time. It is fatal: no call can start on a graph that failed validation.
type GraphIntegrityError struct {
	Reason string
}

func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("graph integrity: %s", e.Reason)
}

// ToolFailure reports that an external tool was unreachable or rejected its
// input. The orchestrator consumes it by narrating the failure and re-entering
// the same tool node; it only escapes the core when the host's retry budget is
// exhausted.
type ToolFailure struct {
	Tool   string
	Reason string
}

func (e *ToolFailure) Error() string {
	return fmt.Sprintf("tool %s failed: %s", e.Tool, e.Reason)
}
