// Package http adapts the conversation to HTTP on both sides: an outbound
// webhook Gateway that performs tool calls against the booking backend, and
// an inbound Server exposing calls as a small REST API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
)

// SecretHeader carries the shared webhook secret on outbound tool calls.
const SecretHeader = "X-Webhook-Secret"

// Gateway invokes tools by POSTing a webhook envelope to the booking backend.
// The wire format matches what voice platforms deliver: a message holding a
// list of tool calls, answered by a list of results keyed by call ID.
type Gateway struct {
	url    string
	secret string
	client *http.Client
}

// GatewayOption configures the Gateway.
type GatewayOption func(*Gateway)

// WithSecret sets the shared secret sent on every request.
func WithSecret(secret string) GatewayOption {
	return func(g *Gateway) { g.secret = secret }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = client }
}

// NewGateway creates a webhook gateway targeting the given backend URL.
// Timeouts are governed per call through the context, not the client.
func NewGateway(url string, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		url:    url,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type wireRequest struct {
	Message wireMessage `json:"message"`
}

type wireMessage struct {
	Type      string         `json:"type"`
	ToolCalls []wireToolCall `json:"toolCalls"`
}

type wireToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments"`
}

type wireResponse struct {
	Results []wireResult `json:"results"`
}

type wireResult struct {
	ToolCallID string          `json:"toolCallId"`
	Result     json.RawMessage `json:"result"`
}

// wirePayload is the union of the two tool result shapes.
type wirePayload struct {
	Available     *bool    `json:"available,omitempty"`
	Slots         []string `json:"slots,omitempty"`
	Success       *bool    `json:"success,omitempty"`
	AppointmentID string   `json:"appointmentId,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Invoke performs one tool call over HTTP. Transport errors, non-2xx status
// codes and context expiry all come back as failed results; retry is the
// orchestrator's decision alone.
func (g *Gateway) Invoke(ctx context.Context, inv domain.ToolInvocation) domain.ToolResult {
	callID := uuid.NewString()
	body, err := json.Marshal(wireRequest{
		Message: wireMessage{
			Type: "tool-calls",
			ToolCalls: []wireToolCall{{
				ID:   callID,
				Type: "function",
				Function: wireFunction{
					Name:      inv.Name,
					Arguments: inv.Input,
				},
			}},
		},
	})
	if err != nil {
		return domain.Failed(fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return domain.Failed(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if g.secret != "" {
		req.Header.Set(SecretHeader, g.secret)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.Failed("backend timeout")
		}
		return domain.Failed(fmt.Sprintf("backend unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Failed(fmt.Sprintf("backend returned %s", resp.Status))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Failed(fmt.Sprintf("failed to read response: %v", err))
	}

	payload, err := decodeResult(raw, callID)
	if err != nil {
		return domain.Failed(err.Error())
	}
	return g.toToolResult(inv.Name, payload)
}

// decodeResult digs the payload for our call out of the results envelope.
// Backends answer with the payload either inline as an object or doubly
// encoded as a JSON string; both are accepted.
func decodeResult(raw []byte, callID string) (wirePayload, error) {
	var envelope wireResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return wirePayload{}, fmt.Errorf("failed to decode response: %v", err)
	}

	var body json.RawMessage
	for _, r := range envelope.Results {
		if r.ToolCallID == callID || len(envelope.Results) == 1 {
			body = r.Result
			break
		}
	}
	if body == nil {
		return wirePayload{}, fmt.Errorf("no result for call %s", callID)
	}

	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return wirePayload{}, fmt.Errorf("failed to decode result string: %v", err)
		}
		body = json.RawMessage(inner)
	}

	var payload wirePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return wirePayload{}, fmt.Errorf("failed to decode result payload: %v", err)
	}
	return payload, nil
}

func (g *Gateway) toToolResult(tool string, p wirePayload) domain.ToolResult {
	switch tool {
	case booking.ToolCheckAvailability:
		if p.Available != nil && !*p.Available {
			return domain.Failed(orReason(p.Error, "aucune disponibilité"))
		}
		if p.Error != "" {
			return domain.Failed(p.Error)
		}
		if len(p.Slots) == 0 {
			return domain.Failed("aucune disponibilité")
		}
		return domain.Succeeded("disponibilités trouvées", p.Slots...)
	case booking.ToolCreateAppointment:
		if p.Success != nil && !*p.Success {
			return domain.Failed(orReason(p.Error, "création refusée"))
		}
		if p.Error != "" {
			return domain.Failed(p.Error)
		}
		return domain.Succeeded(strings.TrimSpace(p.AppointmentID))
	default:
		if p.Error != "" {
			return domain.Failed(p.Error)
		}
		return domain.Succeeded("", p.Slots...)
	}
}

func orReason(reason, fallback string) string {
	if reason != "" {
		return reason
	}
	return fallback
}
