package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
)

func availabilityInvocation() domain.ToolInvocation {
	return domain.ToolInvocation{
		NodeID: "node_check_availability",
		Name:   booking.ToolCheckAvailability,
		Input:  map[string]string{"date": "2025-10-08"},
	}
}

func TestGatewayInvokeAvailability(t *testing.T) {
	var captured wireRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-123", r.Header.Get(SecretHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		fmt.Fprintf(w, `{"results":[{"toolCallId":%q,"result":{"available":true,"slots":["9 heures","14 heures"]}}]}`,
			captured.Message.ToolCalls[0].ID)
	}))
	defer backend.Close()

	gw := NewGateway(backend.URL, WithSecret("secret-123"))
	res := gw.Invoke(context.Background(), availabilityInvocation())

	assert.Equal(t, domain.ToolSucceeded, res.Status)
	assert.Equal(t, []string{"9 heures", "14 heures"}, res.Labels)

	require.Len(t, captured.Message.ToolCalls, 1)
	call := captured.Message.ToolCalls[0]
	assert.Equal(t, booking.ToolCheckAvailability, call.Function.Name)
	assert.Equal(t, "2025-10-08", call.Function.Arguments["date"])
}

func TestGatewayInvokeCreateAppointment(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// Result payloads may arrive doubly encoded as a JSON string.
		fmt.Fprintf(w, `{"results":[{"toolCallId":%q,"result":"{\"success\":true,\"appointmentId\":\"apt_0042\"}"}]}`,
			req.Message.ToolCalls[0].ID)
	}))
	defer backend.Close()

	gw := NewGateway(backend.URL)
	res := gw.Invoke(context.Background(), domain.ToolInvocation{
		Name: booking.ToolCreateAppointment,
		Input: map[string]string{
			"firstName": "Marie",
			"datetime":  "14 heures",
		},
	})

	assert.Equal(t, domain.ToolSucceeded, res.Status)
	assert.Equal(t, "apt_0042", res.Detail)
}

func TestGatewayNoAvailability(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		fmt.Fprintf(w, `{"results":[{"toolCallId":%q,"result":{"available":false}}]}`,
			req.Message.ToolCalls[0].ID)
	}))
	defer backend.Close()

	gw := NewGateway(backend.URL)
	res := gw.Invoke(context.Background(), availabilityInvocation())

	assert.Equal(t, domain.ToolFailed, res.Status)
	assert.Equal(t, "aucune disponibilité", res.Reason)
}

func TestGatewayBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	gw := NewGateway(backend.URL)
	res := gw.Invoke(context.Background(), availabilityInvocation())

	assert.Equal(t, domain.ToolFailed, res.Status)
	assert.Contains(t, res.Reason, "500")
}

func TestGatewayTimeout(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client hanging up and
		// cancels the request context; otherwise Close blocks forever.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer backend.Close()

	gw := NewGateway(backend.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	res := gw.Invoke(ctx, availabilityInvocation())

	assert.Equal(t, domain.ToolFailed, res.Status)
	assert.Equal(t, "backend timeout", res.Reason)
}
