package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/pkg/adapters/memory"
	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Gateway) {
	t.Helper()

	engine, err := sara.New(booking.Flow())
	require.NoError(t, err)

	gw := memory.NewGateway("9 heures", "14 heures")
	srv := NewServer(engine, gw, session.NewManager(memory.NewStore()))

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, gw
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeTurn(t *testing.T, resp *http.Response) turnResponse {
	t.Helper()
	defer resp.Body.Close()
	var tr turnResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	return tr
}

func TestServerFullCall(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/calls", startCallRequest{SessionID: "call-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	turn := decodeTurn(t, resp)

	assert.Equal(t, "call-1", turn.SessionID)
	assert.False(t, turn.Done)
	assert.Equal(t, "node_proposer_creneaux", turn.Current)
	joined := strings.Join(turn.Texts, " ")
	assert.Contains(t, joined, "Bonjour ! Je suis Sara")
	assert.Contains(t, joined, "9 heures ou 14 heures")

	say := func(utterance string) turnResponse {
		resp := postJSON(t, ts.URL+"/calls/call-1/utterance", utteranceRequest{Utterance: utterance})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeTurn(t, resp)
	}

	turn = say("14 heures")
	assert.Contains(t, turn.Texts[0], "votre prénom")

	say("Marie")
	say("Dupont")
	turn = say("06 12 34 56 78")
	assert.Contains(t, strings.Join(turn.Texts, " "), "je répète")

	turn = say("marie.dupont@example.com")
	assert.True(t, turn.Done)
	assert.Contains(t, strings.Join(turn.Texts, " "), "confirmé pour le 14 heures")

	// The finished call is still inspectable.
	getResp, err := http.Get(ts.URL + "/calls/call-1")
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var call callResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&call))
	assert.Equal(t, "done", call.Status)
	assert.Equal(t, "Marie", call.Slots["prenom"])
	assert.Equal(t, "0612345678", call.Slots["telephone"])
}

func TestServerUnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/calls/ghost/utterance", utteranceRequest{Utterance: "bonjour"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerRejectsDuplicateStart(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/calls", startCallRequest{SessionID: "call-1"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/calls", startCallRequest{SessionID: "call-1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServerUtteranceAfterHangup(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/calls", startCallRequest{SessionID: "call-1"})
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/calls/call-1", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp = postJSON(t, ts.URL+"/calls/call-1/utterance", utteranceRequest{Utterance: "14 heures"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerListCalls(t *testing.T) {
	ts, _ := newTestServer(t)

	for i := 0; i < 2; i++ {
		resp := postJSON(t, ts.URL+"/calls", startCallRequest{SessionID: fmt.Sprintf("call-%d", i)})
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/calls")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.ElementsMatch(t, []string{"call-0", "call-1"}, body["sessions"])
}

func TestServerMermaid(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/graph/mermaid")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "graph TD")
	assert.Contains(t, sb.String(), "node_check_availability")
}
