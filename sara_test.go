package sara_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/pkg/adapters/memory"
	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, time.October, 8, 9, 0, 0, 0, time.UTC)
}

func newEngine(t *testing.T, opts ...sara.Option) *sara.Engine {
	t.Helper()
	opts = append([]sara.Option{sara.WithClock(fixedClock)}, opts...)
	engine, err := sara.New(booking.Flow(), opts...)
	require.NoError(t, err)
	return engine
}

func TestNewRequiresGraph(t *testing.T) {
	_, err := sara.New(nil)
	assert.Error(t, err)
}

func TestBeginTurnRunsToFirstQuestion(t *testing.T) {
	engine := newEngine(t)
	gw := memory.NewGateway("9 heures", "10 heures", "14 heures")

	st, texts, done, err := engine.BeginTurn(context.Background(), "call-1", gw, sara.TurnPolicy{})
	require.NoError(t, err)

	assert.False(t, done)
	assert.Equal(t, "call-1", st.SessionID)
	assert.Equal(t, "node_proposer_creneaux", st.Current)

	joined := strings.Join(texts, " ")
	assert.Contains(t, joined, "Bonjour ! Je suis Sara")
	assert.Contains(t, joined, "9 heures, 10 heures ou 14 heures")

	// The availability lookup was made with today's date.
	invs := gw.Invocations()
	require.Len(t, invs, 1)
	assert.Equal(t, booking.ToolCheckAvailability, invs[0].Name)
	assert.Equal(t, "2025-10-08", invs[0].Input["date"])
}

func TestTurnDrivesWholeCall(t *testing.T) {
	engine := newEngine(t)
	gw := memory.NewGateway("14 heures")
	ctx := context.Background()

	st, _, _, err := engine.BeginTurn(ctx, "call-1", gw, sara.TurnPolicy{})
	require.NoError(t, err)

	answers := []string{"14 heures", "Marie", "Dupont", "0612345678", "marie.dupont@example.com"}
	var done bool
	var texts []string
	for _, answer := range answers {
		texts, done, err = engine.Turn(ctx, st, answer, gw, sara.TurnPolicy{})
		require.NoError(t, err)
	}

	assert.True(t, done)
	assert.Contains(t, strings.Join(texts, " "), "confirmé pour le 14 heures")

	invs := gw.Invocations()
	require.Len(t, invs, 2)
	assert.Equal(t, booking.ToolCreateAppointment, invs[1].Name)
	assert.Equal(t, "Marie", invs[1].Input["firstName"])
}

func TestTurnToolRetryBudget(t *testing.T) {
	engine := newEngine(t)
	gw := memory.NewGateway("14 heures")
	gw.FailCheck = 2

	_, texts, done, err := engine.BeginTurn(context.Background(), "call-1", gw, sara.TurnPolicy{MaxToolRetries: 2})

	var failure *domain.ToolFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, booking.ToolCheckAvailability, failure.Tool)
	assert.False(t, done)
	// Every failed attempt was narrated to the caller first.
	assert.Contains(t, strings.Join(texts, " "), "je n'arrive pas à accéder au calendrier")
	assert.Len(t, gw.Invocations(), 2)
}

func TestTurnWithoutGatewayFails(t *testing.T) {
	engine := newEngine(t)

	_, _, _, err := engine.BeginTurn(context.Background(), "call-1", nil, sara.TurnPolicy{})
	assert.ErrorContains(t, err, "tool gateway")
}
