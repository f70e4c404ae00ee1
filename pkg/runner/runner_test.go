package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/pkg/adapters/memory"
	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
)

func newTestRunner(t *testing.T, script string, opts ...Option) (*Runner, *bytes.Buffer) {
	t.Helper()

	engine, err := sara.New(booking.Flow())
	require.NoError(t, err)

	var out bytes.Buffer
	opts = append([]Option{WithIO(strings.NewReader(script), &out)}, opts...)
	r := New(engine, memory.NewGateway("9 heures", "14 heures"), opts...)
	return r, &out
}

func TestRunnerFullCall(t *testing.T) {
	script := strings.Join([]string{
		"14 heures",
		"Marie",
		"Dupont",
		"06 12 34 56 78",
		"marie.dupont@example.com",
	}, "\n") + "\n"

	r, out := newTestRunner(t, script)
	st, err := r.Run(context.Background(), "call-1")
	require.NoError(t, err)

	assert.True(t, st.Done())
	assert.Equal(t, "Marie", st.Slots["prenom"])
	assert.Equal(t, "0612345678", st.Slots["telephone"])
	assert.Equal(t, "14 heures", st.Slots["creneau"])

	transcript := out.String()
	assert.Contains(t, transcript, "Bonjour ! Je suis Sara")
	assert.Contains(t, transcript, "9 heures ou 14 heures")
	assert.Contains(t, transcript, "je répète : zéro, six, un, deux, trois, quatre, cinq, six, sept, huit")
	assert.Contains(t, transcript, "confirmé pour le 14 heures")
}

func TestRunnerHangup(t *testing.T) {
	r, _ := newTestRunner(t, "14 heures\nexit\n")

	st, err := r.Run(context.Background(), "call-1")
	assert.ErrorIs(t, err, ErrHangup)
	assert.False(t, st.Done())
	assert.Equal(t, "14 heures", st.Slots["creneau"])
}

func TestRunnerPromptBudget(t *testing.T) {
	script := "minuit\nminuit\nminuit\n"
	r, out := newTestRunner(t, script, WithMaxPromptRetries(2))

	st, err := r.Run(context.Background(), "call-1")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, "node_proposer_creneaux", st.Current)
	// The caller heard the re-prompt before the runner gave up.
	assert.Contains(t, out.String(), "ce créneau n'est pas disponible")
}

func TestRunnerPersistsState(t *testing.T) {
	store := memory.NewStore()
	r, _ := newTestRunner(t, "exit\n", WithStore(store))

	_, err := r.Run(context.Background(), "call-1")
	require.ErrorIs(t, err, ErrHangup)

	saved, err := store.Load(context.Background(), "call-1")
	require.NoError(t, err)
	assert.Equal(t, "node_proposer_creneaux", saved.Current)
	assert.Equal(t, domain.StatusActive, saved.Status)
}

func TestRunnerRenderer(t *testing.T) {
	r, out := newTestRunner(t, "exit\n", WithRenderer(func(s string) (string, error) {
		return "** " + s + " **\n", nil
	}))

	_, err := r.Run(context.Background(), "call-1")
	require.ErrorIs(t, err, ErrHangup)
	assert.Contains(t, out.String(), "** Bonjour ! Je suis Sara")
}
