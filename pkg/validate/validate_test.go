package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccinelle-ai/sara/pkg/speech"
)

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, kind, verr.Kind)
}

func TestName(t *testing.T) {
	got, err := Name("  Marie ")
	require.NoError(t, err)
	assert.Equal(t, "Marie", got)

	_, err = Name("   ")
	assertKind(t, err, InvalidName)
}

func TestPhone(t *testing.T) {
	valid := []string{
		"0612345678",
		"06 12 34 56 78",
		"06.12.34.56.78",
		"06-12-34-56-78",
		"(06) 12/34 56 78",
	}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := Phone(in)
			require.NoError(t, err)
			assert.Equal(t, "0612345678", got)
		})
	}

	invalid := []string{
		"061234567",    // 9 digits
		"06123456789",  // 11 digits
		"zero six",     // words must be parsed upstream
		"06 12 34 5a 78",
		"",
	}
	for _, in := range invalid {
		t.Run("invalid/"+in, func(t *testing.T) {
			_, err := Phone(in)
			assertKind(t, err, InvalidPhone)
		})
	}
}

func TestEmail(t *testing.T) {
	got, err := Email(" Marie.Dupont@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "marie.dupont@example.com", got)

	for _, in := range []string{"marie", "marie@", "@example.com", "marie@example", "marie dupont@example.com"} {
		t.Run(in, func(t *testing.T) {
			_, err := Email(in)
			assertKind(t, err, InvalidEmail)
		})
	}
}

func TestOfferedSlot(t *testing.T) {
	offered := []string{"9 heures", "10 heures", "14 heures"}
	v := OfferedSlot(offered, speech.French.NormalizeHour)

	t.Run("exact label", func(t *testing.T) {
		got, err := v("14 heures")
		require.NoError(t, err)
		assert.Equal(t, "14 heures", got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, err := v("14 Heures")
		require.NoError(t, err)
		assert.Equal(t, "14 heures", got)
	})

	t.Run("compact notation maps to canonical label", func(t *testing.T) {
		got, err := v("14h")
		require.NoError(t, err)
		assert.Equal(t, "14 heures", got)
	})

	t.Run("iso datetime accepted verbatim", func(t *testing.T) {
		got, err := v("2025-10-08T14:00")
		require.NoError(t, err)
		assert.Equal(t, "2025-10-08T14:00", got)
	})

	t.Run("not offered", func(t *testing.T) {
		_, err := v("minuit")
		assertKind(t, err, SlotNotOffered)

		_, err = v("11 heures")
		assertKind(t, err, SlotNotOffered)
	})

	t.Run("nil normalize falls back to lowercase", func(t *testing.T) {
		v := OfferedSlot([]string{"Matin"}, nil)
		got, err := v("matin")
		require.NoError(t, err)
		assert.Equal(t, "Matin", got)
	})
}
