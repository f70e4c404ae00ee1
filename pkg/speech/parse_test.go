package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spoken words", "zéro six un deux trois quatre cinq six sept huit", "0612345678"},
		{"unaccented", "zero six", "06"},
		{"mixed words and digits", "zéro six 12-34", "061234"},
		{"literal with separators", "06 12 34 56 78", "0612345678"},
		{"dotted", "06.12.34.56.78", "0612345678"},
		{"trailing punctuation", "zéro, six.", "06"},
		{"filler words dropped", "alors zéro six voilà", "06"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, French.ParseDigits(tt.in))
		})
	}
}

func TestParseSpelled(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"spelled out",
			"m a r i e point d u p o n t arobase e x a m p l e point c o m",
			"marie.dupont@example.com",
		},
		{
			"fragments",
			"marie point dupont arobase example point com",
			"marie.dupont@example.com",
		},
		{"literal address passes through", "Marie.Dupont@Example.com", "marie.dupont@example.com"},
		{"dash", "jo tiret d arobase a point fr", "jo-d@a.fr"},
		{"underscore", "jo tiret bas d arobase a point fr", "jo_d@a.fr"},
		{"digits", "j o un arobase a point fr", "jo1@a.fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, French.ParseSpelled(tt.in))
		})
	}
}
