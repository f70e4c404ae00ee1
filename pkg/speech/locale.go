package speech

import "strings"

// Locale bundles every locale-specific rule needed to turn values into text a
// speech synthesizer pronounces correctly, and to parse dictated caller
// utterances back into values. Validators and the orchestrator stay locale
// agnostic: this package is the single place encoding these corrections.
type Locale struct {
	Tag string

	// Digits are the spoken words for 0..9, in order.
	Digits [10]string

	// At and Dot are the spoken words for "@" and "." when spelling an
	// email address ("arobase" and "point" in French).
	At  string
	Dot string
	// Dash and Underscore cover the remaining characters callers dictate.
	Dash       string
	Underscore string

	// HourWord is appended to a bare hour ("14 heures", never "14h").
	HourWord string

	// Or joins the last two items of an enumeration ("9 heures, 10 heures
	// ou 14 heures").
	Or string

	// Months are the spoken month names, January first.
	Months [12]string

	// DayPrefix precedes a spoken date ("le 8 octobre 2025").
	DayPrefix string

	// wordToDigit is the reverse lookup for dictated digits, including
	// unaccented variants callers and transcribers produce.
	wordToDigit map[string]byte
}

// French is the locale Sara ships with.
var French = &Locale{
	Tag:        "fr-FR",
	Digits:     [10]string{"zéro", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"},
	At:         "arobase",
	Dot:        "point",
	Dash:       "tiret",
	Underscore: "tiret bas",
	HourWord:   "heures",
	Or:         "ou",
	Months: [12]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	DayPrefix: "le",
	wordToDigit: map[string]byte{
		"zéro": '0', "zero": '0',
		"un": '1', "une": '1',
		"deux": '2', "trois": '3', "quatre": '4', "cinq": '5',
		"six": '6', "sept": '7', "huit": '8', "neuf": '9',
	},
}

// normalizeToken lowercases a dictated token and strips surrounding
// punctuation left by transcription ("zéro," -> "zéro").
func normalizeToken(tok string) string {
	return strings.Trim(strings.ToLower(tok), ".,;:!?'\"()")
}
