package speech

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// SpeakPhone renders a digit string for speech, one spoken word per digit:
// "0612345678" becomes "zéro, six, un, deux, trois, quatre, cinq, six, sept,
// huit". Non-digit characters are skipped.
func (l *Locale) SpeakPhone(digits string) string {
	words := make([]string, 0, len(digits))
	for _, r := range digits {
		if r >= '0' && r <= '9' {
			words = append(words, l.Digits[r-'0'])
		}
	}
	return strings.Join(words, ", ")
}

// SpeakEmail spells an address character by character, replacing "@" with the
// locale's word for "at" and "." with the word for "dot". Synthesizers
// mispronounce raw symbols, so the address is never spoken literally.
func (l *Locale) SpeakEmail(address string) string {
	words := make([]string, 0, len(address))
	for _, r := range address {
		switch {
		case r == '@':
			words = append(words, l.At)
		case r == '.':
			words = append(words, l.Dot)
		case r == '-':
			words = append(words, l.Dash)
		case r == '_':
			words = append(words, l.Underscore)
		case r >= '0' && r <= '9':
			words = append(words, l.Digits[r-'0'])
		case unicode.IsSpace(r):
			// skip
		default:
			words = append(words, string(unicode.ToLower(r)))
		}
	}
	return strings.Join(words, ", ")
}

var hourRe = regexp.MustCompile(`(\d{1,2})\s*(?:h(?:eures?)?|:)\s*(\d{2})?`)

// SpeakHour rewrites compact hour notations into their full spoken form:
// "14h" and "14:00" become "14 heures", "9h30" becomes "9 heures 30".
// Labels already in spoken form pass through unchanged.
func (l *Locale) SpeakHour(label string) string {
	out := hourRe.ReplaceAllStringFunc(label, func(m string) string {
		parts := hourRe.FindStringSubmatch(m)
		if parts[2] == "" || parts[2] == "00" {
			return parts[1] + " " + l.HourWord
		}
		return parts[1] + " " + l.HourWord + " " + parts[2]
	})
	return strings.Join(strings.Fields(out), " ")
}

// SpeakHours renders an offered slot list as one spoken enumeration:
// ["9 heures","10 heures","14 heures"] -> "9 heures, 10 heures ou 14 heures".
func (l *Locale) SpeakHours(labels []string) string {
	spoken := make([]string, 0, len(labels))
	for _, lb := range labels {
		spoken = append(spoken, l.SpeakHour(lb))
	}
	switch len(spoken) {
	case 0:
		return ""
	case 1:
		return spoken[0]
	default:
		return strings.Join(spoken[:len(spoken)-1], ", ") + " " + l.Or + " " + spoken[len(spoken)-1]
	}
}

// SpeakDate renders a calendar date the way it is said, never the ISO form:
// 2025-10-08 becomes "le 8 octobre 2025".
func (l *Locale) SpeakDate(t time.Time) string {
	return l.DayPrefix + " " + strconv.Itoa(t.Day()) + " " + l.Months[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// NormalizeHour folds a caller's phrasing of an hour onto a canonical form so
// choices can be compared case-insensitively: "14H", "14 h", "quatorze
// heures" is out of scope, but "14h", "14:00" and "14 Heures" all normalize
// to "14 heures".
func (l *Locale) NormalizeHour(s string) string {
	return l.SpeakHour(strings.ToLower(strings.TrimSpace(s)))
}
