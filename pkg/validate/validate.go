// Package validate holds the field validators applied to caller answers.
// Each validator is a pure function from a raw string to a normalized value
// or a *Error; none of them touches conversation state.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind identifies which rule a value failed.
type Kind string

const (
	InvalidPhone   Kind = "invalid_phone"
	InvalidEmail   Kind = "invalid_email"
	InvalidName    Kind = "invalid_name"
	SlotNotOffered Kind = "slot_not_offered"
)

// Error is a recoverable validation failure. The orchestrator answers it by
// re-asking the same question; it is never surfaced as a call failure.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Func validates a raw answer and returns its normalized form.
type Func func(raw string) (string, error)

// Name accepts any answer that is non-empty after trimming.
func Name(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &Error{Kind: InvalidName, Msg: "empty name"}
	}
	return trimmed, nil
}

var phoneStrip = regexp.MustCompile(`[\s.\-()/]`)

// Phone normalizes a phone answer to exactly 10 ASCII digits, stripping
// common separators. Dictated digit words must be resolved upstream (see
// speech.ParseDigits); anything not reducible to 10 digits is rejected.
func Phone(raw string) (string, error) {
	digits := phoneStrip.ReplaceAllString(strings.TrimSpace(raw), "")
	if len(digits) != 10 {
		return "", &Error{Kind: InvalidPhone, Msg: fmt.Sprintf("expected 10 digits, got %d", len(digits))}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", &Error{Kind: InvalidPhone, Msg: "non-digit character"}
		}
	}
	return digits, nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email accepts a conventional local-part "@" domain "." tld shape.
func Email(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if !emailRe.MatchString(addr) {
		return "", &Error{Kind: InvalidEmail, Msg: "malformed address"}
	}
	return addr, nil
}

// isoLayouts are the literal datetime shapes accepted as a slot choice in
// addition to the narrated labels.
var isoLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// OfferedSlot builds a validator for the chosen time slot. The answer must
// match one of the offered labels case-insensitively after normalization, or
// be a literal ISO-8601 datetime. A match returns the canonical offered
// label; an ISO datetime is returned as given.
func OfferedSlot(offered []string, normalize func(string) string) Func {
	if normalize == nil {
		normalize = strings.ToLower
	}
	return func(raw string) (string, error) {
		trimmed := strings.TrimSpace(raw)
		for _, layout := range isoLayouts {
			if _, err := time.Parse(layout, trimmed); err == nil {
				return trimmed, nil
			}
		}
		want := normalize(trimmed)
		for _, label := range offered {
			if normalize(label) == want {
				return label, nil
			}
		}
		return "", &Error{Kind: SlotNotOffered, Msg: fmt.Sprintf("%q is not among the offered slots", trimmed)}
	}
}
