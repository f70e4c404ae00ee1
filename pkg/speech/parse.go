package speech

import "strings"

// ParseDigits extracts a digit string from a dictated utterance. Spoken digit
// words ("zéro", "six") and literal digit runs are kept in order; separators
// and filler words are dropped. "zéro six 12-34" yields "061234".
func (l *Locale) ParseDigits(utterance string) string {
	var b strings.Builder
	for _, tok := range strings.FieldsFunc(utterance, isSeparator) {
		tok = normalizeToken(tok)
		if tok == "" {
			continue
		}
		if d, ok := l.wordToDigit[tok]; ok {
			b.WriteByte(d)
			continue
		}
		for _, r := range tok {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// ParseSpelled reassembles a spelled-out email utterance into an address
// candidate. Single letters and longer fragments are concatenated; the
// locale's words for "@", "." and "-" become the literal characters:
// "marie point dupont arobase example point com" -> "marie.dupont@example.com".
// Utterances that already look like an address pass through lowercased.
func (l *Locale) ParseSpelled(utterance string) string {
	trimmed := strings.TrimSpace(utterance)
	if !strings.ContainsAny(trimmed, " \t") {
		return strings.ToLower(trimmed)
	}

	var b strings.Builder
	tokens := strings.FieldsFunc(utterance, isSeparator)
	for i := 0; i < len(tokens); i++ {
		tok := normalizeToken(tokens[i])
		switch tok {
		case "":
			continue
		case l.At, "at":
			b.WriteByte('@')
		case l.Dot, "dot":
			b.WriteByte('.')
		case l.Dash:
			// "tiret bas" spans two tokens and means underscore.
			if i+1 < len(tokens) && l.Dash+" "+normalizeToken(tokens[i+1]) == l.Underscore {
				b.WriteByte('_')
				i++
				continue
			}
			b.WriteByte('-')
		default:
			if d, ok := l.wordToDigit[tok]; ok {
				b.WriteByte(d)
				continue
			}
			b.WriteString(tok)
		}
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';'
}
