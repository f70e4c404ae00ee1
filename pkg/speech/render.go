package speech

import (
	"fmt"
	"regexp"
)

// placeholderRe matches "{{slot}}" references in prompt and input templates.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// TemplateError reports a template referencing a slot that is not filled.
// It indicates a graph ordering bug and is fatal to the call: a prompt cannot
// be spoken and a tool input cannot be built from missing data.
type TemplateError struct {
	Key      string
	Template string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template references unfilled slot %q", e.Key)
}

// Render substitutes every "{{slot}}" placeholder in the template with the
// matching value from slots. Rendering is pure: the same template and slots
// always produce the same string. A missing slot yields a *TemplateError.
func (l *Locale) Render(template string, slots map[string]string) (string, error) {
	var missing *TemplateError
	out := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := placeholderRe.FindStringSubmatch(m)[1]
		val, ok := slots[key]
		if !ok {
			if missing == nil {
				missing = &TemplateError{Key: key, Template: template}
			}
			return m
		}
		return val
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}
