package normalize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text strips markup from a free-text answer and trims surrounding
// whitespace. View models carry display-ready strings; raw persisted values
// stay untouched.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

// TextList applies Text to every element, dropping elements that sanitize to
// empty.
func TextList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := Text(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
