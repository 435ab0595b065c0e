package validators

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldError reports which submitted field failed validation and why
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DefaultForbiddenWords is the built-in denylist applied to submitted
// content when the config doesn't override it
var DefaultForbiddenWords = []string{
	"casino",
	"cryptocurrency",
	"crypto",
	"exchange",
	"cheap",
	"free",
	"scam",
	"police",
	"radar",
}

// Content rejects catalog and blog submissions containing denylisted
// terms. The check is a case-insensitive substring match, applied to the
// title and description independently so the caller learns which field
// failed
type Content struct {
	words []string
}

func NewContent(words []string) *Content {
	if len(words) == 0 {
		words = DefaultForbiddenWords
	}

	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}

	return &Content{words: lowered}
}

func (v *Content) Validate(title, description string) error {
	if w := v.match(title); w != "" {
		return &FieldError{Field: "title", Reason: "contains forbidden word " + strconv.Quote(w)}
	}

	if w := v.match(description); w != "" {
		return &FieldError{Field: "description", Reason: "contains forbidden word " + strconv.Quote(w)}
	}

	return nil
}

func (v *Content) match(s string) string {
	s = strings.ToLower(s)
	for _, w := range v.words {
		if strings.Contains(s, w) {
			return w
		}
	}

	return ""
}
