package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// MarkupGuard refuses free text that carries HTML. Accepted text is stored
// exactly as the client sent it; rendering safely is the client's job.
type MarkupGuard struct {
	policy *bluemonday.Policy
}

func NewMarkupGuard() *MarkupGuard {
	return &MarkupGuard{policy: bluemonday.StrictPolicy()}
}

// The html tokenizer folds CR and CRLF to LF and replaces NUL in text, so
// both sides are normalised the same way before comparing.
var tokenizerText = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "\ufffd")

func plainText(s string) string {
	return tokenizerText.Replace(html.UnescapeString(s))
}

// ContainsMarkup reports whether the strict policy would drop anything from s.
// Entity-encoded text such as "&lt;b&gt;" is not markup.
func (g *MarkupGuard) ContainsMarkup(s string) bool {
	if !strings.Contains(s, "<") {
		return false
	}
	return plainText(g.policy.Sanitize(s)) != plainText(s)
}

type textField struct {
	name  string
	value *string
}

func field(name string, v *string) textField { return textField{name: name, value: v} }

// check returns an invalid-input error for the first field holding markup.
// Nil fields are skipped.
func (g *MarkupGuard) check(fields ...textField) error {
	for _, f := range fields {
		if f.value != nil && g.ContainsMarkup(*f.value) {
			return domain.Invalid(f.name + " must not contain markup")
		}
	}
	return nil
}
