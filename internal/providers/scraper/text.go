package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// MaxHTMLSize limits fragments handed to the parser.
const MaxHTMLSize = 1 << 20

// Text returns the visible text of an HTML fragment with whitespace collapsed.
// Input that cannot be parsed is returned with whitespace collapsed.
func Text(fragment string) string {
	if fragment == "" {
		return ""
	}
	if len(fragment) > MaxHTMLSize {
		fragment = fragment[:MaxHTMLSize]
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return NormalizeWhitespace(fragment)
	}
	doc.Find("script, style").Remove()
	return NormalizeWhitespace(doc.Text())
}

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Cut returns at most n runes of s.
func Cut(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Sanitizer removes scripts, event handlers and other unsafe markup.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer uses bluemonday's user-generated-content policy.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// Sanitize returns the cleaned fragment.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
