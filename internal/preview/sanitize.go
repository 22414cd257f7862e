// internal/preview/sanitize.go
// Sanitization for the preview document. The previewed markup is attacker
// controlled whenever the evaluated HTML came from untrusted input, so it
// must never execute script or reach the ambient authority of the host.
package preview

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var stylePattern = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)

// Sanitizer strips active content from candidate preview documents.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the preview policy: structural and formatting elements
// plus inline styles survive; scripts, event handlers, and frames do not.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("html", "head", "body", "title", "header", "footer", "nav",
		"main", "section", "article", "aside", "figure", "figcaption",
		"button", "form", "label", "input", "select", "option", "textarea")
	p.AllowAttrs("style").Globally()
	p.AllowAttrs("class", "id").Globally()
	p.AllowAttrs("type", "placeholder", "value", "name").OnElements("input", "button", "select", "textarea")
	p.AllowAttrs("alt", "src").OnElements("img")
	p.AllowAttrs("role", "aria-label").Globally()
	return &Sanitizer{policy: p}
}

// Sanitize returns a copy of doc with active content removed. Style blocks
// are dropped wholesale before the element policy runs; bluemonday would
// otherwise strip the tags but leak the sheet text into the document body.
func (s *Sanitizer) Sanitize(doc string) string {
	doc = stylePattern.ReplaceAllString(doc, "")
	return s.policy.Sanitize(doc)
}
