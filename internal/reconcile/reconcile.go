// internal/reconcile/reconcile.go
// Policy for deriving the current preview document and score tiers from a
// conversation history. Assistant turns may or may not carry explicit fixed
// markup; the rules here decide which markup is "the" candidate document.
package reconcile

import (
	"regexp"

	"htmljudge/internal/judge"
	"htmljudge/internal/transcript"
)

// fencePattern matches the first fenced code block tagged as html:
// an opening fence "```html" followed by a newline, the block interior,
// and a closing "```" fence. The interior is captured without the fences;
// the line terminator before the closing fence belongs to the delimiter,
// not the document.
var fencePattern = regexp.MustCompile("(?s)```html[ \t]*\r?\n(.*?)\r?\n?```")

// ExtractFencedHTML returns the interior of the first html-tagged fenced
// block in text. The second return value reports whether a block was found.
func ExtractFencedHTML(text string) (string, bool) {
	match := fencePattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// PreviewDocument resolves which document should currently be previewed or
// offered back to the editor. Most recent wins: the scan walks assistant
// turns newest-first and stops at the first one that carries an explicit
// non-empty fix, or failing that, a fenced html block in its rationale. When
// no assistant turn yields anything, the editor document stands.
//
// The scan is recomputed from the full history on every call; any later turn
// can supersede an earlier extraction, so nothing is cached.
func PreviewDocument(turns []transcript.Turn, editorDoc string) string {
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Role != transcript.RoleAssistant || t.Result == nil {
			continue
		}
		if t.Result.HasFix() {
			return *t.Result.FixedHTML
		}
		if block, ok := ExtractFencedHTML(t.Result.Rationale); ok {
			return block
		}
	}
	return editorDoc
}

// Normalize clamps every present score of a result into [0,100]. Bounds
// checking lives here rather than in the evaluation client so the transport
// stays dumb and the policy stays testable. Absent optional scores are left
// absent.
func Normalize(r *judge.Result) {
	if r == nil {
		return
	}
	r.ScoreFidelity = clamp(r.ScoreFidelity)
	r.ScoreSyntax = clamp(r.ScoreSyntax)
	r.ScoreAccessibility = clamp(r.ScoreAccessibility)
	if r.ScoreResponsiveness != nil {
		v := clamp(*r.ScoreResponsiveness)
		r.ScoreResponsiveness = &v
	}
	if r.ScoreVisual != nil {
		v := clamp(*r.ScoreVisual)
		r.ScoreVisual = &v
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
