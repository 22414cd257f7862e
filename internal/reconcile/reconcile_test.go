// internal/reconcile/reconcile_test.go
package reconcile

import (
	"testing"

	"htmljudge/internal/judge"
	"htmljudge/internal/transcript"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func TestExtractFencedHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "simple block",
			input: "Here is a fix:\n```html\n<p>hi</p>\n```\nDone.",
			want:  "<p>hi</p>",
			found: true,
		},
		{
			name:  "closing delimiter owns the preceding newline",
			input: "```html\n<p>hi</p>\n```",
			want:  "<p>hi</p>",
			found: true,
		},
		{
			name:  "first of two blocks wins",
			input: "```html\n<a>first</a>\n```\ntext\n```html\n<a>second</a>\n```",
			want:  "<a>first</a>",
			found: true,
		},
		{
			name:  "untagged fence ignored",
			input: "```\n<p>not tagged</p>\n```",
			found: false,
		},
		{
			name:  "other language ignored",
			input: "```css\nbody { color: red }\n```",
			found: false,
		},
		{
			name:  "multiline interior",
			input: "```html\n<div>\n  <span>x</span>\n</div>\n```",
			want:  "<div>\n  <span>x</span>\n</div>",
			found: true,
		},
		{
			name:  "crlf line endings",
			input: "```html\r\n<p>win</p>\r\n```",
			want:  "<p>win</p>",
			found: true,
		},
		{
			name:  "no fence at all",
			input: "plain prose about <p> tags",
			found: false,
		},
		{
			name:  "unclosed fence",
			input: "```html\n<p>dangling",
			found: false,
		},
	}

	for _, tt := range tests {
		got, found := ExtractFencedHTML(tt.input)
		if found != tt.found {
			t.Errorf("%s: found = %v, want %v", tt.name, found, tt.found)
			continue
		}
		if found && got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPreviewDocumentMostRecentWins(t *testing.T) {
	turns := []transcript.Turn{
		transcript.UserTurn("evaluate this"),
		transcript.ResultTurn(&judge.Result{FixedHTML: strPtr("<a>")}),
		transcript.UserTurn("try again"),
		transcript.ResultTurn(&judge.Result{FixedHTML: strPtr("<b>")}),
	}

	if got := PreviewDocument(turns, "<editor>"); got != "<b>" {
		t.Errorf("PreviewDocument = %q, want %q", got, "<b>")
	}
}

func TestPreviewDocumentFencedFallback(t *testing.T) {
	turns := []transcript.Turn{
		transcript.UserTurn("evaluate this"),
		transcript.ResultTurn(&judge.Result{
			Rationale: "Consider this instead:\n```html\n<p>hi</p>\n```",
		}),
	}

	if got := PreviewDocument(turns, "<editor>"); got != "<p>hi</p>" {
		t.Errorf("PreviewDocument = %q, want %q", got, "<p>hi</p>")
	}
}

func TestPreviewDocumentExplicitFixBeatsFence(t *testing.T) {
	turns := []transcript.Turn{
		transcript.ResultTurn(&judge.Result{
			FixedHTML: strPtr("<em>explicit</em>"),
			Rationale: "```html\n<p>embedded</p>\n```",
		}),
	}

	if got := PreviewDocument(turns, "<editor>"); got != "<em>explicit</em>" {
		t.Errorf("PreviewDocument = %q, want %q", got, "<em>explicit</em>")
	}
}

func TestPreviewDocumentNoFixFallsBackToEditor(t *testing.T) {
	tests := []struct {
		name  string
		turns []transcript.Turn
	}{
		{name: "empty history", turns: nil},
		{
			name: "assistant turn without any fix",
			turns: []transcript.Turn{
				transcript.UserTurn("evaluate"),
				transcript.ResultTurn(&judge.Result{Rationale: "looks fine"}),
			},
		},
		{
			name: "empty fixed_html is not a fix",
			turns: []transcript.Turn{
				transcript.ResultTurn(&judge.Result{FixedHTML: strPtr("")}),
			},
		},
		{
			name: "failure turns are skipped",
			turns: []transcript.Turn{
				transcript.FailureTurn(&judge.Failure{Message: "boom"}),
			},
		},
	}

	for _, tt := range tests {
		if got := PreviewDocument(tt.turns, "<editor>"); got != "<editor>" {
			t.Errorf("%s: PreviewDocument = %q, want editor document", tt.name, got)
		}
	}
}

func TestPreviewDocumentLaterTurnSupersedesEarlierFix(t *testing.T) {
	// An older explicit fix loses to a newer fenced extraction.
	turns := []transcript.Turn{
		transcript.ResultTurn(&judge.Result{FixedHTML: strPtr("<old>")}),
		transcript.ResultTurn(&judge.Result{Rationale: "```html\n<new>\n```"}),
	}

	if got := PreviewDocument(turns, "<editor>"); got != "<new>" {
		t.Errorf("PreviewDocument = %q, want %q", got, "<new>")
	}
}

func TestPreviewDocumentIdempotent(t *testing.T) {
	turns := []transcript.Turn{
		transcript.UserTurn("evaluate"),
		transcript.ResultTurn(&judge.Result{FixedHTML: strPtr("<fixed>")}),
	}

	first := PreviewDocument(turns, "<editor>")
	second := PreviewDocument(turns, "<editor>")
	if first != second {
		t.Errorf("extraction not idempotent: %q then %q", first, second)
	}
}

func TestNormalizeClampsScores(t *testing.T) {
	res := &judge.Result{
		ScoreFidelity:       150,
		ScoreSyntax:         -5,
		ScoreAccessibility:  70,
		ScoreResponsiveness: intPtr(101),
	}

	Normalize(res)

	if res.ScoreFidelity != 100 {
		t.Errorf("ScoreFidelity = %d, want 100", res.ScoreFidelity)
	}
	if res.ScoreSyntax != 0 {
		t.Errorf("ScoreSyntax = %d, want 0", res.ScoreSyntax)
	}
	if res.ScoreAccessibility != 70 {
		t.Errorf("ScoreAccessibility = %d, want 70", res.ScoreAccessibility)
	}
	if res.ScoreResponsiveness == nil || *res.ScoreResponsiveness != 100 {
		t.Errorf("ScoreResponsiveness = %v, want 100", res.ScoreResponsiveness)
	}
	if res.ScoreVisual != nil {
		t.Error("Normalize must not invent absent optional scores")
	}
}
