// internal/export/markdown_test.go
package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"htmljudge/internal/judge"
	"htmljudge/internal/reconcile"
	"htmljudge/internal/transcript"
)

func sampleExport() *SessionExport {
	responsiveness := 75
	return &SessionExport{
		ID:        "abc12345-0000-0000-0000-000000000000",
		CreatedAt: time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC),
		Turns: []transcript.Turn{
			{
				Role:      transcript.RoleUser,
				Text:      "<div>Hi</div>",
				Timestamp: time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC),
			},
			{
				Role: transcript.RoleAssistant,
				Result: &judge.Result{
					ScoreFidelity:       90,
					ScoreSyntax:         85,
					ScoreAccessibility:  65,
					ScoreResponsiveness: &responsiveness,
					Rationale:           "Mostly fine, missing alt text.",
					FinalJudgement:      "pass",
				},
				Timestamp: time.Date(2026, 8, 1, 14, 30, 20, 0, time.UTC),
			},
		},
		Result: &judge.Result{
			ScoreFidelity:       90,
			ScoreSyntax:         85,
			ScoreAccessibility:  65,
			ScoreResponsiveness: &responsiveness,
			FinalJudgement:      "pass",
		},
		PreviewDoc: "<div>Hi</div>",
		Tiers:      reconcile.DefaultTierPolicy(),
	}
}

func TestExportSession(t *testing.T) {
	result := ExportSession(sampleExport())

	// Check metadata
	if !strings.Contains(result, "# HTML Evaluation Report") {
		t.Error("Expected report title in output")
	}
	if !strings.Contains(result, "**Session ID:** `abc12345-0000-0000-0000-000000000000`") {
		t.Error("Expected session ID in output")
	}

	// Check score table with tiers
	if !strings.Contains(result, "| Fidelity | 90 | high |") {
		t.Error("Expected fidelity score row in output")
	}
	if !strings.Contains(result, "| Accessibility | 65 | low |") {
		t.Error("Expected accessibility score row with low tier")
	}
	if !strings.Contains(result, "| Responsiveness | 75 | mid |") {
		t.Error("Expected optional responsiveness row when present")
	}
	if strings.Contains(result, "| Visual |") {
		t.Error("Absent visual score must not produce a row")
	}
	if !strings.Contains(result, "**Judgement:** pass") {
		t.Error("Expected judgement in output")
	}

	// Check transcript
	if !strings.Contains(result, "### [14:30:00] User") {
		t.Error("Expected user turn header in output")
	}
	if !strings.Contains(result, "### [14:30:20] Judge") {
		t.Error("Expected judge turn header in output")
	}
	if !strings.Contains(result, "missing alt text") {
		t.Error("Expected rationale content in output")
	}

	// Check preview block
	if !strings.Contains(result, "## Current Preview Document") {
		t.Error("Expected preview section in output")
	}
	if !strings.Contains(result, "```html\n<div>Hi</div>\n```") {
		t.Error("Expected preview document fenced block in output")
	}
}

func TestExportSessionWithCodeBlocks(t *testing.T) {
	sess := &SessionExport{
		ID:        "code123",
		CreatedAt: time.Now(),
		Turns: []transcript.Turn{
			{
				Role: transcript.RoleAssistant,
				Result: &judge.Result{
					Rationale: "Try this instead:\n\n```html\n<main>better</main>\n```",
				},
				Timestamp: time.Now(),
			},
		},
		Tiers: reconcile.DefaultTierPolicy(),
	}

	result := ExportSession(sess)

	// Content with code blocks should not be wrapped in blockquotes
	if strings.Contains(result, "> ```html") {
		t.Error("Code blocks should not be wrapped in blockquotes")
	}
	if !strings.Contains(result, "```html") {
		t.Error("Expected code block to be preserved")
	}
}

func TestExportSessionFailureTurn(t *testing.T) {
	sess := &SessionExport{
		ID:        "fail123",
		CreatedAt: time.Now(),
		Turns: []transcript.Turn{
			{
				Role:      transcript.RoleAssistant,
				Failure:   &judge.Failure{Message: "rate limited"},
				Timestamp: time.Now(),
			},
		},
		Tiers: reconcile.DefaultTierPolicy(),
	}

	result := ExportSession(sess)
	if !strings.Contains(result, "Evaluation failed: rate limited") {
		t.Error("Expected failure message in output")
	}
	if strings.Contains(result, "## Scores") {
		t.Error("No score table without a result")
	}
}

func TestWriteSession(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := WriteSession(sampleExport(), tmpDir)
	if err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file to exist at %s", path)
	}

	// Check filename format: date plus uuid prefix, under reports/
	if filepath.Base(path) != "2026-08-01-abc12345.md" {
		t.Errorf("Unexpected filename %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "reports" {
		t.Errorf("Expected reports directory, got %q", filepath.Dir(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !strings.Contains(string(content), "# HTML Evaluation Report") {
		t.Error("Expected report title in file content")
	}
}

func TestFormatRole(t *testing.T) {
	tests := []struct {
		role     transcript.Role
		expected string
	}{
		{transcript.RoleUser, "User"},
		{transcript.RoleAssistant, "Judge"},
		{transcript.RoleNotice, "System"},
	}

	for _, test := range tests {
		if got := formatRole(test.role); got != test.expected {
			t.Errorf("formatRole(%q) = %q, expected %q", test.role, got, test.expected)
		}
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"abc12345-0000", "abc12345"},
		{"short", "short"},
		{"", "session"},
	}

	for _, test := range tests {
		if got := shortID(test.input); got != test.expected {
			t.Errorf("shortID(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
