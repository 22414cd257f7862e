// internal/export/markdown.go
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"htmljudge/internal/judge"
	"htmljudge/internal/reconcile"
	"htmljudge/internal/transcript"
)

// SessionExport contains the data needed to export an evaluation session.
type SessionExport struct {
	ID         string
	CreatedAt  time.Time
	Turns      []transcript.Turn
	Result     *judge.Result // latest successful analysis, may be nil
	PreviewDoc string
	Tiers      reconcile.TierPolicy
}

// ExportSession generates a formatted markdown report for a session.
func ExportSession(sess *SessionExport) string {
	var sb strings.Builder

	sb.WriteString("# HTML Evaluation Report\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("**Session ID:** `%s`\n\n", sess.ID))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n\n", sess.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("---\n\n")

	if sess.Result != nil {
		writeScores(&sb, sess.Result, sess.Tiers)
	}

	sb.WriteString("## Transcript\n\n")
	for i, turn := range sess.Turns {
		ts := turn.Timestamp.Format("15:04:05")
		sb.WriteString(fmt.Sprintf("### [%s] %s\n\n", ts, formatRole(turn.Role)))

		content := strings.TrimSpace(turnBody(turn))
		if strings.Contains(content, "```") {
			// Content already has code blocks, render as-is
			sb.WriteString(content)
		} else {
			for _, line := range strings.Split(content, "\n") {
				sb.WriteString("> ")
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")

		if i < len(sess.Turns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	if sess.PreviewDoc != "" {
		sb.WriteString("\n## Current Preview Document\n\n")
		sb.WriteString("```html\n")
		sb.WriteString(strings.TrimRight(sess.PreviewDoc, "\n"))
		sb.WriteString("\n```\n")
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from htmljudge on %s*\n", time.Now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

// WriteSession exports a session report to a markdown file under baseDir.
func WriteSession(sess *SessionExport, baseDir string) (string, error) {
	datePart := sess.CreatedAt.Format("2006-01-02")
	filename := fmt.Sprintf("%s-%s.md", datePart, shortID(sess.ID))

	reportsDir := filepath.Join(baseDir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(reportsDir, filename)
	if err := os.WriteFile(path, []byte(ExportSession(sess)), 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func writeScores(sb *strings.Builder, res *judge.Result, tiers reconcile.TierPolicy) {
	sb.WriteString("## Scores\n\n")
	sb.WriteString("| Dimension | Score | Tier |\n")
	sb.WriteString("|---|---|---|\n")
	writeScoreRow(sb, "Fidelity", res.ScoreFidelity, tiers)
	writeScoreRow(sb, "Syntax", res.ScoreSyntax, tiers)
	writeScoreRow(sb, "Accessibility", res.ScoreAccessibility, tiers)
	if res.ScoreResponsiveness != nil {
		writeScoreRow(sb, "Responsiveness", *res.ScoreResponsiveness, tiers)
	}
	if res.ScoreVisual != nil {
		writeScoreRow(sb, "Visual", *res.ScoreVisual, tiers)
	}
	sb.WriteString("\n")

	if res.FinalJudgement != "" {
		sb.WriteString(fmt.Sprintf("**Judgement:** %s\n\n", res.FinalJudgement))
	}
	sb.WriteString("---\n\n")
}

func writeScoreRow(sb *strings.Builder, name string, score int, tiers reconcile.TierPolicy) {
	sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", name, score, tiers.Classify(score)))
}

// turnBody renders a turn's content for the report. Failures are shown as
// their message rather than raw JSON; results as their rationale.
func turnBody(turn transcript.Turn) string {
	switch {
	case turn.Failure != nil:
		return "Evaluation failed: " + turn.Failure.Message
	case turn.Result != nil:
		return turn.Result.Rationale
	default:
		return turn.Text
	}
}

func formatRole(role transcript.Role) string {
	switch role {
	case transcript.RoleUser:
		return "User"
	case transcript.RoleAssistant:
		return "Judge"
	case transcript.RoleNotice:
		return "System"
	default:
		return string(role)
	}
}

// shortID keeps filenames readable; a uuid prefix is unique enough per day.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "session"
	}
	return id
}
