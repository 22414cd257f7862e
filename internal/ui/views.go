// internal/ui/views.go
// Renderers for the four tabs.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"htmljudge/internal/judge"
	"htmljudge/internal/transcript"
)

// latestResult returns the result of the displayed analysis, or nil when the
// analysis is absent or a failure.
func (m Model) latestResult() *judge.Result {
	analysis := m.sess.CurrentAnalysis()
	if analysis == nil {
		return nil
	}
	return analysis.Result
}

func (m Model) renderAnalysis() string {
	analysis := m.sess.CurrentAnalysis()
	if analysis == nil {
		return DimStyle.Render("No evaluation yet. Press e to open the editor, ctrl+s to submit.")
	}

	if analysis.Failure != nil {
		return ErrorStyle.Render("Evaluation failed: "+analysis.Failure.Message) + "\n\n" +
			DimStyle.Render("The editor document and any previously applied fix are untouched.")
	}

	res := analysis.Result
	var b strings.Builder

	b.WriteString(TitleStyle.Render("SCORES"))
	b.WriteString("\n\n")
	b.WriteString(m.scoreLine("Fidelity", res.ScoreFidelity))
	b.WriteString(m.scoreLine("Syntax", res.ScoreSyntax))
	b.WriteString(m.scoreLine("Accessibility", res.ScoreAccessibility))
	if res.ScoreResponsiveness != nil {
		b.WriteString(m.scoreLine("Responsiveness", *res.ScoreResponsiveness))
	}
	if res.ScoreVisual != nil {
		b.WriteString(m.scoreLine("Visual", *res.ScoreVisual))
	}

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("JUDGEMENT"))
	b.WriteString("\n")
	b.WriteString(res.FinalJudgement)
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("RATIONALE"))
	b.WriteString("\n")
	b.WriteString(m.renderMarkdown(res.Rationale))

	if res.HasFix() {
		b.WriteString("\n")
		b.WriteString(NoticeStyle.Render("The judge proposed a fix: see the preview tab."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) scoreLine(name string, score int) string {
	tier := m.sess.Tiers().Classify(score)
	bar := scoreBar(score)
	return fmt.Sprintf("  %-14s %s %s %s\n",
		name,
		TierStyle(tier).Render(fmt.Sprintf("%3d", score)),
		DimStyle.Render(bar),
		TierStyle(tier).Render(tier.String()))
}

// scoreBar renders a 20-cell bar for a 0-100 score.
func scoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// renderMarkdown renders rationale text through glamour, falling back to the
// raw text if the renderer is unavailable.
func (m Model) renderMarkdown(text string) string {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

func (m Model) renderConversation() string {
	turns := m.sess.History()
	if len(turns) == 0 {
		return DimStyle.Render("No conversation yet. Evaluate a document first, then ask follow-ups here.")
	}

	var b strings.Builder
	for _, turn := range turns {
		ts := turn.Timestamp.Format("15:04")

		var header, body string
		switch {
		case turn.Role == transcript.RoleUser:
			header = UserStyle.Render(fmt.Sprintf("[%s] You:", ts))
			body = turn.Text
		case turn.Role == transcript.RoleNotice:
			header = NoticeStyle.Render(fmt.Sprintf("[%s] System:", ts))
			body = turn.Text
		case turn.Failure != nil:
			header = ErrorStyle.Render(fmt.Sprintf("[%s] Judge Error:", ts))
			body = turn.Failure.Message
		case turn.Result != nil:
			header = JudgeStyle.Render(fmt.Sprintf("[%s] Judge:", ts))
			body = judgeSummary(turn.Result)
		default:
			continue
		}

		b.WriteString(header)
		b.WriteString("\n")
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("  ")
			if turn.Failure != nil {
				b.WriteString(ErrorStyle.Render(line))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// judgeSummary condenses a result for the conversation flow; the analysis tab
// carries the full detail.
func judgeSummary(res *judge.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fidelity %d / syntax %d / accessibility %d",
		res.ScoreFidelity, res.ScoreSyntax, res.ScoreAccessibility)
	if res.ScoreResponsiveness != nil {
		fmt.Fprintf(&b, " / responsiveness %d", *res.ScoreResponsiveness)
	}
	if res.ScoreVisual != nil {
		fmt.Fprintf(&b, " / visual %d", *res.ScoreVisual)
	}
	b.WriteString("\n")
	b.WriteString(res.FinalJudgement)
	if res.Rationale != "" {
		b.WriteString("\n\n")
		b.WriteString(res.Rationale)
	}
	return b.String()
}

func (m Model) renderPreview() string {
	doc := m.sess.PreviewDocument()
	if strings.TrimSpace(doc) == "" {
		return DimStyle.Render("Nothing to preview yet.")
	}

	sanitized := m.sanitizer.Sanitize(doc)

	var b strings.Builder
	b.WriteString(TitleStyle.Render("PREVIEW DOCUMENT"))
	b.WriteString(DimStyle.Render("  (sanitized: scripts and event handlers stripped)"))
	b.WriteString("\n\n")
	b.WriteString(sanitized)
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("press a to copy this document into the editor"))
	return b.String()
}

func (m Model) renderLogs() string {
	res := m.latestResult()
	if res == nil || len(res.ExecutionTrace) == 0 {
		return DimStyle.Render("No execution trace in the latest result.")
	}

	entries := judge.ParseTrace(res.ExecutionTrace)

	var b strings.Builder
	b.WriteString(TitleStyle.Render("EXECUTION TRACE"))
	b.WriteString("\n\n")
	for _, entry := range entries {
		marker := SeverityStyle(entry.Severity).Render(fmt.Sprintf("%-8s", entry.Severity))
		if entry.Icon != "" {
			b.WriteString(fmt.Sprintf("%s %s %s\n", marker, DimStyle.Render(":"+entry.Icon+":"), entry.Message))
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n", marker, entry.Message))
		}
	}
	return b.String()
}
