// internal/judge/types.go
package judge

import (
	"context"
	"encoding/json"
	"errors"
)

// Message is one entry of the wire transcript sent to the evaluator.
// Content is always plain text; structured assistant results are serialized
// before they reach this type.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Result is the structured payload of a successful evaluation call.
//
// The three core scores are always present on a decodable success response.
// Responsiveness and visual scores only exist in the extended protocol, so
// they are pointers: a nil pointer means "not reported", which is not the
// same as a zero score.
type Result struct {
	ScoreFidelity       int    `json:"score_fidelity"`
	ScoreSyntax         int    `json:"score_syntax"`
	ScoreAccessibility  int    `json:"score_accessibility"`
	ScoreResponsiveness *int   `json:"score_responsiveness,omitempty"`
	ScoreVisual         *int   `json:"score_visual,omitempty"`
	Rationale           string `json:"rationale"`
	FinalJudgement      string `json:"final_judgement"`

	// FixedHTML is corrected markup proposed by the evaluator. Nil when the
	// evaluator offered no explicit fix; a fix may still be embedded in the
	// rationale as a fenced html block.
	FixedHTML *string `json:"fixed_html,omitempty"`

	// ExecutionTrace is the ordered raw trace emitted by the evaluator's
	// analysis run. See ParseTrace for the line format.
	ExecutionTrace []string `json:"execution_trace,omitempty"`
}

// HasFix reports whether the result carries a non-empty explicit fix.
func (r *Result) HasFix() bool {
	return r.FixedHTML != nil && *r.FixedHTML != ""
}

// Failure describes an evaluation call that produced no usable result.
// It covers both transport errors and undecodable responses.
type Failure struct {
	Message string `json:"message"`
}

func (f *Failure) Error() string {
	return f.Message
}

// AsFailure normalizes any error into a *Failure. Errors that already are
// failures pass through unchanged.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Message: err.Error()}
}

// CanonicalText returns the canonical text encoding of a structured value for
// transcript purposes. The evaluator is text-oriented, so its own prior
// structured answers are fed back to it as JSON text.
func CanonicalText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// Evaluator is the one wire boundary of the engine. Implementations must
// never return a Go error past this interface: every failure mode degrades
// to a *Failure.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript []Message) (*Result, *Failure)
}
