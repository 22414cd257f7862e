// internal/judge/mock.go
// Offline evaluator used when no endpoint is configured, so the UI can be
// exercised without the real evaluation service.
package judge

import "context"

// Mock is an Evaluator that returns a canned result without any network IO.
type Mock struct{}

func (Mock) Evaluate(ctx context.Context, transcript []Message) (*Result, *Failure) {
	if len(transcript) == 0 {
		return nil, &Failure{Message: "nothing to evaluate: empty transcript"}
	}
	if err := ctx.Err(); err != nil {
		return nil, AsFailure(err)
	}

	responsiveness := 75
	return &Result{
		ScoreFidelity:       85,
		ScoreSyntax:         90,
		ScoreAccessibility:  60,
		ScoreResponsiveness: &responsiveness,
		Rationale: "[MOCK] The HTML structure is generally valid. However, some " +
			"accessibility attributes like 'alt' for images might be missing. " +
			"This is a canned response because no evaluator endpoint is configured.",
		FinalJudgement: "Good start, but needs accessibility improvements.",
		ExecutionTrace: []string{
			":rocket: Initialized mock analyzer.",
			":mag: Structural checks complete.",
			":warning: [WARN] No evaluator endpoint configured; scores are canned.",
		},
	}, nil
}
