// internal/reconcile/tier.go
package reconcile

// Tier buckets a 0-100 score for display purposes.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMid:
		return "mid"
	default:
		return "low"
	}
}

// TierPolicy holds the tier breakpoints. The breakpoints are configuration,
// not derived values: every scoring surface must classify through the same
// policy instance so the thresholds cannot drift apart.
type TierPolicy struct {
	High int // score >= High is TierHigh
	Mid  int // score >= Mid is TierMid
}

// DefaultTierPolicy is the current scheme: high at 80, mid at 70.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{High: 80, Mid: 70}
}

// LegacyTierPolicy is the older two-tier scheme that drew the mid line at 60.
// Deployments that still publish legacy scores select this via configuration.
func LegacyTierPolicy() TierPolicy {
	return TierPolicy{High: 80, Mid: 60}
}

// Classify buckets a score. Out-of-range input is clamped first.
func (p TierPolicy) Classify(score int) Tier {
	score = clamp(score)
	switch {
	case score >= p.High:
		return TierHigh
	case score >= p.Mid:
		return TierMid
	default:
		return TierLow
	}
}
