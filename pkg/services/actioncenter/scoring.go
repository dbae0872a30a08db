package actioncenter

import (
	"math"
	"sort"

	"github.com/de-tools/action-center/pkg/models/domain"
)

// priorityScore combines impact, confidence, and recurrence against effort,
// time, and risk penalties. All denominators are floored at 1, so the score is
// always finite and non-negative.
func (e *Engine) priorityScore(opp domain.ActionOpportunity, p95Impact float64) float64 {
	impactNorm := clamp(opp.MonthlyImpact/math.Max(1, p95Impact), 0, 1.5)
	timePenalty := 1 + math.Max(0, float64(opp.EtaDays)-7)/30

	score := (impactNorm * e.tables.ConfidenceWeight[opp.Confidence] * opp.RecurrenceFactor) /
		(math.Max(1, e.tables.EffortPenalty[opp.Effort]) *
			math.Max(1, timePenalty) *
			math.Max(1, e.tables.RiskPenalty[opp.Risk]))

	return round4(score)
}

// p95 returns the 95th percentile of the non-negative impact values, floored
// at 1 so it can serve as a normalization divisor.
func p95(values []float64) float64 {
	var positive []float64
	for _, v := range values {
		if v >= 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return 1
	}
	sort.Float64s(positive)
	idx := int(math.Floor(0.95 * float64(len(positive)-1)))
	return math.Max(1, positive[idx])
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
