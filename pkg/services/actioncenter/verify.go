package actioncenter

import "github.com/de-tools/action-center/pkg/models/domain"

// verify derives claimed vs. independently verified savings plus the symmetric
// confidence band. Nothing is claimed before the implemented stage.
func (e *Engine) verify(opp *domain.ActionOpportunity, hash int) {
	var claimFactor float64
	switch opp.Stage {
	case domain.StageImplemented:
		claimFactor = 0.65
	case domain.StageVerified:
		claimFactor = 0.9
	case domain.StageRealized:
		claimFactor = 1.0
	}

	claimed := opp.MonthlyImpact * claimFactor
	normalization := 0.9 + float64(hash%6)*0.015
	verified := claimed * e.tables.ConfidenceWeight[opp.Confidence] * normalization

	opp.ClaimedSavings = round2(claimed)
	opp.VerifiedSavings = round2(verified)
	opp.VerificationBandPct = e.tables.BandPct[opp.Confidence]
	opp.VerificationDelta = round2(verified - claimed)
}

// confidenceBand returns the symmetric band around a verified figure.
func confidenceBand(verified, bandPct float64) (low, high float64) {
	return round2(verified * (1 - bandPct/100)), round2(verified * (1 + bandPct/100))
}
