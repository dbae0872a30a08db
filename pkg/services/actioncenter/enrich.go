package actioncenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/action-center/pkg/models/domain"
)

// enrich turns one raw record into a fully-populated canonical opportunity.
// It never fails: every missing or invalid field degrades to a deterministic
// default derived from the record's stable hash.
func (e *Engine) enrich(
	raw domain.RawOpportunity,
	index int,
	tracker map[string]string,
	now time.Time,
	p95Impact float64,
) domain.ActionOpportunity {
	hash := stableHash(opportunityKey(raw.Title, raw.ID, index))

	id := raw.ID
	if id == "" {
		id = fmt.Sprintf("opp-%d", index+1)
	}
	title := raw.Title
	if title == "" {
		title = fmt.Sprintf("Optimization opportunity %d", index+1)
	}

	monthlyImpact := monthlyImpactOf(raw)
	sourceType := classifySource(title)

	confidence := parseConfidence(raw.Confidence)
	if confidence == "" {
		confidence = []domain.Confidence{
			domain.ConfidenceHigh,
			domain.ConfidenceMedium,
			domain.ConfidenceLow,
		}[hash%3]
	}

	effort := classifyEffort(monthlyImpact, raw.AffectedResources)
	risk := classifyRisk(title, confidence, hash)

	ownerTeam := raw.OwnerTeam
	if ownerTeam == "" {
		ownerTeam = e.tables.TeamPool[hash%len(e.tables.TeamPool)]
	}
	ownerProduct := raw.OwnerProduct
	if ownerProduct == "" {
		ownerProduct = e.tables.ProductPool[hash%len(e.tables.ProductPool)]
	}

	currentSpend := monthlyImpact * float64(3+hash%4)
	resources := raw.AffectedResources
	if resources < 1 {
		resources = 1
	}
	unitsProxy := float64(resources * (40 + hash%60))
	unitCostImpact := monthlyImpact / unitsProxy

	opp := domain.ActionOpportunity{
		ID:                   id,
		Title:                title,
		OwnerTeam:            ownerTeam,
		OwnerProduct:         ownerProduct,
		MonthlyImpact:        monthlyImpact,
		UnitCostImpact:       round2(unitCostImpact),
		UnitMetric:           e.tables.UnitMetricPool[hash%len(e.tables.UnitMetricPool)],
		CurrentSpendEstimate: round2(currentSpend),
		UnitsProxy:           unitsProxy,
		Confidence:           confidence,
		Effort:               effort,
		Risk:                 risk,
		RecurrenceFactor:     e.tables.RecurrenceFactor[sourceType],
		SourceType:           sourceType,
		// The identified offset always exceeds the largest realized offset so
		// the realized cycle stays positive.
		IdentifiedAt: now.AddDate(0, 0, -(21 + hash%75)),
		Evidence:             raw.Evidence,
		ResolutionPaths:      raw.ResolutionPaths,
	}

	e.classifyStage(&opp, tracker, now, hash)

	if opp.Stage == domain.StageRealized {
		realizedAt := now.AddDate(0, 0, -(hash % 20))
		opp.RealizedAt = &realizedAt
	}

	opp.Assumptions = assumptionsFor(opp)
	opp.RiskFlags = riskFlagsFor(opp)
	if opp.Evidence == nil {
		opp.Evidence = []string{"Derived from last 30 days of billing and utilization data"}
	}
	if opp.ResolutionPaths == nil {
		opp.ResolutionPaths = defaultResolutionPaths(sourceType)
	}

	opp.PriorityScore = e.priorityScore(opp, p95Impact)
	e.verify(&opp, hash)

	return opp
}

// monthlyImpactOf extracts a non-negative monthly dollar impact, preferring the
// explicit savings estimate and falling back to the cost-impact figure.
func monthlyImpactOf(raw domain.RawOpportunity) float64 {
	impact := raw.Savings
	if impact == 0 {
		impact = raw.CostImpact
	}
	if impact < 0 {
		return 0
	}
	return impact
}

func classifySource(title string) domain.SourceType {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "idle"):
		return domain.SourceIdle
	case strings.Contains(t, "right-size") || strings.Contains(t, "right size"):
		return domain.SourceRightsizing
	case strings.Contains(t, "commit"):
		return domain.SourceCommitment
	default:
		return domain.SourceGeneral
	}
}

func parseConfidence(s string) domain.Confidence {
	v := strings.ToLower(s)
	switch {
	case strings.Contains(v, "high"):
		return domain.ConfidenceHigh
	case strings.Contains(v, "medium"):
		return domain.ConfidenceMedium
	case strings.Contains(v, "low"):
		return domain.ConfidenceLow
	}
	return ""
}

func classifyEffort(monthlyImpact float64, affectedResources int) domain.Effort {
	switch {
	case monthlyImpact > 200000 || affectedResources > 20:
		return domain.EffortLarge
	case monthlyImpact > 50000 || affectedResources > 8:
		return domain.EffortMedium
	default:
		return domain.EffortSmall
	}
}

func classifyRisk(title string, confidence domain.Confidence, hash int) domain.Risk {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "prod") || strings.Contains(t, "compliance"),
		confidence == domain.ConfidenceLow,
		hash%5 == 0:
		return domain.RiskHigh
	case hash%2 == 0:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func assumptionsFor(opp domain.ActionOpportunity) []string {
	assumptions := []string{
		"Savings estimate assumes current usage pattern holds for the next billing cycle",
	}
	if opp.SourceType == domain.SourceCommitment {
		assumptions = append(assumptions, "Workload remains predictable over the commitment term")
	}
	if opp.Effort == domain.EffortLarge {
		assumptions = append(assumptions, "Implementation can be staged across multiple change windows")
	}
	return assumptions
}

func riskFlagsFor(opp domain.ActionOpportunity) []string {
	flags := []string{}
	if opp.Risk == domain.RiskHigh {
		flags = append(flags, "production-impact")
	}
	if opp.Confidence == domain.ConfidenceLow {
		flags = append(flags, "low-confidence-estimate")
	}
	if opp.Blocked {
		flags = append(flags, "blocked")
	}
	return flags
}

func defaultResolutionPaths(source domain.SourceType) []string {
	switch source {
	case domain.SourceIdle:
		return []string{"Terminate after owner sign-off", "Schedule stop outside business hours"}
	case domain.SourceRightsizing:
		return []string{"Apply recommended instance class", "Enable autoscaling with lower floor"}
	case domain.SourceCommitment:
		return []string{"Purchase recommended commitment", "Re-run coverage analysis monthly"}
	default:
		return []string{"Review with owning team", "Open change request"}
	}
}
