package actioncenter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/action-center/pkg/models/api"
	"github.com/de-tools/action-center/pkg/models/domain"
)

// topRanked returns the n highest-priority opportunities, tie-breaking on
// impact, then earlier ETA, then id for a stable order.
func topRanked(opps []domain.ActionOpportunity, n int) []domain.ActionOpportunity {
	ranked := make([]domain.ActionOpportunity, len(opps))
	copy(ranked, opps)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		if ranked[i].MonthlyImpact != ranked[j].MonthlyImpact {
			return ranked[i].MonthlyImpact > ranked[j].MonthlyImpact
		}
		if !ranked[i].EtaDate.Equal(ranked[j].EtaDate) {
			return ranked[i].EtaDate.Before(ranked[j].EtaDate)
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// buildFunnel computes per-stage totals and counts plus adjacent conversion
// rates over cumulative counts. Every stage key is always present.
func buildFunnel(opps []domain.ActionOpportunity) api.Funnel {
	totals := make(map[string]float64, len(domain.StageOrder))
	counts := make(map[string]int, len(domain.StageOrder))
	for _, s := range domain.StageOrder {
		totals[string(s)] = 0
		counts[string(s)] = 0
	}
	for _, opp := range opps {
		totals[string(opp.Stage)] = round2(totals[string(opp.Stage)] + opp.MonthlyImpact)
		counts[string(opp.Stage)]++
	}

	cumulative := make([]int, len(domain.StageOrder))
	for i := range domain.StageOrder {
		for j := i; j < len(domain.StageOrder); j++ {
			cumulative[i] += counts[string(domain.StageOrder[j])]
		}
	}

	rates := make(map[string]*float64, len(domain.StageOrder)-1)
	for i := 0; i < len(domain.StageOrder)-1; i++ {
		key := fmt.Sprintf("%s->%s", domain.StageOrder[i], domain.StageOrder[i+1])
		if cumulative[i] == 0 {
			rates[key] = nil
			continue
		}
		rate := round2(float64(cumulative[i+1]) / float64(cumulative[i]) * 100)
		rates[key] = &rate
	}

	return api.Funnel{StageTotals: totals, StageCounts: counts, ConversionRates: rates}
}

var (
	storageKeywords = []string{"volume", "snapshot", "storage", "disk"}
	networkKeywords = []string{"nat", "gateway", "egress", "network", "vpc"}
)

func matchesAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// buildWasteCategories fills the six fixed waste buckets from the lighter
// input lists. The keyword heuristics intentionally allow one resource to
// land in more than one bucket; correcting the overlap would change totals
// downstream consumers already reconcile against.
func (e *Engine) buildWasteCategories(input domain.SignalSet) []api.WasteCategory {
	var idleTotal, schedulingTotal, storageTotal, networkTotal float64
	var idleCount, schedulingCount, storageCount, networkCount int

	for _, r := range input.IdleResources {
		idleTotal += r.Savings
		idleCount++
		if matchesAny(r.Name, []string{"non-prod"}) || matchesAny(r.Type, []string{"non-prod"}) {
			schedulingTotal += r.Savings * 0.45
			schedulingCount++
		}
		if matchesAny(r.Name, storageKeywords) || matchesAny(r.Type, storageKeywords) {
			storageTotal += r.Savings
			storageCount++
		}
		if matchesAny(r.Name, networkKeywords) || matchesAny(r.Type, networkKeywords) {
			networkTotal += r.Savings
			networkCount++
		}
	}

	var overTotal float64
	for _, r := range input.RightSizing {
		overTotal += r.Savings
		if matchesAny(r.ResourceName, storageKeywords) {
			storageTotal += r.Savings
			storageCount++
		}
		if matchesAny(r.ResourceName, networkKeywords) {
			networkTotal += r.Savings
			networkCount++
		}
	}

	var commitmentTotal float64
	var commitmentCount int
	if input.Commitment != nil {
		commitmentTotal = input.Commitment.PotentialSavings
		commitmentCount = 1
	}

	return []api.WasteCategory{
		{Key: "idle", Label: "Idle", MonthlySavings: round2(idleTotal), ResourceCount: idleCount},
		{Key: "overprovisioned", Label: "Overprovisioned", MonthlySavings: round2(overTotal), ResourceCount: len(input.RightSizing)},
		{Key: "scheduling", Label: "Scheduling", MonthlySavings: round2(schedulingTotal), ResourceCount: schedulingCount},
		{Key: "storage", Label: "Storage", MonthlySavings: round2(storageTotal), ResourceCount: storageCount},
		{Key: "network", Label: "Network", MonthlySavings: round2(networkTotal), ResourceCount: networkCount},
		{Key: "commitment", Label: "Commitment", MonthlySavings: round2(commitmentTotal), ResourceCount: commitmentCount},
	}
}

const scatterLimit = 120

func scatterPoints(recs []domain.RightSizingRecommendation) []api.ScatterPoint {
	points := make([]api.ScatterPoint, 0, min(len(recs), scatterLimit))
	for i, r := range recs {
		if i == scatterLimit {
			break
		}
		points = append(points, api.ScatterPoint{
			ID:           r.ID,
			ResourceName: r.ResourceName,
			CurrentCPU:   r.CurrentCPU,
			CurrentCost:  round2(r.CurrentCost),
			Savings:      round2(r.Savings),
			RiskLevel:    r.RiskLevel,
			Region:       r.Region,
		})
	}
	return points
}

// buildUnitCards computes per-product unit economics: baseline unit cost from
// allocated spend, adjusted unit cost after in-pipeline savings land, and the
// top actions moving the number. Realized and verified savings are already in
// the baseline, so only earlier stages count toward the pipeline.
func buildUnitCards(opps []domain.ActionOpportunity) []api.UnitCard {
	type bucket struct {
		allocated float64
		units     float64
		pipeline  float64
		metric    string
		actions   []domain.ActionOpportunity
	}
	byProduct := map[string]*bucket{}
	for _, opp := range opps {
		b, ok := byProduct[opp.OwnerProduct]
		if !ok {
			b = &bucket{metric: opp.UnitMetric}
			byProduct[opp.OwnerProduct] = b
		}
		b.allocated += opp.CurrentSpendEstimate
		b.units += opp.UnitsProxy
		if !opp.Stage.Terminal() {
			b.pipeline += opp.MonthlyImpact
		}
		b.actions = append(b.actions, opp)
	}

	cards := make([]api.UnitCard, 0, len(byProduct))
	for product, b := range byProduct {
		units := math.Max(1, b.units)
		baseline := b.allocated / units
		adjusted := math.Max(0, b.allocated-b.pipeline) / units
		improvement := 0.0
		if baseline > 0 {
			improvement = (baseline - adjusted) / baseline * 100
		}

		sort.SliceStable(b.actions, func(i, j int) bool {
			if b.actions[i].UnitCostImpact != b.actions[j].UnitCostImpact {
				return b.actions[i].UnitCostImpact > b.actions[j].UnitCostImpact
			}
			return b.actions[i].ID < b.actions[j].ID
		})
		top := b.actions
		if len(top) > 3 {
			top = top[:3]
		}
		actions := make([]api.UnitCardAction, 0, len(top))
		for _, a := range top {
			actions = append(actions, api.UnitCardAction{
				ID:             a.ID,
				Title:          a.Title,
				UnitCostImpact: a.UnitCostImpact,
			})
		}

		cards = append(cards, api.UnitCard{
			Product:          product,
			BaselineUnitCost: round2(baseline),
			AdjustedUnitCost: round2(adjusted),
			UnitMetric:       b.metric,
			ImprovementPct:   round2(improvement),
			PipelineSavings:  round2(b.pipeline),
			TopActions:       actions,
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		si, sj := cards[i].ImprovementPct*0.85, cards[j].ImprovementPct*0.85
		if si != sj {
			return si > sj
		}
		return cards[i].Product < cards[j].Product
	})
	if len(cards) > 5 {
		cards = cards[:5]
	}
	return cards
}

// buildVerificationRows lists every opportunity past implementation, sorted by
// the absolute gap between claimed and verified savings.
func buildVerificationRows(opps []domain.ActionOpportunity) []api.VerificationRow {
	var rows []api.VerificationRow
	for _, opp := range opps {
		if opp.Stage.Index() < domain.StageImplemented.Index() {
			continue
		}
		low, high := confidenceBand(opp.VerifiedSavings, opp.VerificationBandPct)
		rows = append(rows, api.VerificationRow{
			ID:                 opp.ID,
			Title:              opp.Title,
			OwnerTeam:          opp.OwnerTeam,
			Stage:              string(opp.Stage),
			ClaimedSavings:     opp.ClaimedSavings,
			VerifiedSavings:    opp.VerifiedSavings,
			ConfidenceBandLow:  low,
			ConfidenceBandHigh: high,
			BandPct:            opp.VerificationBandPct,
			VerificationDelta:  opp.VerificationDelta,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := math.Abs(rows[i].VerificationDelta), math.Abs(rows[j].VerificationDelta)
		if di != dj {
			return di > dj
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// buildOwnerScoreboard scores each owning team on realized-vs-committed
// savings with overdue and blocked penalties, clamped to [0, 100].
func buildOwnerScoreboard(opps []domain.ActionOpportunity, now time.Time) []api.OwnerScoreboardRow {
	type ownerStats struct {
		committed  float64
		realized   float64
		overdue    int
		blocked    int
		cycleDays  []float64
	}
	byTeam := map[string]*ownerStats{}
	for _, opp := range opps {
		s, ok := byTeam[opp.OwnerTeam]
		if !ok {
			s = &ownerStats{}
			byTeam[opp.OwnerTeam] = s
		}
		if opp.Stage.Index() >= domain.StagePlanned.Index() {
			s.committed += opp.MonthlyImpact
		}
		if opp.Stage == domain.StageRealized {
			s.realized += opp.VerifiedSavings
			if opp.RealizedAt != nil {
				s.cycleDays = append(s.cycleDays, opp.RealizedAt.Sub(opp.IdentifiedAt).Hours()/24)
			}
		}
		if !opp.Stage.Terminal() && opp.EtaDate.Before(now) {
			s.overdue++
		}
		if opp.Blocked {
			s.blocked++
		}
	}

	rows := make([]api.OwnerScoreboardRow, 0, len(byTeam))
	for team, s := range byTeam {
		score := s.realized/math.Max(1, s.committed)*100 -
			float64(s.overdue)*5 - float64(s.blocked)*7
		rows = append(rows, api.OwnerScoreboardRow{
			OwnerTeam:           team,
			CommittedSavings:    round2(s.committed),
			RealizedSavings:     round2(s.realized),
			OverdueActions:      s.overdue,
			BlockedActions:      s.blocked,
			AccountabilityScore: round2(clamp(score, 0, 100)),
			MedianCycleDays:     round2(median(s.cycleDays)),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CommittedSavings != rows[j].CommittedSavings {
			return rows[i].CommittedSavings > rows[j].CommittedSavings
		}
		return rows[i].OwnerTeam < rows[j].OwnerTeam
	})
	return rows
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// buildBlockerHeatmap aggregates blocked opportunities into owner×category cells.
func buildBlockerHeatmap(opps []domain.ActionOpportunity) []api.BlockerHeatmapCell {
	type key struct{ team, category string }
	cells := map[key]*api.BlockerHeatmapCell{}
	for _, opp := range opps {
		if !opp.Blocked || opp.BlockedBy == nil {
			continue
		}
		k := key{opp.OwnerTeam, *opp.BlockedBy}
		c, ok := cells[k]
		if !ok {
			c = &api.BlockerHeatmapCell{OwnerTeam: k.team, Category: k.category}
			cells[k] = c
		}
		c.Count++
		c.MonthlyImpact = round2(c.MonthlyImpact + opp.MonthlyImpact)
	}

	out := make([]api.BlockerHeatmapCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MonthlyImpact != out[j].MonthlyImpact {
			return out[i].MonthlyImpact > out[j].MonthlyImpact
		}
		if out[i].OwnerTeam != out[j].OwnerTeam {
			return out[i].OwnerTeam < out[j].OwnerTeam
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// buildAnomalyBridgeCards produces the three fixed synthetic bridge cards
// linking recent anomaly patterns to waste categories. The card count is part
// of the model contract even on empty input.
func buildAnomalyBridgeCards(waste []api.WasteCategory, ranked []domain.ActionOpportunity) []api.AnomalyBridgeCard {
	byKey := map[string]float64{}
	for _, w := range waste {
		byKey[w.Key] = w.MonthlySavings
	}
	owner := func(i int) string {
		if i < len(ranked) {
			return ranked[i].OwnerTeam
		}
		return "unassigned"
	}
	return []api.AnomalyBridgeCard{
		{
			Key:              "nat-egress-spike",
			Title:            "NAT egress spike",
			Driver:           "Network",
			EstimatedSavings: round2(byKey["network"] * 0.35),
			ImpactedOwner:    owner(0),
		},
		{
			Key:              "storage-growth-burst",
			Title:            "Storage growth burst",
			Driver:           "Storage",
			EstimatedSavings: round2(byKey["storage"] * 0.4),
			ImpactedOwner:    owner(1),
		},
		{
			Key:              "new-service-spend-spike",
			Title:            "New service spend spike",
			Driver:           "Overprovisioned",
			EstimatedSavings: round2(byKey["overprovisioned"] * 0.3),
			ImpactedOwner:    owner(2),
		},
	}
}

func buildCommitment(gap *domain.CommitmentGap) api.Commitment {
	if gap == nil {
		return api.Commitment{}
	}
	return api.Commitment{
		Recommendation:      gap.Recommendation,
		PotentialSavings:    round2(gap.PotentialSavings),
		PredictableWorkload: gap.PredictableWorkload,
		AnnualizedSavings:   round2(gap.PotentialSavings * 12),
	}
}

func buildUnderReviewCoverage(opps []domain.ActionOpportunity) api.UnderReviewCoverage {
	var underReview, total float64
	var count int
	for _, opp := range opps {
		total += opp.CurrentSpendEstimate
		if !opp.Stage.Terminal() {
			underReview += opp.CurrentSpendEstimate
			count++
		}
	}
	pct := 0.0
	if total > 0 {
		pct = underReview / total * 100
	}
	return api.UnderReviewCoverage{
		OpportunityCount:   count,
		SpendUnderReview:   round2(underReview),
		TotalSpendEstimate: round2(total),
		CoveragePct:        round2(pct),
	}
}
