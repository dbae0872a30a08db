package actioncenter

import (
	"strings"
	"time"

	"github.com/de-tools/action-center/pkg/models/api"
	"github.com/de-tools/action-center/pkg/models/domain"
)

// Engine builds the full Action Center decision model from one input snapshot.
// It holds no state beyond its injected constant tables; Build is a pure
// function of (input, now), so concurrent invocations are safe without locks.
type Engine struct {
	tables Tables
}

func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// Build runs the single-pass pipeline: canonicalize every raw opportunity,
// then derive every aggregate from the one canonical list. The reference time
// is captured by the caller and threaded through every date computation.
func (e *Engine) Build(input domain.SignalSet, now time.Time) api.ActionCenterModel {
	now = now.UTC()

	tracker := make(map[string]string, len(input.TrackerItems))
	for _, item := range input.TrackerItems {
		tracker[strings.ToLower(item.Title)] = item.Status
	}

	impacts := make([]float64, 0, len(input.Opportunities))
	for _, raw := range input.Opportunities {
		impacts = append(impacts, monthlyImpactOf(raw))
	}
	p95Impact := p95(impacts)

	opportunities := make([]domain.ActionOpportunity, 0, len(input.Opportunities))
	for i, raw := range input.Opportunities {
		opportunities = append(opportunities, e.enrich(raw, i, tracker, now, p95Impact))
	}

	ranked := topRanked(opportunities, 10)
	waste := e.buildWasteCategories(input)

	return api.ActionCenterModel{
		Opportunities:       opportunities,
		TopRanked:           ranked,
		Executive:           e.buildExecutive(opportunities, now),
		Funnel:              buildFunnel(opportunities),
		WasteCategories:     waste,
		RightsizingScatter:  scatterPoints(input.RightSizing),
		UnitCards:           buildUnitCards(opportunities),
		VerificationRows:    buildVerificationRows(opportunities),
		OwnerScoreboard:     buildOwnerScoreboard(opportunities, now),
		BlockerHeatmap:      buildBlockerHeatmap(opportunities),
		AnomalyBridgeCards:  buildAnomalyBridgeCards(waste, ranked),
		Commitment:          buildCommitment(input.Commitment),
		UnderReviewCoverage: buildUnderReviewCoverage(opportunities),
		Meta: api.Meta{
			GeneratedAt:    now.Format(time.RFC3339),
			FormulaVersion: FormulaVersion,
			StageOrder:     stageNames(),
			Currency:       currency,
		},
	}
}

func stageNames() []string {
	names := make([]string, len(domain.StageOrder))
	for i, s := range domain.StageOrder {
		names[i] = string(s)
	}
	return names
}
