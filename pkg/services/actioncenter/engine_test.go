package actioncenter

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/de-tools/action-center/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// mixedSignalSet builds a varied input snapshot: titles hitting every source
// keyword, missing ids/confidences, tracker overrides across all stages.
func mixedSignalSet(n int) domain.SignalSet {
	confidences := []string{"", "High", "medium confidence", "LOW", ""}
	titles := []string{
		"Idle worker cleanup batch %d",
		"Right-size prod cluster %d",
		"Commitment coverage gap %d",
		"Orphaned load balancer sweep %d",
		"Compliance snapshot retention review %d",
	}
	var opps []domain.RawOpportunity
	for i := 0; i < n; i++ {
		opp := domain.RawOpportunity{
			Title:             fmt.Sprintf(titles[i%len(titles)], i),
			Savings:           float64(i) * 1234.5,
			Confidence:        confidences[i%len(confidences)],
			AffectedResources: i % 25,
		}
		if i%3 != 0 {
			opp.ID = fmt.Sprintf("opp-%03d", i)
		}
		if i%4 == 0 {
			opp.OwnerTeam = "core-services"
		}
		opps = append(opps, opp)
	}

	statuses := []string{"Identified", "Under review", "Planned", "In progress", "Verified", "Done"}
	var tracker []domain.TrackerItem
	for i := 0; i < n; i += 2 {
		tracker = append(tracker, domain.TrackerItem{
			Title:  opps[i].Title,
			Status: statuses[i%len(statuses)],
		})
	}

	return domain.SignalSet{
		Opportunities: opps,
		IdleResources: []domain.IdleResource{
			{Type: "ec2", Name: "non-prod-batch-runner", Region: "us-east-1", Risk: "low", Savings: 420},
			{Type: "ebs-volume", Name: "stale-snapshot-volume", Region: "us-east-1", Risk: "low", Savings: 180},
			{Type: "nat-gateway", Name: "unused-nat-gateway", Region: "eu-west-1", Risk: "medium", Savings: 310},
		},
		RightSizing: []domain.RightSizingRecommendation{
			{ID: "rs-1", ResourceName: "api-fleet", CurrentCPU: 12, CurrentCost: 9000, Savings: 2100, RiskLevel: "low", Region: "us-east-1"},
			{ID: "rs-2", ResourceName: "storage-tier-cache", CurrentCPU: 35, CurrentCost: 4000, Savings: 900, RiskLevel: "medium", Region: "us-west-2"},
		},
		Commitment: &domain.CommitmentGap{
			Recommendation:      "Purchase 1-year compute savings plan",
			PotentialSavings:    5400,
			PredictableWorkload: 0.72,
		},
		TrackerItems: tracker,
	}
}

func TestBuild_Determinism(t *testing.T) {
	engine := NewEngine(DefaultTables())
	input := mixedSignalSet(40)

	first, err := json.Marshal(engine.Build(input, testNow))
	require.NoError(t, err)
	second, err := json.Marshal(engine.Build(input, testNow))
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input and reference time must produce byte-identical output")
}

func TestBuild_StageClosureAndScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(mixedSignalSet(40), testNow)

	require.Len(t, model.Opportunities, 40)
	for _, opp := range model.Opportunities {
		assert.True(t, opp.Stage.Valid(), "stage %q out of the closed set", opp.Stage)
		assert.True(t, opp.Confidence.Valid())
		assert.GreaterOrEqual(t, opp.PriorityScore, 0.0)
		assert.GreaterOrEqual(t, opp.MonthlyImpact, 0.0)
	}
}

func TestBuild_FunnelConsistency(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(mixedSignalSet(40), testNow)

	var stageSum, impactSum float64
	for _, total := range model.Funnel.StageTotals {
		stageSum += total
	}
	var counted int
	for _, opp := range model.Opportunities {
		impactSum += opp.MonthlyImpact
		counted++
	}

	assert.InDelta(t, impactSum, stageSum, 0.01*float64(counted))
	assert.Len(t, model.Funnel.StageTotals, 6)
	assert.Len(t, model.Funnel.StageCounts, 6)

	total := 0
	for _, c := range model.Funnel.StageCounts {
		total += c
	}
	assert.Equal(t, 40, total)
}

func TestBuild_VerificationBandContainment(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(mixedSignalSet(60), testNow)

	require.NotEmpty(t, model.VerificationRows)
	for _, row := range model.VerificationRows {
		assert.LessOrEqual(t, row.ConfidenceBandLow, row.VerifiedSavings)
		assert.GreaterOrEqual(t, row.ConfidenceBandHigh, row.VerifiedSavings)
		if row.VerifiedSavings >= 1 {
			width := (row.ConfidenceBandHigh - row.ConfidenceBandLow) / row.VerifiedSavings
			assert.InDelta(t, 2*row.BandPct/100, width, 0.01)
		}
	}
}

func TestBuild_NoClaimBeforeImplementation(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(mixedSignalSet(40), testNow)

	for _, opp := range model.Opportunities {
		if opp.Stage.Index() < domain.StageImplemented.Index() {
			assert.Zero(t, opp.ClaimedSavings, "opportunity %s claimed savings before implementation", opp.ID)
			assert.Zero(t, opp.VerifiedSavings)
		}
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(domain.SignalSet{}, testNow)

	assert.Empty(t, model.TopRanked)
	assert.Empty(t, model.UnitCards)
	assert.Empty(t, model.VerificationRows)
	for stage, total := range model.Funnel.StageTotals {
		assert.Zero(t, total, "stage %s total", stage)
	}
	require.Len(t, model.AnomalyBridgeCards, 3)
	for _, card := range model.AnomalyBridgeCards {
		assert.Zero(t, card.EstimatedSavings)
		assert.Equal(t, "unassigned", card.ImpactedOwner)
	}
	assert.Equal(t, FormulaVersion, model.Meta.FormulaVersion)
	assert.Equal(t, "USD", model.Meta.Currency)
	assert.Equal(t, []string{"identified", "validated", "planned", "implemented", "verified", "realized"}, model.Meta.StageOrder)
}

func TestBuild_SingleRecord(t *testing.T) {
	engine := NewEngine(DefaultTables())
	input := domain.SignalSet{
		Opportunities: []domain.RawOpportunity{
			{ID: "opp-1", Title: "Idle EC2 Cleanup", Savings: 1000, AffectedResources: 5},
		},
	}

	model := engine.Build(input, testNow)
	require.Len(t, model.Opportunities, 1)
	opp := model.Opportunities[0]

	assert.Equal(t, domain.SourceIdle, opp.SourceType)
	assert.Equal(t, 0.85, opp.RecurrenceFactor)
	assert.Equal(t, domain.EffortSmall, opp.Effort)
	assert.Equal(t, 1000.0, opp.MonthlyImpact)

	// Same id/title must reproduce the hash-derived fields.
	again := engine.Build(input, testNow).Opportunities[0]
	assert.Equal(t, opp.Stage, again.Stage)
	assert.Equal(t, opp.Confidence, again.Confidence)
	assert.Equal(t, opp.Risk, again.Risk)
	assert.Equal(t, opp.OwnerTeam, again.OwnerTeam)
	assert.Equal(t, opp.OwnerProduct, again.OwnerProduct)
}

func TestBuild_OwnerScoreboardBounds(t *testing.T) {
	engine := NewEngine(DefaultTables())

	t.Run("mixed input", func(t *testing.T) {
		model := engine.Build(mixedSignalSet(60), testNow)
		require.NotEmpty(t, model.OwnerScoreboard)
		for _, row := range model.OwnerScoreboard {
			assert.GreaterOrEqual(t, row.AccountabilityScore, 0.0)
			assert.LessOrEqual(t, row.AccountabilityScore, 100.0)
			assert.GreaterOrEqual(t, row.MedianCycleDays, 0.0)
		}
	})

	t.Run("tracker pins every record to an active stage", func(t *testing.T) {
		input := mixedSignalSet(30)
		input.TrackerItems = nil
		for i := range input.Opportunities {
			input.TrackerItems = append(input.TrackerItems, domain.TrackerItem{
				Title:  input.Opportunities[i].Title,
				Status: "In progress",
			})
		}
		model := engine.Build(input, testNow.AddDate(1, 0, 0))
		for _, row := range model.OwnerScoreboard {
			assert.GreaterOrEqual(t, row.AccountabilityScore, 0.0)
			assert.LessOrEqual(t, row.AccountabilityScore, 100.0)
		}
	})
}

func TestBuild_TopRankedSizeBound(t *testing.T) {
	engine := NewEngine(DefaultTables())

	for _, n := range []int{0, 3, 10, 25} {
		model := engine.Build(mixedSignalSet(n), testNow)
		expected := n
		if expected > 10 {
			expected = 10
		}
		assert.Len(t, model.TopRanked, expected, "n=%d", n)
	}
}

func TestBuild_ExecutiveTop5(t *testing.T) {
	engine := NewEngine(DefaultTables())
	model := engine.Build(mixedSignalSet(60), testNow)

	assert.LessOrEqual(t, len(model.Executive.Top5Actions), 5)
	for i, action := range model.Executive.Top5Actions {
		if i > 0 {
			assert.GreaterOrEqual(t, model.Executive.Top5Actions[i-1].PriorityScore, action.PriorityScore)
		}
	}
	assert.Contains(t, model.Executive.Narrative, "60 optimization opportunities")
}

func TestStableHash(t *testing.T) {
	assert.Equal(t, stableHash("Idle EC2 Cleanup-opp-1"), stableHash("Idle EC2 Cleanup-opp-1"))
	assert.NotEqual(t, stableHash("a"), stableHash("b"))
	for _, s := range []string{"", "x", "Idle EC2 Cleanup-opp-1", "a much longer string that wraps the 32-bit accumulator several times over"} {
		assert.GreaterOrEqual(t, stableHash(s), 0, "hash of %q", s)
	}
}

func TestP95(t *testing.T) {
	assert.Equal(t, 1.0, p95(nil))
	assert.Equal(t, 1.0, p95([]float64{0, 0.5}))

	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	idx := int(math.Floor(0.95 * 99))
	assert.Equal(t, float64(idx+1), p95(values))
}
