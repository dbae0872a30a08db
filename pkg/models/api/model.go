package api

import (
	"time"

	"github.com/de-tools/action-center/pkg/models/domain"
)

// ActionCenterModel is the complete decision model returned to consumers.
// Top-level key names and nesting are a published contract; renaming a field
// is a breaking change and requires a FormulaVersion bump.
type ActionCenterModel struct {
	Opportunities      []domain.ActionOpportunity `json:"opportunities"`
	TopRanked          []domain.ActionOpportunity `json:"topRanked"`
	Executive          ExecutiveSummary           `json:"executive"`
	Funnel             Funnel                     `json:"funnel"`
	WasteCategories    []WasteCategory            `json:"wasteCategories"`
	RightsizingScatter []ScatterPoint             `json:"rightsizingScatter"`
	UnitCards          []UnitCard                 `json:"unitCards"`
	VerificationRows   []VerificationRow          `json:"verificationRows"`
	OwnerScoreboard    []OwnerScoreboardRow       `json:"ownerScoreboard"`
	BlockerHeatmap     []BlockerHeatmapCell       `json:"blockerHeatmap"`
	AnomalyBridgeCards []AnomalyBridgeCard        `json:"anomalyBridgeCards"`
	Commitment         Commitment                 `json:"commitment"`
	UnderReviewCoverage UnderReviewCoverage       `json:"underReviewCoverage"`
	Meta               Meta                       `json:"meta"`
}

// Funnel maps are keyed by stage name and always carry all six stages.
// Conversion rates are nil when the upstream cumulative count is zero.
type Funnel struct {
	StageTotals     map[string]float64  `json:"stageTotals"`
	StageCounts     map[string]int      `json:"stageCounts"`
	ConversionRates map[string]*float64 `json:"conversionRates"`
}

type WasteCategory struct {
	Key             string  `json:"key"`
	Label           string  `json:"label"`
	MonthlySavings  float64 `json:"monthlySavings"`
	ResourceCount   int     `json:"resourceCount"`
}

// ScatterPoint re-projects one right-sizing recommendation for chart consumption.
type ScatterPoint struct {
	ID           string  `json:"id"`
	ResourceName string  `json:"resourceName"`
	CurrentCPU   float64 `json:"currentCPU"`
	CurrentCost  float64 `json:"currentCost"`
	Savings      float64 `json:"savings"`
	RiskLevel    string  `json:"riskLevel"`
	Region       string  `json:"region"`
}

type UnitCardAction struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	UnitCostImpact float64 `json:"unitCostImpact"`
}

type UnitCard struct {
	Product          string           `json:"product"`
	BaselineUnitCost float64          `json:"baselineUnitCost"`
	AdjustedUnitCost float64          `json:"adjustedUnitCost"`
	UnitMetric       string           `json:"unitMetric"`
	ImprovementPct   float64          `json:"improvementPct"`
	PipelineSavings  float64          `json:"pipelineSavings"`
	TopActions       []UnitCardAction `json:"topActions"`
}

type VerificationRow struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	OwnerTeam         string  `json:"ownerTeam"`
	Stage             string  `json:"stage"`
	ClaimedSavings    float64 `json:"claimedSavings"`
	VerifiedSavings   float64 `json:"verifiedSavings"`
	ConfidenceBandLow float64 `json:"confidenceBandLow"`
	ConfidenceBandHigh float64 `json:"confidenceBandHigh"`
	BandPct           float64 `json:"bandPct"`
	VerificationDelta float64 `json:"verificationDelta"`
}

type OwnerScoreboardRow struct {
	OwnerTeam           string  `json:"ownerTeam"`
	CommittedSavings    float64 `json:"committedSavings"`
	RealizedSavings     float64 `json:"realizedSavings"`
	OverdueActions      int     `json:"overdueActions"`
	BlockedActions      int     `json:"blockedActions"`
	AccountabilityScore float64 `json:"accountabilityScore"`
	MedianCycleDays     float64 `json:"medianCycleDays"`
}

type BlockerHeatmapCell struct {
	OwnerTeam     string  `json:"ownerTeam"`
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	MonthlyImpact float64 `json:"monthlyImpact"`
}

type AnomalyBridgeCard struct {
	Key              string  `json:"key"`
	Title            string  `json:"title"`
	Driver           string  `json:"driver"`
	EstimatedSavings float64 `json:"estimatedSavings"`
	ImpactedOwner    string  `json:"impactedOwner"`
}

type TopAction struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	OwnerTeam     string    `json:"ownerTeam"`
	MonthlyImpact float64   `json:"monthlyImpact"`
	PriorityScore float64   `json:"priorityScore"`
	EtaDate       time.Time `json:"etaDate"`
	NextStep      string    `json:"nextStep"`
}

type ExecutiveSummary struct {
	ConfidenceWeightedSavings float64     `json:"confidenceWeightedSavings"`
	RealizedSavingsMtd        float64     `json:"realizedSavingsMtd"`
	SpendUnderReviewPct       float64     `json:"spendUnderReviewPct"`
	OptimizationOffsetPct     float64     `json:"optimizationOffsetPct"`
	Top5Actions               []TopAction `json:"top5Actions"`
	Narrative                 string      `json:"narrative"`
}

// Commitment is the pass-through commitment gap plus derived figures; zero-valued
// when no gap was supplied.
type Commitment struct {
	Recommendation      string  `json:"recommendation"`
	PotentialSavings    float64 `json:"potentialSavings"`
	PredictableWorkload float64 `json:"predictableWorkload"`
	AnnualizedSavings   float64 `json:"annualizedSavings"`
}

type UnderReviewCoverage struct {
	OpportunityCount   int     `json:"opportunityCount"`
	SpendUnderReview   float64 `json:"spendUnderReview"`
	TotalSpendEstimate float64 `json:"totalSpendEstimate"`
	CoveragePct        float64 `json:"coveragePct"`
}

type Meta struct {
	GeneratedAt    string   `json:"generatedAt"`
	FormulaVersion string   `json:"formulaVersion"`
	StageOrder     []string `json:"stageOrder"`
	Currency       string   `json:"currency"`
}
