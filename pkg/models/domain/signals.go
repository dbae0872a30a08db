package domain

// RawOpportunity is a partially-specified optimization signal produced by an
// upstream rule detector. Every field may be missing; the enricher fills the
// gaps deterministically.
type RawOpportunity struct {
	ID                string
	Title             string
	Savings           float64
	Confidence        string
	AffectedResources int
	OwnerTeam         string
	OwnerProduct      string
	Evidence          []string
	ResolutionPaths   []string
	CostImpact        float64
}

type IdleResource struct {
	Type    string
	Name    string
	Region  string
	Risk    string
	Savings float64
}

type RightSizingRecommendation struct {
	ID           string
	ResourceName string
	CurrentCPU   float64
	CurrentCost  float64
	Savings      float64
	RiskLevel    string
	Region       string
}

type CommitmentGap struct {
	Recommendation      string
	PotentialSavings    float64
	PredictableWorkload float64
}

// TrackerItem is a manually curated workflow override, keyed by lower-cased
// title when matched against opportunities.
type TrackerItem struct {
	Title  string
	Status string
}

// SignalSet is one complete input snapshot for a model build. All lists may be
// empty and Commitment may be nil; the engine still produces a well-formed model.
type SignalSet struct {
	Opportunities []RawOpportunity
	IdleResources []IdleResource
	RightSizing   []RightSizingRecommendation
	Commitment    *CommitmentGap
	TrackerItems  []TrackerItem
}
