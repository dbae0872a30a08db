package actioncenter

import "github.com/de-tools/action-center/pkg/models/domain"

// FormulaVersion tags the derivation formulas baked into this build of the
// engine. Any change to a weight table, threshold, or formula in this package
// must bump it so downstream consumers can detect incompatible recomputation.
const FormulaVersion = "ac-2025.3"

const currency = "USD"

// Tables holds every constant lookup the engine consults. It is constructed
// once at process start and injected, keeping Build a pure function of its
// explicit arguments.
type Tables struct {
	TeamPool        []string
	ProductPool     []string
	UnitMetricPool  []string
	BlockerCategories []string

	ConfidenceWeight map[domain.Confidence]float64
	BandPct          map[domain.Confidence]float64
	EffortPenalty    map[domain.Effort]float64
	RiskPenalty      map[domain.Risk]float64
	RecurrenceFactor map[domain.SourceType]float64

	WorkflowStatus map[domain.Stage]string
	NextStep       map[domain.Stage]string
	EffortBaseDays map[domain.Effort]int
}

// DefaultTables returns the engine's standard configuration.
func DefaultTables() Tables {
	return Tables{
		TeamPool: []string{
			"platform-engineering",
			"data-platform",
			"core-services",
			"ml-infrastructure",
			"edge-delivery",
			"internal-tools",
		},
		ProductPool: []string{
			"Checkout",
			"Search",
			"Analytics",
			"Notifications",
			"Identity",
			"Streaming",
		},
		UnitMetricPool: []string{
			"per-request",
			"per-1k-events",
			"per-active-user",
			"per-GB-processed",
			"per-job-run",
			"per-tenant",
		},
		BlockerCategories: []string{
			"Change freeze",
			"Awaiting owner approval",
			"Pending security review",
			"Dependency upgrade",
			"Capacity planning",
			"Budget sign-off",
		},
		ConfidenceWeight: map[domain.Confidence]float64{
			domain.ConfidenceHigh:   0.9,
			domain.ConfidenceMedium: 0.6,
			domain.ConfidenceLow:    0.3,
		},
		BandPct: map[domain.Confidence]float64{
			domain.ConfidenceHigh:   8,
			domain.ConfidenceMedium: 15,
			domain.ConfidenceLow:    25,
		},
		EffortPenalty: map[domain.Effort]float64{
			domain.EffortSmall:  1,
			domain.EffortMedium: 1.3,
			domain.EffortLarge:  1.7,
		},
		RiskPenalty: map[domain.Risk]float64{
			domain.RiskLow:    1,
			domain.RiskMedium: 1.35,
			domain.RiskHigh:   1.9,
		},
		RecurrenceFactor: map[domain.SourceType]float64{
			domain.SourceIdle:        0.85,
			domain.SourceRightsizing: 1.0,
			domain.SourceCommitment:  1.1,
			domain.SourceGeneral:     0.8,
		},
		WorkflowStatus: map[domain.Stage]string{
			domain.StageIdentified:  "Identified",
			domain.StageValidated:   "Validated",
			domain.StagePlanned:     "Planned",
			domain.StageImplemented: "In Progress",
			domain.StageVerified:    "Verified",
			domain.StageRealized:    "Realized",
		},
		NextStep: map[domain.Stage]string{
			domain.StageIdentified:  "Validate savings estimate with owning team",
			domain.StageValidated:   "Create implementation plan and assign owner",
			domain.StagePlanned:     "Schedule change window and begin rollout",
			domain.StageImplemented: "Submit verification request with evidence",
			domain.StageVerified:    "Confirm realized savings in billing data",
			domain.StageRealized:    "Archive after one full billing cycle",
		},
		EffortBaseDays: map[domain.Effort]int{
			domain.EffortSmall:  7,
			domain.EffortMedium: 14,
			domain.EffortLarge:  28,
		},
	}
}
