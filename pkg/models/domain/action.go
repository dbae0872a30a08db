package domain

import "time"

// Stage is the lifecycle position of an opportunity, strictly ordered from
// detection to realized savings. Backward transitions are not modeled.
type Stage string

const (
	StageIdentified  Stage = "identified"
	StageValidated   Stage = "validated"
	StagePlanned     Stage = "planned"
	StageImplemented Stage = "implemented"
	StageVerified    Stage = "verified"
	StageRealized    Stage = "realized"
)

// StageOrder lists stages in lifecycle order; index position drives ETA and
// claim-factor computation.
var StageOrder = []Stage{
	StageIdentified,
	StageValidated,
	StagePlanned,
	StageImplemented,
	StageVerified,
	StageRealized,
}

func (s Stage) Valid() bool {
	switch s {
	case StageIdentified, StageValidated, StagePlanned,
		StageImplemented, StageVerified, StageRealized:
		return true
	}
	return false
}

// Index returns the ordinal position of the stage, or -1 for unknown values.
func (s Stage) Index() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether the stage is past the point of active work.
func (s Stage) Terminal() bool {
	return s == StageVerified || s == StageRealized
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

type Effort string

const (
	EffortSmall  Effort = "S"
	EffortMedium Effort = "M"
	EffortLarge  Effort = "L"
)

type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

type SourceType string

const (
	SourceIdle        SourceType = "idle"
	SourceRightsizing SourceType = "rightsizing"
	SourceCommitment  SourceType = "commitment"
	SourceGeneral     SourceType = "general"
)

// ActionOpportunity is the fully-populated canonical record derived from one
// RawOpportunity. It is created fresh on every build and never persisted.
// Field names follow the published model contract.
type ActionOpportunity struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	OwnerTeam    string `json:"ownerTeam"`
	OwnerProduct string `json:"ownerProduct"`

	MonthlyImpact        float64 `json:"monthlyImpact"`
	UnitCostImpact       float64 `json:"unitCostImpact"`
	UnitMetric           string  `json:"unitMetric"`
	CurrentSpendEstimate float64 `json:"currentSpendEstimate"`
	UnitsProxy           float64 `json:"unitsProxy"`

	Confidence       Confidence `json:"confidence"`
	Effort           Effort     `json:"effort"`
	Risk             Risk       `json:"risk"`
	RecurrenceFactor float64    `json:"recurrenceFactor"`

	Stage          Stage     `json:"stage"`
	WorkflowStatus string    `json:"workflowStatus"`
	NextStep       string    `json:"nextStep"`
	EtaDate        time.Time `json:"etaDate"`
	EtaDays        int       `json:"etaDays"`
	BlockedBy      *string   `json:"blockedBy"`
	Blocked        bool      `json:"blocked"`

	PriorityScore       float64 `json:"priorityScore"`
	ClaimedSavings      float64 `json:"claimedSavings"`
	VerifiedSavings     float64 `json:"verifiedSavings"`
	VerificationBandPct float64 `json:"verificationBandPct"`
	VerificationDelta   float64 `json:"verificationDelta"`

	IdentifiedAt    time.Time  `json:"identifiedAt"`
	RealizedAt      *time.Time `json:"realizedAt"`
	Assumptions     []string   `json:"assumptions"`
	RiskFlags       []string   `json:"riskFlags"`
	Evidence        []string   `json:"evidence"`
	ResolutionPaths []string   `json:"resolutionPaths"`
	SourceType      SourceType `json:"sourceType"`
}
