package api

import "github.com/de-tools/action-center/pkg/models/domain"

// BuildRequest is the wire form of one input snapshot. Upstream detectors and
// callers of the model endpoint both speak this shape; any field may be
// omitted and degrades to its zero value.
type BuildRequest struct {
	Opportunities              []RawOpportunity            `json:"opportunities"`
	IdleResources              []IdleResource              `json:"idleResources"`
	RightSizingRecommendations []RightSizingRecommendation `json:"rightSizingRecommendations"`
	CommitmentGap              *CommitmentGap              `json:"commitmentGap"`
	TrackerItems               []TrackerItem               `json:"trackerItems"`
}

type RawOpportunity struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Savings           float64  `json:"savings"`
	Confidence        string   `json:"confidence"`
	AffectedResources int      `json:"affectedResources"`
	OwnerTeam         string   `json:"ownerTeam"`
	OwnerProduct      string   `json:"ownerProduct"`
	Evidence          []string `json:"evidence"`
	ResolutionPaths   []string `json:"resolutionPaths"`
	CostImpact        float64  `json:"costImpact"`
}

type IdleResource struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Risk    string  `json:"risk"`
	Savings float64 `json:"savings"`
}

type RightSizingRecommendation struct {
	ID           string  `json:"id"`
	ResourceName string  `json:"resourceName"`
	CurrentCPU   float64 `json:"currentCPU"`
	CurrentCost  float64 `json:"currentCost"`
	Savings      float64 `json:"savings"`
	RiskLevel    string  `json:"riskLevel"`
	Region       string  `json:"region"`
}

type CommitmentGap struct {
	Recommendation      string  `json:"recommendation"`
	PotentialSavings    float64 `json:"potentialSavings"`
	PredictableWorkload float64 `json:"predictableWorkload"`
}

type TrackerItem struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// FromDomain maps a collected signal set back to the wire form for snapshot
// persistence.
func FromDomain(set domain.SignalSet) BuildRequest {
	req := BuildRequest{}
	for _, o := range set.Opportunities {
		req.Opportunities = append(req.Opportunities, RawOpportunity{
			ID:                o.ID,
			Title:             o.Title,
			Savings:           o.Savings,
			Confidence:        o.Confidence,
			AffectedResources: o.AffectedResources,
			OwnerTeam:         o.OwnerTeam,
			OwnerProduct:      o.OwnerProduct,
			Evidence:          o.Evidence,
			ResolutionPaths:   o.ResolutionPaths,
			CostImpact:        o.CostImpact,
		})
	}
	for _, i := range set.IdleResources {
		req.IdleResources = append(req.IdleResources, IdleResource{
			Type:    i.Type,
			Name:    i.Name,
			Region:  i.Region,
			Risk:    i.Risk,
			Savings: i.Savings,
		})
	}
	for _, rs := range set.RightSizing {
		req.RightSizingRecommendations = append(req.RightSizingRecommendations, RightSizingRecommendation{
			ID:           rs.ID,
			ResourceName: rs.ResourceName,
			CurrentCPU:   rs.CurrentCPU,
			CurrentCost:  rs.CurrentCost,
			Savings:      rs.Savings,
			RiskLevel:    rs.RiskLevel,
			Region:       rs.Region,
		})
	}
	if set.Commitment != nil {
		req.CommitmentGap = &CommitmentGap{
			Recommendation:      set.Commitment.Recommendation,
			PotentialSavings:    set.Commitment.PotentialSavings,
			PredictableWorkload: set.Commitment.PredictableWorkload,
		}
	}
	for _, t := range set.TrackerItems {
		req.TrackerItems = append(req.TrackerItems, TrackerItem{
			Title:  t.Title,
			Status: t.Status,
		})
	}
	return req
}

// ToDomain maps the wire snapshot onto the engine's input type.
func (r BuildRequest) ToDomain() domain.SignalSet {
	set := domain.SignalSet{}
	for _, o := range r.Opportunities {
		set.Opportunities = append(set.Opportunities, domain.RawOpportunity{
			ID:                o.ID,
			Title:             o.Title,
			Savings:           o.Savings,
			Confidence:        o.Confidence,
			AffectedResources: o.AffectedResources,
			OwnerTeam:         o.OwnerTeam,
			OwnerProduct:      o.OwnerProduct,
			Evidence:          o.Evidence,
			ResolutionPaths:   o.ResolutionPaths,
			CostImpact:        o.CostImpact,
		})
	}
	for _, i := range r.IdleResources {
		set.IdleResources = append(set.IdleResources, domain.IdleResource{
			Type:    i.Type,
			Name:    i.Name,
			Region:  i.Region,
			Risk:    i.Risk,
			Savings: i.Savings,
		})
	}
	for _, rs := range r.RightSizingRecommendations {
		set.RightSizing = append(set.RightSizing, domain.RightSizingRecommendation{
			ID:           rs.ID,
			ResourceName: rs.ResourceName,
			CurrentCPU:   rs.CurrentCPU,
			CurrentCost:  rs.CurrentCost,
			Savings:      rs.Savings,
			RiskLevel:    rs.RiskLevel,
			Region:       rs.Region,
		})
	}
	if r.CommitmentGap != nil {
		set.Commitment = &domain.CommitmentGap{
			Recommendation:      r.CommitmentGap.Recommendation,
			PotentialSavings:    r.CommitmentGap.PotentialSavings,
			PredictableWorkload: r.CommitmentGap.PredictableWorkload,
		}
	}
	for _, t := range r.TrackerItems {
		set.TrackerItems = append(set.TrackerItems, domain.TrackerItem{
			Title:  t.Title,
			Status: t.Status,
		})
	}
	return set
}
