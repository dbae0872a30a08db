package actioncenter

import (
	"strings"
	"time"

	"github.com/de-tools/action-center/pkg/models/domain"
)

// classifyStage assigns the lifecycle stage, workflow labels, ETA, and blocker
// fields. An explicit tracker status for the (lower-cased) title wins over the
// hash-derived default.
func (e *Engine) classifyStage(
	opp *domain.ActionOpportunity,
	tracker map[string]string,
	now time.Time,
	hash int,
) {
	stage := domain.Stage("")
	if status, ok := tracker[strings.ToLower(opp.Title)]; ok {
		stage = stageFromStatus(status)
	}
	if stage == "" {
		stage = domain.StageOrder[hash%len(domain.StageOrder)]
	}
	opp.Stage = stage
	opp.WorkflowStatus = e.tables.WorkflowStatus[stage]
	opp.NextStep = e.tables.NextStep[stage]

	if stage.Terminal() {
		// Completed work: pin the ETA two days in the past.
		opp.EtaDays = -2
		opp.EtaDate = now.AddDate(0, 0, -2)
	} else {
		days := e.tables.EffortBaseDays[opp.Effort] - 2*stage.Index() + hash%6
		opp.EtaDays = days
		opp.EtaDate = now.AddDate(0, 0, days)
	}

	opp.BlockedBy = nil
	if !stage.Terminal() && hash%7 == 0 {
		category := e.tables.BlockerCategories[hash%len(e.tables.BlockerCategories)]
		opp.BlockedBy = &category
	}
	opp.Blocked = opp.BlockedBy != nil
}

// stageFromStatus maps a free-form tracker status onto a stage by substring
// match, returning "" when no keyword applies.
func stageFromStatus(status string) domain.Stage {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "realized"), strings.Contains(s, "done"):
		return domain.StageRealized
	case strings.Contains(s, "verified"):
		return domain.StageVerified
	case strings.Contains(s, "progress"):
		return domain.StageImplemented
	case strings.Contains(s, "planned"):
		return domain.StagePlanned
	case strings.Contains(s, "review"), strings.Contains(s, "validated"):
		return domain.StageValidated
	case strings.Contains(s, "identified"):
		return domain.StageIdentified
	}
	return ""
}
