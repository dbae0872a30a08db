package aws

import (
	"context"
	"fmt"
	"sort"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/action-center/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Collector runs every AWS detector and assembles their output into one
// signal set. Individual detector failures are logged and skipped so a partial
// capture still produces a usable snapshot.
type Collector struct {
	idle        *idleDetector
	rightsizing *rightsizingDetector
	storage     *storageDetector
	database    *databaseDetector
}

func NewCollector(cfg awssdk.Config) *Collector {
	return &Collector{
		idle:        NewIdleDetector(cfg),
		rightsizing: NewRightsizingDetector(cfg),
		storage:     NewStorageDetector(cfg),
		database:    NewDatabaseDetector(cfg),
	}
}

func (c *Collector) Collect(ctx context.Context) (domain.SignalSet, error) {
	logger := zerolog.Ctx(ctx)
	set := domain.SignalSet{}

	idle, err := c.idle.DetectIdle(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("idle detector failed")
	}
	set.IdleResources = append(set.IdleResources, idle...)

	cold, err := c.storage.DetectColdStorage(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("storage detector failed")
	}
	set.IdleResources = append(set.IdleResources, cold...)

	databases, err := c.database.DetectIdleDatabases(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("database detector failed")
	}
	set.IdleResources = append(set.IdleResources, databases...)

	set.RightSizing, err = c.rightsizing.DetectRightsizing(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("right-sizing detector failed")
	}

	set.Opportunities = SynthesizeOpportunities(set.IdleResources, set.RightSizing)
	return set, nil
}

// SynthesizeOpportunities rolls detector findings up into raw opportunity
// records, one per resource type and region, titled so the enricher's keyword
// classification lands on the right source type.
func SynthesizeOpportunities(
	idle []domain.IdleResource,
	rightsizing []domain.RightSizingRecommendation,
) []domain.RawOpportunity {
	type group struct {
		savings float64
		count   int
	}
	idleGroups := map[string]*group{}
	for _, r := range idle {
		key := fmt.Sprintf("%s/%s", r.Type, r.Region)
		g, ok := idleGroups[key]
		if !ok {
			g = &group{}
			idleGroups[key] = g
		}
		g.savings += r.Savings
		g.count++
	}

	keys := make([]string, 0, len(idleGroups))
	for key := range idleGroups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var opportunities []domain.RawOpportunity
	for _, key := range keys {
		g := idleGroups[key]
		opportunities = append(opportunities, domain.RawOpportunity{
			ID:                fmt.Sprintf("idle-%s", key),
			Title:             fmt.Sprintf("Idle %s cleanup", key),
			Savings:           g.savings,
			AffectedResources: g.count,
		})
	}

	if len(rightsizing) > 0 {
		var total float64
		for _, r := range rightsizing {
			total += r.Savings
		}
		opportunities = append(opportunities, domain.RawOpportunity{
			ID:                "rightsizing-ec2",
			Title:             fmt.Sprintf("Right-size EC2 fleet (%d recommendations)", len(rightsizing)),
			Savings:           total,
			AffectedResources: len(rightsizing),
		})
	}
	return opportunities
}
