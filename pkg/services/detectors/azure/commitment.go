package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/de-tools/action-center/pkg/models/domain"
)

const (
	// Discount assumed for a 1-year compute commitment at the predictable
	// baseline.
	commitmentDiscount = 0.28
	lookbackDays       = 30
)

type CommitmentDetector struct {
	costFactory    *armcostmanagement.ClientFactory
	subscriptionID string
	scope          string
}

func NewCommitmentDetector(factory *armcostmanagement.ClientFactory, subscriptionID string) *CommitmentDetector {
	return &CommitmentDetector{
		costFactory:    factory,
		subscriptionID: subscriptionID,
		scope:          fmt.Sprintf("/subscriptions/%s", subscriptionID),
	}
}

// DetectGap queries daily actual cost for the lookback window and treats the
// lowest daily spend as the predictable baseline a commitment could cover.
func (d *CommitmentDetector) DetectGap(ctx context.Context) (*domain.CommitmentGap, error) {
	client := d.costFactory.NewQueryClient()

	timeTo := time.Now()
	timeFrom := timeTo.AddDate(0, 0, -lookbackDays)

	exportType := armcostmanagement.ExportTypeActualCost
	granularity := armcostmanagement.GranularityTypeDaily
	timeframe := armcostmanagement.TimeframeTypeCustom

	params := armcostmanagement.QueryDefinition{
		Type: &exportType,
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
		},
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &timeFrom,
			To:   &timeTo,
		},
	}

	result, err := client.Usage(ctx, d.scope, params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs: %w", err)
	}

	var daily []float64
	for _, row := range result.Properties.Rows {
		if len(row) == 0 {
			continue
		}
		if v, ok := row[0].(float64); ok {
			daily = append(daily, v)
		}
	}
	return gapFromDailyCosts(daily), nil
}

// gapFromDailyCosts derives the commitment gap from a daily cost series. The
// minimum daily spend approximates the always-on baseline; its share of total
// spend is the predictable-workload ratio.
func gapFromDailyCosts(daily []float64) *domain.CommitmentGap {
	if len(daily) == 0 {
		return nil
	}

	baseline := daily[0]
	var total float64
	for _, v := range daily {
		if v < baseline {
			baseline = v
		}
		total += v
	}
	if total <= 0 || baseline <= 0 {
		return nil
	}

	monthlyBaseline := baseline * 30
	predictable := baseline * float64(len(daily)) / total

	return &domain.CommitmentGap{
		Recommendation: fmt.Sprintf(
			"Commit to a 1-year compute plan covering $%.0f/mo of baseline spend", monthlyBaseline),
		PotentialSavings:    monthlyBaseline * commitmentDiscount,
		PredictableWorkload: predictable,
	}
}
