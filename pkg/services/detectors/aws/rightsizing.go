package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/action-center/pkg/models/domain"
)

type rightsizingDetector struct {
	client *costexplorer.Client
}

func NewRightsizingDetector(cfg awssdk.Config) *rightsizingDetector {
	return &rightsizingDetector{
		client: costexplorer.NewFromConfig(cfg),
	}
}

// DetectRightsizing converts Cost Explorer right-sizing recommendations into
// the engine's input shape.
func (d *rightsizingDetector) DetectRightsizing(ctx context.Context) ([]domain.RightSizingRecommendation, error) {
	resp, err := d.client.GetRightsizingRecommendation(ctx, &costexplorer.GetRightsizingRecommendationInput{
		Service: aws.String("AmazonEC2"),
		Configuration: &types.RightsizingRecommendationConfiguration{
			BenefitsConsidered:    true,
			RecommendationTarget: types.RecommendationTargetSameInstanceFamily,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get right-sizing recommendations: %w", err)
	}

	var recs []domain.RightSizingRecommendation
	for i, rec := range resp.RightsizingRecommendations {
		if rec.CurrentInstance == nil {
			continue
		}

		id := aws.ToString(rec.CurrentInstance.ResourceId)
		if id == "" {
			id = fmt.Sprintf("rightsizing-%d", i)
		}
		name := aws.ToString(rec.CurrentInstance.InstanceName)
		if name == "" {
			name = id
		}

		recs = append(recs, domain.RightSizingRecommendation{
			ID:           id,
			ResourceName: name,
			CurrentCPU:   currentVcpu(rec.CurrentInstance),
			CurrentCost:  parseAmount(rec.CurrentInstance.MonthlyCost),
			Savings:      estimatedSavings(rec),
			RiskLevel:    riskForType(rec.RightsizingType),
			Region:       currentRegion(rec.CurrentInstance),
		})
	}
	return recs, nil
}

func currentVcpu(instance *types.CurrentInstance) float64 {
	if instance.ResourceDetails == nil || instance.ResourceDetails.EC2ResourceDetails == nil {
		return 0
	}
	return parseAmount(instance.ResourceDetails.EC2ResourceDetails.Vcpu)
}

func currentRegion(instance *types.CurrentInstance) string {
	if instance.ResourceDetails == nil || instance.ResourceDetails.EC2ResourceDetails == nil {
		return ""
	}
	return aws.ToString(instance.ResourceDetails.EC2ResourceDetails.Region)
}

func estimatedSavings(rec types.RightsizingRecommendation) float64 {
	switch rec.RightsizingType {
	case types.RightsizingTypeTerminate:
		if rec.TerminateRecommendationDetail != nil {
			return parseAmount(rec.TerminateRecommendationDetail.EstimatedMonthlySavings)
		}
	case types.RightsizingTypeModify:
		if rec.ModifyRecommendationDetail != nil {
			var total float64
			for _, target := range rec.ModifyRecommendationDetail.TargetInstances {
				total += parseAmount(target.EstimatedMonthlySavings)
			}
			return total
		}
	}
	return 0
}

func riskForType(t types.RightsizingType) string {
	if t == types.RightsizingTypeTerminate {
		return "high"
	}
	return "medium"
}

func parseAmount(s *string) float64 {
	if s == nil {
		return 0
	}
	v, err := strconv.ParseFloat(aws.ToString(s), 64)
	if err != nil {
		return 0
	}
	return v
}
