package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/action-center/pkg/models/domain"
)

type idleDetector struct {
	client *ec2.Client
}

func NewIdleDetector(cfg awssdk.Config) *idleDetector {
	return &idleDetector{
		client: ec2.NewFromConfig(cfg),
	}
}

// DetectIdle flags stopped instances and running instances in non-production
// environments as idle-resource signals with an estimated monthly saving.
func (d *idleDetector) DetectIdle(ctx context.Context) ([]domain.IdleResource, error) {
	resp, err := d.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{"running", "stopped"},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe EC2 instances: %w", err)
	}

	var resources []domain.IdleResource
	for _, reservation := range resp.Reservations {
		for _, instance := range reservation.Instances {
			stopped := instance.State != nil && instance.State.Name == types.InstanceStateNameStopped

			instanceName := aws.ToString(instance.InstanceId)
			environment := ""
			for _, tag := range instance.Tags {
				switch aws.ToString(tag.Key) {
				case "Name":
					instanceName = aws.ToString(tag.Value)
				case "Environment":
					environment = strings.ToLower(aws.ToString(tag.Value))
				}
			}

			nonProd := environment != "" && environment != "prod" && environment != "production"
			if !stopped && !nonProd {
				continue
			}
			if nonProd && !stopped {
				instanceName = instanceName + " (non-prod)"
			}

			hourlyRate := getInstanceTypePrice(string(instance.InstanceType))
			risk := "low"
			if !stopped {
				risk = "medium"
			}

			resources = append(resources, domain.IdleResource{
				Type:    "ec2-instance",
				Name:    instanceName,
				Region:  availabilityZoneRegion(instance),
				Risk:    risk,
				Savings: hourlyRate * 24 * 30,
			})
		}
	}
	return resources, nil
}

func availabilityZoneRegion(instance types.Instance) string {
	if instance.Placement == nil {
		return ""
	}
	az := aws.ToString(instance.Placement.AvailabilityZone)
	if len(az) > 1 {
		return az[:len(az)-1]
	}
	return az
}

// getInstanceTypePrice returns an approximate on-demand hourly rate. Good
// enough for prioritization; exact figures come from Cost Explorer downstream.
func getInstanceTypePrice(instanceType string) float64 {
	prices := map[string]float64{
		"t2.micro":   0.0116,
		"t3.micro":   0.0104,
		"t3.small":   0.0208,
		"t3.medium":  0.0416,
		"t4g.nano":   0.0042,
		"m5.large":   0.096,
		"m5.xlarge":  0.192,
		"m5.2xlarge": 0.384,
		"c5.large":   0.085,
		"c5.xlarge":  0.17,
		"r5.large":   0.126,
		"r5.xlarge":  0.252,
	}
	if price, ok := prices[instanceType]; ok {
		return price
	}
	return 0.1
}
