package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/action-center/pkg/models/domain"
)

type databaseDetector struct {
	client *rds.Client
}

func NewDatabaseDetector(cfg awssdk.Config) *databaseDetector {
	return &databaseDetector{
		client: rds.NewFromConfig(cfg),
	}
}

// DetectIdleDatabases reports stopped RDS instances and non-production
// instances left running as idle database signals.
func (d *databaseDetector) DetectIdleDatabases(ctx context.Context) ([]domain.IdleResource, error) {
	resp, err := d.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe RDS instances: %w", err)
	}

	var resources []domain.IdleResource
	for _, instance := range resp.DBInstances {
		status := strings.ToLower(aws.ToString(instance.DBInstanceStatus))
		identifier := aws.ToString(instance.DBInstanceIdentifier)

		stopped := status == "stopped"
		nonProd := strings.Contains(identifier, "dev") ||
			strings.Contains(identifier, "staging") ||
			strings.Contains(identifier, "test")
		if !stopped && !nonProd {
			continue
		}

		hourlyRate := getDBInstanceClassPrice(aws.ToString(instance.DBInstanceClass))
		risk := "low"
		if !stopped {
			risk = "medium"
		}

		resources = append(resources, domain.IdleResource{
			Type:    "rds-instance",
			Name:    identifier,
			Region:  aws.ToString(instance.AvailabilityZone),
			Risk:    risk,
			Savings: hourlyRate * 24 * 30,
		})
	}
	return resources, nil
}

func getDBInstanceClassPrice(class string) float64 {
	prices := map[string]float64{
		"db.t3.micro":   0.017,
		"db.t3.small":   0.034,
		"db.t3.medium":  0.068,
		"db.m5.large":   0.171,
		"db.m5.xlarge":  0.342,
		"db.r5.large":   0.24,
		"db.r5.xlarge":  0.48,
	}
	if price, ok := prices[class]; ok {
		return price
	}
	return 0.1
}
