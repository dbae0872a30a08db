package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/action-center/pkg/models/domain"
)

const (
	standardStorageRatePerGB = 0.023
	// Assume roughly a third of untouched standard-class storage can move to a
	// colder tier.
	reclaimableShare = 0.35
)

type storageDetector struct {
	client *s3.Client
}

func NewStorageDetector(cfg awssdk.Config) *storageDetector {
	return &storageDetector{
		client: s3.NewFromConfig(cfg),
	}
}

// DetectColdStorage sizes every bucket and reports the reclaimable share as an
// idle storage signal.
func (d *storageDetector) DetectColdStorage(ctx context.Context) ([]domain.IdleResource, error) {
	resp, err := d.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", err)
	}

	var resources []domain.IdleResource
	for _, bucket := range resp.Buckets {
		locResp, err := d.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: bucket.Name,
		})
		if err != nil {
			continue
		}
		region := string(locResp.LocationConstraint)
		if region == "" {
			region = DefaultRegion
		}

		var totalSize int64
		var continuationToken *string
		for {
			objResp, err := d.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
				Bucket:            bucket.Name,
				ContinuationToken: continuationToken,
			})
			if err != nil {
				break
			}
			for _, obj := range objResp.Contents {
				totalSize += aws.ToInt64(obj.Size)
			}
			if !aws.ToBool(objResp.IsTruncated) {
				break
			}
			continuationToken = objResp.NextContinuationToken
		}

		sizeGB := float64(totalSize) / (1024 * 1024 * 1024)
		savings := sizeGB * standardStorageRatePerGB * reclaimableShare
		if savings < 1 {
			continue
		}

		resources = append(resources, domain.IdleResource{
			Type:    "s3-storage",
			Name:    aws.ToString(bucket.Name),
			Region:  region,
			Risk:    "low",
			Savings: savings,
		})
	}
	return resources, nil
}
