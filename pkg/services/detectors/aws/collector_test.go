package aws

import (
	"testing"

	"github.com/de-tools/action-center/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeOpportunities(t *testing.T) {
	idle := []domain.IdleResource{
		{Type: "ec2-instance", Region: "us-east-1", Savings: 100},
		{Type: "ec2-instance", Region: "us-east-1", Savings: 150},
		{Type: "s3-storage", Region: "eu-west-1", Savings: 40},
	}
	rightsizing := []domain.RightSizingRecommendation{
		{ID: "rs-1", Savings: 300},
		{ID: "rs-2", Savings: 200},
	}

	opps := SynthesizeOpportunities(idle, rightsizing)
	require.Len(t, opps, 3)

	assert.Equal(t, "Idle ec2-instance/us-east-1 cleanup", opps[0].Title)
	assert.Equal(t, 250.0, opps[0].Savings)
	assert.Equal(t, 2, opps[0].AffectedResources)

	assert.Equal(t, "Idle s3-storage/eu-west-1 cleanup", opps[1].Title)

	last := opps[2]
	assert.Equal(t, "Right-size EC2 fleet (2 recommendations)", last.Title)
	assert.Equal(t, 500.0, last.Savings)
}

func TestSynthesizeOpportunities_Empty(t *testing.T) {
	assert.Empty(t, SynthesizeOpportunities(nil, nil))
}
