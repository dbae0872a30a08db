package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGapFromDailyCosts(t *testing.T) {
	t.Run("steady workload", func(t *testing.T) {
		gap := gapFromDailyCosts([]float64{100, 100, 100, 100})
		require.NotNil(t, gap)
		assert.InDelta(t, 100*30*commitmentDiscount, gap.PotentialSavings, 0.001)
		assert.InDelta(t, 1.0, gap.PredictableWorkload, 0.001)
	})

	t.Run("spiky workload keeps the floor", func(t *testing.T) {
		gap := gapFromDailyCosts([]float64{50, 200, 400, 50})
		require.NotNil(t, gap)
		assert.InDelta(t, 50*30*commitmentDiscount, gap.PotentialSavings, 0.001)
		assert.Less(t, gap.PredictableWorkload, 0.5)
	})

	t.Run("no data", func(t *testing.T) {
		assert.Nil(t, gapFromDailyCosts(nil))
	})

	t.Run("zero baseline", func(t *testing.T) {
		assert.Nil(t, gapFromDailyCosts([]float64{0, 120, 90}))
	})
}
