package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlane/fitlane/internal/analytics/domain"
)

func TestBuildPercentages(t *testing.T) {
	totals := []domain.CategoryTotal{
		{Category: domain.CategoryGoldSubscriptions, AmountCents: 5000},
		{Category: domain.CategoryPlatinumSubscriptions, AmountCents: 3000},
		{Category: domain.CategoryStandalonePurchases, AmountCents: 2000},
	}

	slices, sum := Build(totals)
	require.Len(t, slices, 3)
	assert.Equal(t, int64(10000), sum)
	assert.Equal(t, 50.0, slices[0].Percentage)
	assert.Equal(t, 30.0, slices[1].Percentage)
	assert.Equal(t, 20.0, slices[2].Percentage)
}

func TestBuildPreservesOrderAndRounds(t *testing.T) {
	totals := []domain.CategoryTotal{
		{Category: domain.CategoryPersonalTraining, AmountCents: 1},
		{Category: domain.CategoryCorporate, AmountCents: 2},
	}

	slices, _ := Build(totals)
	assert.Equal(t, domain.CategoryPersonalTraining, slices[0].Category)
	assert.Equal(t, domain.CategoryCorporate, slices[1].Category)
	assert.Equal(t, 33.3, slices[0].Percentage)
	assert.Equal(t, 66.7, slices[1].Percentage)

	var total float64
	for _, s := range slices {
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.5)
}

func TestBuildZeroTotal(t *testing.T) {
	totals := []domain.CategoryTotal{
		{Category: domain.CategoryGoldSubscriptions},
		{Category: domain.CategoryCorporate},
	}

	slices, sum := Build(totals)
	assert.Equal(t, int64(0), sum)
	for _, s := range slices {
		assert.Equal(t, 0.0, s.Percentage)
	}
}
