// Package distribution converts category totals into the percentage slices
// behind the revenue pie chart.
package distribution

import (
	"github.com/fitlane/fitlane/internal/analytics/domain"
	"github.com/fitlane/fitlane/internal/analytics/stats"
)

// Build computes each category's share of the total, one decimal place,
// preserving the incoming category order. A zero total yields all-zero
// percentages rather than NaN.
func Build(totals []domain.CategoryTotal) ([]domain.Slice, int64) {
	var sum int64
	for _, t := range totals {
		sum += t.AmountCents
	}

	slices := make([]domain.Slice, 0, len(totals))
	for _, t := range totals {
		slice := domain.Slice{
			Category:    t.Category,
			AmountCents: t.AmountCents,
		}
		if sum > 0 {
			slice.Percentage = stats.Round1(float64(t.AmountCents) / float64(sum) * 100)
		}
		slices = append(slices, slice)
	}
	return slices, sum
}
