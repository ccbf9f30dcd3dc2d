// Package stats computes the derived dashboard metrics: rates, rankings,
// response latency and lifetime value. Every rate returns zero on a zero
// denominator rather than an error.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/fitlane/fitlane/internal/analytics/domain"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
)

// Percent is part/total as a percentage rounded to one decimal.
func Percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(part) / float64(total) * 100)
}

// CompletionRate is the completed share of interactions as a whole
// percentage. The result is always within [0, 100].
func CompletionRate(completed, total int64) int64 {
	if total == 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int64(math.Round(float64(completed) / float64(total) * 100))
}

// LifetimeValue is revenue per paying customer in cents, floored.
func LifetimeValue(revenueCents, customers int64) int64 {
	if customers == 0 {
		return 0
	}
	return revenueCents / customers
}

// AverageRating is the mean of the non-nil ratings, one decimal. No ratings
// yields zero.
func AverageRating(ratings []*int16) float64 {
	var sum, n int64
	for _, r := range ratings {
		if r == nil {
			continue
		}
		sum += int64(*r)
		n++
	}
	if n == 0 {
		return 0
	}
	return Round1(float64(sum) / float64(n))
}

// Utilization is seats-in-use over seats-purchased across corporate accounts,
// as a one-decimal percentage.
func Utilization(usersInUse, seats int64) float64 {
	return Percent(usersInUse, seats)
}

// ResponseTimes summarizes the latency between a message arriving and its
// reply, in hours. Unanswered messages are excluded entirely. The median is
// the lower middle element for even-sized sets.
func ResponseTimes(created []time.Time, responded []*time.Time) domain.ResponseTimeStats {
	hours := make([]float64, 0, len(created))
	for i, at := range created {
		if i >= len(responded) || responded[i] == nil {
			continue
		}
		hours = append(hours, responded[i].Sub(at).Hours())
	}
	if len(hours) == 0 {
		return domain.ResponseTimeStats{}
	}

	sort.Float64s(hours)
	var sum float64
	for _, h := range hours {
		sum += h
	}

	return domain.ResponseTimeStats{
		AverageHours:  Round1(sum / float64(len(hours))),
		MedianHours:   Round1(hours[(len(hours)-1)/2]),
		MinHours:      Round1(hours[0]),
		MaxHours:      Round1(hours[len(hours)-1]),
		AnsweredCount: int64(len(hours)),
	}
}

// RankTop counts occurrences per label and returns the n most frequent,
// descending. Ties keep the order the labels were first seen, so repeated
// runs over the same chronological input rank identically. Empty labels are
// skipped.
func RankTop(labels []string, n int) []domain.RankedLabel {
	counts := make(map[string]int64, len(labels))
	order := make([]string, 0, len(labels))
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	ranked := make([]domain.RankedLabel, 0, len(order))
	for _, label := range order {
		ranked = append(ranked, domain.RankedLabel{Label: label, Count: counts[label]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// BestSellers ranks purchased content by sales count, carrying the summed
// revenue along. Ties keep first-purchase order.
func BestSellers(purchases []purchasedomain.Purchase, n int) []domain.BestSeller {
	type tally struct {
		sales   int64
		revenue int64
	}
	tallies := make(map[string]*tally, len(purchases))
	order := make([]string, 0, len(purchases))
	for _, p := range purchases {
		t, seen := tallies[p.ContentName]
		if !seen {
			t = &tally{}
			tallies[p.ContentName] = t
			order = append(order, p.ContentName)
		}
		t.sales++
		t.revenue += p.Amount()
	}

	sellers := make([]domain.BestSeller, 0, len(order))
	for _, name := range order {
		sellers = append(sellers, domain.BestSeller{
			ContentName:  name,
			Sales:        tallies[name].sales,
			RevenueCents: tallies[name].revenue,
		})
	}
	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Sales > sellers[j].Sales
	})

	if len(sellers) > n {
		sellers = sellers[:n]
	}
	return sellers
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
