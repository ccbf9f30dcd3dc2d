// Package aggregate turns raw revenue records into per-period category
// totals. Prices come from the pricing table snapshot the caller resolved; a
// single computation never mixes two table versions.
package aggregate

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/analytics/classify"
	"github.com/fitlane/fitlane/internal/analytics/domain"
	"github.com/fitlane/fitlane/internal/analytics/timeseries"
	"github.com/fitlane/fitlane/internal/config"
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
)

// Input carries every revenue-bearing record overlapping the requested range.
type Input struct {
	Subscriptions []subscriptiondomain.Subscription
	Corporate     []corporatedomain.CorporateSubscription
	Purchases     []purchasedomain.Purchase
}

// Revenue builds the month-by-month trend. Each period's total always equals
// the sum of its category amounts because both are accumulated from the same
// pass over the records.
func Revenue(months []timeseries.Month, in Input, prices config.PricingTable, log *zap.Logger) domain.RevenueTrend {
	trend := domain.RevenueTrend{
		Periods: make([]domain.PeriodRevenue, 0, len(months)),
	}

	for _, m := range months {
		bucket := bucketTotals(m.Start, m.End, in, prices, log)
		period := domain.PeriodRevenue{
			Period:              m.Label,
			Categories:          bucket.categories,
			TotalCents:          bucket.totalCents,
			ActiveSubscriptions: bucket.activeSubscriptions,
			ActiveCorporate:     bucket.activeCorporate,
		}
		trend.Periods = append(trend.Periods, period)
		trend.GrandTotalCents += period.TotalCents
	}
	return trend
}

// WindowTotals prices one [start, end] window as a single bucket. Summary and
// distribution both use this so their totals agree with the monthly trend's
// classification rules.
func WindowTotals(start, end time.Time, in Input, prices config.PricingTable, log *zap.Logger) ([]domain.CategoryTotal, int64) {
	bucket := bucketTotals(start, end, in, prices, log)
	return bucket.categories, bucket.totalCents
}

type bucket struct {
	categories          []domain.CategoryTotal
	totalCents          int64
	activeSubscriptions int64
	activeCorporate     int64
}

func bucketTotals(start, end time.Time, in Input, prices config.PricingTable, log *zap.Logger) bucket {
	sums := make(map[domain.RevenueCategory]int64, len(domain.Categories()))
	var b bucket

	for _, s := range in.Subscriptions {
		if !timeseries.ActiveDuring(s.CreatedAt, s.CurrentPeriodEnd, start, end) {
			continue
		}
		b.activeSubscriptions++

		if !classify.PaidSubscription(s) {
			continue
		}

		price, known := prices.IndividualPrice(s.PlanType)
		category, mapped := individualCategory(s.PlanType)
		if !known || !mapped {
			log.Warn("unknown individual plan type",
				zap.Int64("subscription_id", int64(s.ID)),
				zap.String("plan_type", s.PlanType),
			)
			continue
		}
		sums[category] += price
		b.totalCents += price
	}

	for _, c := range in.Corporate {
		if !timeseries.ActiveDuring(c.CreatedAt, c.CurrentPeriodEnd, start, end) {
			continue
		}
		b.activeCorporate++

		if !classify.PaidCorporate(c) {
			continue
		}

		price, known := prices.CorporatePrice(c.PlanType)
		if !known {
			log.Warn("unknown corporate plan type",
				zap.Int64("corporate_id", int64(c.ID)),
				zap.String("plan_type", c.PlanType),
			)
			continue
		}
		sums[domain.CategoryCorporate] += price
		b.totalCents += price
	}

	for _, p := range in.Purchases {
		if !timeseries.Within(p.PurchasedAt, start, end) {
			continue
		}
		category := domain.CategoryStandalonePurchases
		if p.ContentType == purchasedomain.ContentTypePersonalTraining {
			category = domain.CategoryPersonalTraining
		}
		sums[category] += p.Amount()
		b.totalCents += p.Amount()
	}

	b.categories = make([]domain.CategoryTotal, 0, len(domain.Categories()))
	for _, category := range domain.Categories() {
		b.categories = append(b.categories, domain.CategoryTotal{
			Category:    category,
			AmountCents: sums[category],
		})
	}
	return b
}

func individualCategory(planType string) (domain.RevenueCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(planType)) {
	case config.PlanGold:
		return domain.CategoryGoldSubscriptions, true
	case config.PlanPlatinum:
		return domain.CategoryPlatinumSubscriptions, true
	default:
		return "", false
	}
}
