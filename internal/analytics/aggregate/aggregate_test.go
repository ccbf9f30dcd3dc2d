package aggregate

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/analytics/domain"
	"github.com/fitlane/fitlane/internal/analytics/timeseries"
	"github.com/fitlane/fitlane/internal/config"
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
)

var testMonth = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func snowflakeID(v int64) snowflake.ID { return snowflake.ID(v) }

func months(t *testing.T, n int) []timeseries.Month {
	t.Helper()
	return timeseries.Months(testMonth.AddDate(0, n-1, 15), n)
}

func paidSub(id int64, plan string, createdAt time.Time) subscriptiondomain.Subscription {
	return subscriptiondomain.Subscription{
		ID:         snowflakeID(id),
		MemberID:   snowflakeID(id + 1000),
		PlanType:   plan,
		Status:     subscriptiondomain.SubscriptionStatusActive,
		PaymentRef: "pay_ref",
		CreatedAt:  createdAt,
	}
}

func TestRevenueSumsGoldSubscriptions(t *testing.T) {
	in := Input{
		Subscriptions: []subscriptiondomain.Subscription{
			paidSub(1, "gold", testMonth.AddDate(0, 0, 2)),
			paidSub(2, "gold", testMonth.AddDate(0, 0, 5)),
			paidSub(3, "gold", testMonth.AddDate(0, 0, 9)),
		},
	}

	trend := Revenue(months(t, 1), in, config.DefaultPricingTable(), zap.NewNop())
	require.Len(t, trend.Periods, 1)

	period := trend.Periods[0]
	assert.Equal(t, "2026-01", period.Period)
	assert.Equal(t, int64(2997), period.TotalCents)
	assert.Equal(t, int64(2997), categoryAmount(t, period, domain.CategoryGoldSubscriptions))
	assert.Equal(t, int64(3), period.ActiveSubscriptions)
	assert.Equal(t, int64(2997), trend.GrandTotalCents)
}

func TestRevenueComplimentaryCountsButEarnsNothing(t *testing.T) {
	comp := paidSub(1, "platinum", testMonth.AddDate(0, 0, 2))
	comp.PaymentRef = ""

	trend := Revenue(months(t, 1), Input{
		Subscriptions: []subscriptiondomain.Subscription{comp},
	}, config.DefaultPricingTable(), zap.NewNop())

	period := trend.Periods[0]
	assert.Equal(t, int64(0), period.TotalCents)
	assert.Equal(t, int64(1), period.ActiveSubscriptions)
}

func TestRevenueUnknownPlanEarnsNothing(t *testing.T) {
	trend := Revenue(months(t, 1), Input{
		Subscriptions: []subscriptiondomain.Subscription{
			paidSub(1, "diamond", testMonth.AddDate(0, 0, 2)),
		},
	}, config.DefaultPricingTable(), zap.NewNop())

	period := trend.Periods[0]
	assert.Equal(t, int64(0), period.TotalCents)
	assert.Equal(t, int64(1), period.ActiveSubscriptions)
}

func TestRevenueCorporateMissingCustomerRef(t *testing.T) {
	trend := Revenue(months(t, 1), Input{
		Corporate: []corporatedomain.CorporateSubscription{
			{
				ID:         snowflakeID(1),
				PlanType:   "power",
				Status:     corporatedomain.CorporateStatusActive,
				PaymentRef: "pay_ref",
				CreatedAt:  testMonth.AddDate(0, 0, 3),
			},
		},
	}, config.DefaultPricingTable(), zap.NewNop())

	period := trend.Periods[0]
	assert.Equal(t, int64(0), period.TotalCents)
	assert.Equal(t, int64(1), period.ActiveCorporate)
}

func TestRevenueSubscriptionSpansMultipleMonths(t *testing.T) {
	// Created in January with no period end: bills every month it overlaps.
	trend := Revenue(months(t, 3), Input{
		Subscriptions: []subscriptiondomain.Subscription{
			paidSub(1, "gold", testMonth.AddDate(0, 0, 10)),
		},
	}, config.DefaultPricingTable(), zap.NewNop())

	require.Len(t, trend.Periods, 3)
	for _, period := range trend.Periods {
		assert.Equal(t, int64(999), period.TotalCents, period.Period)
	}
	assert.Equal(t, int64(2997), trend.GrandTotalCents)
}

func TestRevenuePurchaseCategories(t *testing.T) {
	price := func(v int64) *int64 { return &v }
	in := Input{
		Purchases: []purchasedomain.Purchase{
			{ContentType: purchasedomain.ContentTypeWorkout, PriceCents: price(1500), PurchasedAt: testMonth.AddDate(0, 0, 1)},
			{ContentType: purchasedomain.ContentTypePersonalTraining, PriceCents: price(8000), PurchasedAt: testMonth.AddDate(0, 0, 2)},
			{ContentType: purchasedomain.ContentTypeShopProduct, PriceCents: nil, PurchasedAt: testMonth.AddDate(0, 0, 3)},
		},
	}

	trend := Revenue(months(t, 1), in, config.DefaultPricingTable(), zap.NewNop())
	period := trend.Periods[0]

	assert.Equal(t, int64(1500), categoryAmount(t, period, domain.CategoryStandalonePurchases))
	assert.Equal(t, int64(8000), categoryAmount(t, period, domain.CategoryPersonalTraining))
	assert.Equal(t, int64(9500), period.TotalCents)
}

func TestRevenueTotalEqualsCategorySum(t *testing.T) {
	price := func(v int64) *int64 { return &v }
	end := testMonth.AddDate(0, 0, 20)
	in := Input{
		Subscriptions: []subscriptiondomain.Subscription{
			paidSub(1, "gold", testMonth.AddDate(0, 0, 1)),
			paidSub(2, "platinum", testMonth.AddDate(0, 0, 2)),
			{ID: snowflakeID(3), PlanType: "gold", Status: subscriptiondomain.SubscriptionStatusCanceled, PaymentRef: "x", CreatedAt: testMonth, CurrentPeriodEnd: &end},
		},
		Corporate: []corporatedomain.CorporateSubscription{
			{ID: snowflakeID(4), PlanType: "enterprise", Status: corporatedomain.CorporateStatusActive, PaymentRef: "p", CustomerRef: "c", CreatedAt: testMonth},
		},
		Purchases: []purchasedomain.Purchase{
			{ContentType: purchasedomain.ContentTypeProgram, PriceCents: price(2500), PurchasedAt: testMonth.AddDate(0, 0, 4)},
		},
	}

	trend := Revenue(months(t, 1), in, config.DefaultPricingTable(), zap.NewNop())
	period := trend.Periods[0]

	var sum int64
	for _, c := range period.Categories {
		sum += c.AmountCents
	}
	assert.Equal(t, period.TotalCents, sum)
}

func TestRevenueDeterministic(t *testing.T) {
	in := Input{
		Subscriptions: []subscriptiondomain.Subscription{
			paidSub(1, "gold", testMonth.AddDate(0, 0, 1)),
			paidSub(2, "platinum", testMonth.AddDate(0, 0, 2)),
		},
	}

	first := Revenue(months(t, 2), in, config.DefaultPricingTable(), zap.NewNop())
	second := Revenue(months(t, 2), in, config.DefaultPricingTable(), zap.NewNop())
	assert.Equal(t, first, second)
}

func TestRevenueCategoryOrderFixed(t *testing.T) {
	trend := Revenue(months(t, 1), Input{}, config.DefaultPricingTable(), zap.NewNop())
	period := trend.Periods[0]

	require.Len(t, period.Categories, 5)
	for i, want := range domain.Categories() {
		assert.Equal(t, want, period.Categories[i].Category)
	}
}

func categoryAmount(t *testing.T, period domain.PeriodRevenue, category domain.RevenueCategory) int64 {
	t.Helper()
	for _, c := range period.Categories {
		if c.Category == category {
			return c.AmountCents
		}
	}
	t.Fatalf("category %s not present", category)
	return 0
}
