package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitlane/fitlane/internal/analytics/domain"
	"github.com/fitlane/fitlane/internal/clock"
	"github.com/fitlane/fitlane/internal/config"
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	corporaterepo "github.com/fitlane/fitlane/internal/corporate/repository"
	engagementdomain "github.com/fitlane/fitlane/internal/engagement/domain"
	engagementrepo "github.com/fitlane/fitlane/internal/engagement/repository"
	inboxdomain "github.com/fitlane/fitlane/internal/inbox/domain"
	inboxrepo "github.com/fitlane/fitlane/internal/inbox/repository"
	memberdomain "github.com/fitlane/fitlane/internal/member/domain"
	memberrepo "github.com/fitlane/fitlane/internal/member/repository"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
	purchaserepo "github.com/fitlane/fitlane/internal/purchase/repository"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
	subscriptionrepo "github.com/fitlane/fitlane/internal/subscription/repository"
	trafficdomain "github.com/fitlane/fitlane/internal/traffic/domain"
	trafficrepo "github.com/fitlane/fitlane/internal/traffic/repository"
	pkgdb "github.com/fitlane/fitlane/pkg/db"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := pkgdb.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&memberdomain.Member{},
		&subscriptiondomain.Subscription{},
		&corporatedomain.CorporateSubscription{},
		&purchasedomain.Purchase{},
		&engagementdomain.Interaction{},
		&trafficdomain.TrafficEvent{},
		&inboxdomain.Message{},
	))
	return gdb
}

func newTestService(t *testing.T, gdb *gorm.DB) (domain.Service, *clock.FakeClock) {
	t.Helper()

	log := zap.NewNop()
	fake := clock.NewFakeClock(testNow)

	svc := Provide(Params{
		Log:           log,
		Clock:         fake,
		Pricing:       config.NewStaticPricingHolder(config.DefaultPricingTable()),
		Subscriptions: subscriptionrepo.Provide(subscriptionrepo.Params{DB: gdb, Log: log}),
		Corporate:     corporaterepo.Provide(corporaterepo.Params{DB: gdb, Log: log}),
		Purchases:     purchaserepo.Provide(purchaserepo.Params{DB: gdb, Log: log}),
		Engagement:    engagementrepo.Provide(engagementrepo.Params{DB: gdb, Log: log}),
		Traffic:       trafficrepo.Provide(trafficrepo.Params{DB: gdb, Log: log}),
		Inbox:         inboxrepo.Provide(inboxrepo.Params{DB: gdb, Log: log}),
		Members:       memberrepo.Provide(memberrepo.Params{DB: gdb, Log: log}),
	})
	return svc, fake
}

func seedRevenue(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	canceledEnd := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	price := func(v int64) *int64 { return &v }

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, gdb.Create(&memberdomain.Member{
			ID:        snowflake.ID(100 + i),
			Email:     string(rune('a'+i)) + "@fit.test",
			CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		}).Error)
	}

	subs := []subscriptiondomain.Subscription{
		{ID: 1, MemberID: 101, PlanType: "gold", Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "pay_1", CreatedAt: jan.AddDate(0, 0, 9)},
		{ID: 2, MemberID: 102, PlanType: "platinum", Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "pay_2", CreatedAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 3, MemberID: 103, PlanType: "gold", Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "", CreatedAt: jan.AddDate(0, 0, 19)},
		{ID: 4, MemberID: 104, PlanType: "gold", Status: subscriptiondomain.SubscriptionStatusCanceled, PaymentRef: "pay_4", CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), CurrentPeriodEnd: &canceledEnd},
	}
	require.NoError(t, gdb.Create(&subs).Error)

	corps := []corporatedomain.CorporateSubscription{
		{ID: 1, OrganizationName: "Acme Gym Co", PlanType: "enterprise", Status: corporatedomain.CorporateStatusActive, MaxUsers: 40, CurrentUsersCount: 30, PaymentRef: "pay_c1", CustomerRef: "cus_c1", CreatedAt: jan.AddDate(0, 0, 4)},
		{ID: 2, OrganizationName: "Beta Works", PlanType: "dynamic", Status: corporatedomain.CorporateStatusActive, MaxUsers: 60, CurrentUsersCount: 10, PaymentRef: "pay_c2", CustomerRef: "", CreatedAt: jan.AddDate(0, 0, 7)},
	}
	require.NoError(t, gdb.Create(&corps).Error)

	purchases := []purchasedomain.Purchase{
		{ID: 1, MemberID: 103, ContentType: purchasedomain.ContentTypePersonalTraining, ContentName: "1:1 Coaching", PriceCents: price(8000), PurchasedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, MemberID: 104, ContentType: purchasedomain.ContentTypeWorkout, ContentName: "HIIT Blast", PriceCents: price(1500), PurchasedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, gdb.Create(&purchases).Error)
}

func seedEngagementTrafficInbox(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	mar := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	rating := func(v int16) *int16 { return &v }

	interactions := []engagementdomain.Interaction{
		{ID: 1, MemberID: 101, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "HIIT Blast", Completed: true, Favorite: true, Viewed: true, Rating: rating(4), CreatedAt: mar},
		{ID: 2, MemberID: 102, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "HIIT Blast", Completed: true, Viewed: true, Rating: rating(5), CreatedAt: mar.AddDate(0, 0, 1)},
		{ID: 3, MemberID: 103, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "Yoga Flow", Completed: true, Favorite: true, Viewed: true, CreatedAt: mar.AddDate(0, 0, 2)},
		{ID: 4, MemberID: 104, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "Yoga Flow", CreatedAt: mar.AddDate(0, 0, 3)},
		{ID: 5, MemberID: 105, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "Core Crusher", CreatedAt: mar.AddDate(0, 0, 4)},
	}
	require.NoError(t, gdb.Create(&interactions).Error)

	visit := func(id int64, page, source string, at time.Time) trafficdomain.TrafficEvent {
		return trafficdomain.TrafficEvent{
			ID: snowflake.ID(id), SessionID: uuid.New(), EventType: trafficdomain.EventTypeVisit,
			LandingPage: page, ReferralSource: source, CreatedAt: at,
		}
	}
	events := []trafficdomain.TrafficEvent{
		visit(1, "/home", "instagram", mar),
		visit(2, "/home", "google", mar.Add(time.Hour)),
		visit(3, "/pricing", "instagram", mar.Add(2*time.Hour)),
		visit(4, "/home", "google", mar.Add(3*time.Hour)),
		{ID: 5, SessionID: uuid.New(), EventType: trafficdomain.EventTypeSignup, CreatedAt: mar.Add(4 * time.Hour)},
	}
	require.NoError(t, gdb.Create(&events).Error)

	at := func(day, hour int) time.Time { return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC) }
	answered1 := at(2, 2)
	answered2 := at(3, 10)
	messages := []inboxdomain.Message{
		{ID: 1, SenderEmail: "m1@fit.test", CreatedAt: at(2, 0), RespondedAt: &answered1},
		{ID: 2, SenderEmail: "m2@fit.test", CreatedAt: at(3, 0), RespondedAt: &answered2},
		{ID: 3, SenderEmail: "m3@fit.test", CreatedAt: at(4, 0)},
	}
	require.NoError(t, gdb.Create(&messages).Error)
}

func TestRevenueTrendEndToEnd(t *testing.T) {
	gdb := newTestDB(t)
	seedRevenue(t, gdb)
	svc, _ := newTestService(t, gdb)

	trend, err := svc.RevenueTrend(context.Background(), domain.TrendRequest{MonthsBack: 3})
	require.NoError(t, err)
	require.Len(t, trend.Periods, 3)

	jan, feb, mar := trend.Periods[0], trend.Periods[1], trend.Periods[2]

	assert.Equal(t, "2026-01", jan.Period)
	// Gold sub plus enterprise corporate; complimentary and canceled earn
	// nothing but still count as active.
	assert.Equal(t, int64(999+199900), jan.TotalCents)
	assert.Equal(t, int64(3), jan.ActiveSubscriptions)
	assert.Equal(t, int64(2), jan.ActiveCorporate)

	assert.Equal(t, "2026-02", feb.Period)
	assert.Equal(t, int64(999+1999+199900), feb.TotalCents)

	assert.Equal(t, "2026-03", mar.Period)
	// The canceled subscription expired Feb 10 and drops out of March.
	assert.Equal(t, int64(3), mar.ActiveSubscriptions)
	assert.Equal(t, int64(999+1999+199900+9500), mar.TotalCents)

	assert.Equal(t, jan.TotalCents+feb.TotalCents+mar.TotalCents, trend.GrandTotalCents)
}

func TestSummaryEndToEnd(t *testing.T) {
	gdb := newTestDB(t)
	seedRevenue(t, gdb)
	seedEngagementTrafficInbox(t, gdb)
	svc, _ := newTestService(t, gdb)

	summary, err := svc.Summary(context.Background(), domain.SummaryRequest{})
	require.NoError(t, err)

	assert.Equal(t, 30, summary.WindowDays)
	assert.Empty(t, summary.PartialSources)

	// Window is Feb 13 through Mar 15: gold, platinum, enterprise corporate
	// and both purchases. The canceled sub expired before the window.
	wantRevenue := int64(999 + 1999 + 199900 + 8000 + 1500)
	assert.Equal(t, wantRevenue, summary.RevenueCents)

	assert.Equal(t, int64(5), summary.RegisteredMembers)
	assert.Equal(t, int64(4), summary.UniquePurchasers)
	assert.Equal(t, 80.0, summary.ConversionRate)
	assert.Equal(t, wantRevenue/4, summary.CustomerLifetimeValueCents)

	assert.Equal(t, int64(5), summary.Workouts.Interactions)
	assert.Equal(t, int64(60), summary.Workouts.CompletionRate)
	assert.Equal(t, int64(2), summary.Workouts.Favorites)
	assert.Equal(t, 4.5, summary.Workouts.AverageRating)
	require.NotEmpty(t, summary.Workouts.MostViewed)
	assert.Equal(t, "HIIT Blast", summary.Workouts.MostViewed[0].Label)
	assert.Equal(t, int64(0), summary.Programs.Interactions)

	require.Len(t, summary.BestSellers, 2)
	assert.Equal(t, "1:1 Coaching", summary.BestSellers[0].ContentName)

	assert.Equal(t, 66.7, summary.ResponseRate)
	assert.Equal(t, 6.0, summary.ResponseTimes.AverageHours)
	assert.Equal(t, 2.0, summary.ResponseTimes.MedianHours)

	assert.Equal(t, int64(4), summary.Visits)
	assert.Equal(t, int64(1), summary.Signups)
	assert.Equal(t, 25.0, summary.SignupRate)
	require.NotEmpty(t, summary.TopLandingPages)
	assert.Equal(t, "/home", summary.TopLandingPages[0].Label)
	assert.Equal(t, int64(3), summary.TopLandingPages[0].Count)
	// Instagram and google tie at two visits; instagram was seen first.
	assert.Equal(t, "instagram", summary.TopReferralSources[0].Label)

	assert.Equal(t, int64(2), summary.ActiveCorporatePlans)
	assert.Equal(t, 40.0, summary.CorporateUtilization)
}

func TestDistributionEndToEnd(t *testing.T) {
	gdb := newTestDB(t)
	seedRevenue(t, gdb)
	svc, _ := newTestService(t, gdb)

	dist, err := svc.Distribution(context.Background(), domain.SummaryRequest{WindowDays: 30})
	require.NoError(t, err)

	assert.Equal(t, int64(999+1999+199900+8000+1500), dist.TotalCents)
	require.Len(t, dist.Slices, 5)

	var sum float64
	for _, s := range dist.Slices {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, 0.5)

	assert.Equal(t, domain.CategoryCorporate, dist.Slices[4].Category)
	assert.Equal(t, 94.1, dist.Slices[4].Percentage)
}

func TestInvalidWindows(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newTestService(t, gdb)
	ctx := context.Background()

	_, err := svc.RevenueTrend(ctx, domain.TrendRequest{MonthsBack: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = svc.RevenueTrend(ctx, domain.TrendRequest{MonthsBack: maxTrendMonths + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = svc.Summary(ctx, domain.SummaryRequest{WindowDays: maxWindowDays + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = svc.Distribution(ctx, domain.SummaryRequest{WindowDays: -7})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

type failingRepo struct{}

var errSourceDown = errors.New("source down")

func (failingRepo) List(ctx context.Context, from, to *time.Time) ([]subscriptiondomain.Subscription, error) {
	return nil, errSourceDown
}

type failingCorporate struct{}

func (failingCorporate) List(ctx context.Context, from, to *time.Time) ([]corporatedomain.CorporateSubscription, error) {
	return nil, errSourceDown
}

type failingPurchases struct{}

func (failingPurchases) List(ctx context.Context, from, to *time.Time) ([]purchasedomain.Purchase, error) {
	return nil, errSourceDown
}

func TestRevenueTrendContainsSingleSourceFailure(t *testing.T) {
	gdb := newTestDB(t)
	seedRevenue(t, gdb)
	svc, _ := newTestService(t, gdb)

	raw := svc.(*service)
	raw.purchases = failingPurchases{}

	trend, err := raw.RevenueTrend(context.Background(), domain.TrendRequest{MonthsBack: 3})
	require.NoError(t, err)

	// March loses its purchase revenue but keeps subscriptions.
	mar := trend.Periods[2]
	assert.Equal(t, int64(999+1999+199900), mar.TotalCents)
}

func TestRevenueTrendAllSourcesFailed(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newTestService(t, gdb)

	raw := svc.(*service)
	raw.subscriptions = failingRepo{}
	raw.corporate = failingCorporate{}
	raw.purchases = failingPurchases{}

	_, err := raw.RevenueTrend(context.Background(), domain.TrendRequest{MonthsBack: 3})
	assert.ErrorIs(t, err, domain.ErrAnalyticsUnavailable)
}

func TestSupersededGeneration(t *testing.T) {
	gdb := newTestDB(t)
	svc, _ := newTestService(t, gdb)
	raw := svc.(*service)

	gen := raw.generation.Add(1)
	require.NoError(t, raw.checkGeneration(context.Background(), gen))

	// A newer request arrived while this one was computing.
	raw.generation.Add(1)
	assert.ErrorIs(t, raw.checkGeneration(context.Background(), gen), domain.ErrSuperseded)
}
