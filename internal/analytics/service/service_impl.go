// Package service orchestrates analytics reads: it fans out to the source
// repositories in parallel, contains per-source failures, and assembles the
// trend, summary and distribution views.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fitlane/fitlane/internal/analytics/aggregate"
	"github.com/fitlane/fitlane/internal/analytics/classify"
	"github.com/fitlane/fitlane/internal/analytics/distribution"
	"github.com/fitlane/fitlane/internal/analytics/domain"
	"github.com/fitlane/fitlane/internal/analytics/stats"
	"github.com/fitlane/fitlane/internal/analytics/timeseries"
	"github.com/fitlane/fitlane/internal/clock"
	"github.com/fitlane/fitlane/internal/config"
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	engagementdomain "github.com/fitlane/fitlane/internal/engagement/domain"
	inboxdomain "github.com/fitlane/fitlane/internal/inbox/domain"
	memberdomain "github.com/fitlane/fitlane/internal/member/domain"
	"github.com/fitlane/fitlane/internal/observability/metrics"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
	trafficdomain "github.com/fitlane/fitlane/internal/traffic/domain"
)

const (
	defaultTrendMonths = 6
	maxTrendMonths     = 36

	defaultWindowDays = 30
	maxWindowDays     = 365

	rankingSize = 5
)

// Source names surfaced in partial-result responses and failure metrics.
const (
	sourceSubscriptions = "subscriptions"
	sourceCorporate     = "corporate"
	sourcePurchases     = "purchases"
	sourceWorkouts      = "workouts"
	sourcePrograms      = "programs"
	sourceTraffic       = "traffic"
	sourceInbox         = "inbox"
	sourceMembers       = "members"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Clock   clock.Clock
	Pricing *config.PricingHolder
	Metrics *metrics.Metrics `optional:"true"`

	Subscriptions subscriptiondomain.Repository
	Corporate     corporatedomain.Repository
	Purchases     purchasedomain.Repository
	Engagement    engagementdomain.Repository
	Traffic       trafficdomain.Repository
	Inbox         inboxdomain.Repository
	Members       memberdomain.Repository
}

type service struct {
	log     *zap.Logger
	clock   clock.Clock
	pricing *config.PricingHolder
	metrics *metrics.Metrics

	subscriptions subscriptiondomain.Repository
	corporate     corporatedomain.Repository
	purchases     purchasedomain.Repository
	engagement    engagementdomain.Repository
	traffic       trafficdomain.Repository
	inbox         inboxdomain.Repository
	members       memberdomain.Repository

	// generation supersedes in-flight computations when a newer request
	// arrives, so slow queries never overwrite fresher dashboard data.
	generation atomic.Uint64
}

func Provide(p Params) domain.Service {
	return &service{
		log:           p.Log.Named("analytics.service"),
		clock:         p.Clock,
		pricing:       p.Pricing,
		metrics:       p.Metrics,
		subscriptions: p.Subscriptions,
		corporate:     p.Corporate,
		purchases:     p.Purchases,
		engagement:    p.Engagement,
		traffic:       p.Traffic,
		inbox:         p.Inbox,
		members:       p.Members,
	}
}

func (s *service) RevenueTrend(ctx context.Context, req domain.TrendRequest) (domain.RevenueTrend, error) {
	months := req.MonthsBack
	if months == 0 {
		months = defaultTrendMonths
	}
	if months < 0 || months > maxTrendMonths {
		return domain.RevenueTrend{}, domain.ErrInvalidWindow
	}
	s.metrics.RecordQuery(ctx, "revenue_trend")

	gen := s.generation.Add(1)
	series := timeseries.Months(s.clock.Now(), months)
	start, end := series[0].Start, series[len(series)-1].End

	in, _, err := s.fetchRevenue(ctx, start, end)
	if err != nil {
		return domain.RevenueTrend{}, err
	}
	if err := s.checkGeneration(ctx, gen); err != nil {
		return domain.RevenueTrend{}, err
	}

	return aggregate.Revenue(series, in, s.pricing.Get(), s.log), nil
}

func (s *service) Distribution(ctx context.Context, req domain.SummaryRequest) (domain.Distribution, error) {
	days, err := windowDays(req)
	if err != nil {
		return domain.Distribution{}, err
	}
	s.metrics.RecordQuery(ctx, "distribution")

	gen := s.generation.Add(1)
	start, end := timeseries.Window(s.clock.Now(), days)

	in, _, err := s.fetchRevenue(ctx, start, end)
	if err != nil {
		return domain.Distribution{}, err
	}
	if err := s.checkGeneration(ctx, gen); err != nil {
		return domain.Distribution{}, err
	}

	totals, _ := aggregate.WindowTotals(start, end, in, s.pricing.Get(), s.log)
	slices, sum := distribution.Build(totals)
	return domain.Distribution{
		WindowDays: days,
		TotalCents: sum,
		Slices:     slices,
	}, nil
}

func (s *service) Summary(ctx context.Context, req domain.SummaryRequest) (domain.Summary, error) {
	days, err := windowDays(req)
	if err != nil {
		return domain.Summary{}, err
	}
	s.metrics.RecordQuery(ctx, "summary")

	gen := s.generation.Add(1)
	start, end := timeseries.Window(s.clock.Now(), days)

	var (
		subs      []subscriptiondomain.Subscription
		corporate []corporatedomain.CorporateSubscription
		purchases []purchasedomain.Purchase
		workouts  []engagementdomain.Interaction
		programs  []engagementdomain.Interaction
		traffic   []trafficdomain.TrafficEvent
		messages  []inboxdomain.Message
		members   int64
	)

	failed := s.fanOut(ctx, []fetch{
		// Subscriptions and corporate accounts fetch with an open lower
		// bound: a record created before the window can still be active
		// inside it.
		{sourceSubscriptions, func(ctx context.Context) error {
			var err error
			subs, err = s.subscriptions.List(ctx, nil, &end)
			return err
		}},
		{sourceCorporate, func(ctx context.Context) error {
			var err error
			corporate, err = s.corporate.List(ctx, nil, &end)
			return err
		}},
		{sourcePurchases, func(ctx context.Context) error {
			var err error
			purchases, err = s.purchases.List(ctx, &start, &end)
			return err
		}},
		{sourceWorkouts, func(ctx context.Context) error {
			var err error
			workouts, err = s.engagement.List(ctx, engagementdomain.ContentKindWorkout, &start, &end)
			return err
		}},
		{sourcePrograms, func(ctx context.Context) error {
			var err error
			programs, err = s.engagement.List(ctx, engagementdomain.ContentKindProgram, &start, &end)
			return err
		}},
		{sourceTraffic, func(ctx context.Context) error {
			var err error
			traffic, err = s.traffic.List(ctx, &start, &end)
			return err
		}},
		{sourceInbox, func(ctx context.Context) error {
			var err error
			messages, err = s.inbox.List(ctx, &start, &end)
			return err
		}},
		{sourceMembers, func(ctx context.Context) error {
			var err error
			members, err = s.members.Count(ctx, &end)
			return err
		}},
	})
	if len(failed) == 8 {
		return domain.Summary{}, domain.ErrAnalyticsUnavailable
	}
	if err := s.checkGeneration(ctx, gen); err != nil {
		return domain.Summary{}, err
	}

	in := aggregate.Input{Subscriptions: subs, Corporate: corporate, Purchases: purchases}
	_, revenue := aggregate.WindowTotals(start, end, in, s.pricing.Get(), s.log)

	summary := domain.Summary{
		WindowDays:        days,
		RevenueCents:      revenue,
		RegisteredMembers: members,
		BestSellers:       stats.BestSellers(purchases, rankingSize),
		Workouts:          engagementStats(workouts),
		Programs:          engagementStats(programs),
		PartialSources:    failed,
	}

	paying := payingCustomers(subs, purchases, start, end)
	summary.UniquePurchasers = paying
	summary.ConversionRate = stats.Percent(paying, members)
	summary.CustomerLifetimeValueCents = stats.LifetimeValue(revenue, paying)

	answered := int64(0)
	created := make([]time.Time, 0, len(messages))
	responded := make([]*time.Time, 0, len(messages))
	for _, m := range messages {
		created = append(created, m.CreatedAt)
		responded = append(responded, m.RespondedAt)
		if m.RespondedAt != nil {
			answered++
		}
	}
	summary.ResponseRate = stats.Percent(answered, int64(len(messages)))
	summary.ResponseTimes = stats.ResponseTimes(created, responded)

	var visitPages, visitSources []string
	for _, ev := range traffic {
		switch ev.EventType {
		case trafficdomain.EventTypeVisit:
			summary.Visits++
			visitPages = append(visitPages, ev.LandingPage)
			visitSources = append(visitSources, ev.ReferralSource)
		case trafficdomain.EventTypeSignup:
			summary.Signups++
		}
	}
	summary.SignupRate = stats.Percent(summary.Signups, summary.Visits)
	summary.TopLandingPages = stats.RankTop(visitPages, rankingSize)
	summary.TopReferralSources = stats.RankTop(visitSources, rankingSize)

	var usersInUse, seats int64
	for _, c := range corporate {
		if !timeseries.ActiveDuring(c.CreatedAt, c.CurrentPeriodEnd, start, end) {
			continue
		}
		summary.ActiveCorporatePlans++
		usersInUse += int64(c.CurrentUsersCount)
		seats += int64(c.MaxUsers)
	}
	summary.CorporateUtilization = stats.Utilization(usersInUse, seats)

	return summary, nil
}

// fetchRevenue loads the three revenue-bearing sources for [start, end]. A
// failing source contributes nothing; only all three failing is an error.
func (s *service) fetchRevenue(ctx context.Context, start, end time.Time) (aggregate.Input, []string, error) {
	var in aggregate.Input

	failed := s.fanOut(ctx, []fetch{
		{sourceSubscriptions, func(ctx context.Context) error {
			var err error
			in.Subscriptions, err = s.subscriptions.List(ctx, nil, &end)
			return err
		}},
		{sourceCorporate, func(ctx context.Context) error {
			var err error
			in.Corporate, err = s.corporate.List(ctx, nil, &end)
			return err
		}},
		{sourcePurchases, func(ctx context.Context) error {
			var err error
			in.Purchases, err = s.purchases.List(ctx, &start, &end)
			return err
		}},
	})
	if len(failed) == 3 {
		return aggregate.Input{}, nil, domain.ErrAnalyticsUnavailable
	}
	return in, failed, nil
}

type fetch struct {
	name string
	run  func(ctx context.Context) error
}

// fanOut runs every fetch in parallel and returns the names of the ones that
// failed. A failure is contained: it is logged and counted, and the remaining
// fetches keep running.
func (s *service) fanOut(ctx context.Context, fetches []fetch) []string {
	errs := make([]error, len(fetches))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range fetches {
		i, f := i, f
		g.Go(func() error {
			errs[i] = f.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	for i, f := range fetches {
		if errs[i] == nil {
			continue
		}
		s.log.Warn("analytics source failed",
			zap.String("source", f.name),
			zap.Error(errs[i]),
		)
		s.metrics.RecordSourceFailure(ctx, f.name)
		failed = append(failed, f.name)
	}
	return failed
}

// checkGeneration rejects a computation a newer request has superseded.
func (s *service) checkGeneration(ctx context.Context, gen uint64) error {
	if s.generation.Load() != gen {
		s.metrics.RecordSuperseded(ctx)
		return domain.ErrSuperseded
	}
	return nil
}

// payingCustomers counts distinct members holding a paid subscription active
// in the window or any purchase inside it.
func payingCustomers(
	subs []subscriptiondomain.Subscription,
	purchases []purchasedomain.Purchase,
	start, end time.Time,
) int64 {
	seen := make(map[int64]struct{})
	for _, sub := range subs {
		if !classify.PaidSubscription(sub) {
			continue
		}
		if !timeseries.ActiveDuring(sub.CreatedAt, sub.CurrentPeriodEnd, start, end) {
			continue
		}
		seen[int64(sub.MemberID)] = struct{}{}
	}
	for _, p := range purchases {
		seen[int64(p.MemberID)] = struct{}{}
	}
	return int64(len(seen))
}

func engagementStats(interactions []engagementdomain.Interaction) domain.EngagementStats {
	var completed, favorites int64
	ratings := make([]*int16, 0, len(interactions))
	var viewedNames []string
	for _, it := range interactions {
		if it.Completed {
			completed++
		}
		if it.Favorite {
			favorites++
		}
		if it.Viewed {
			viewedNames = append(viewedNames, it.ContentName)
		}
		ratings = append(ratings, it.Rating)
	}

	total := int64(len(interactions))
	return domain.EngagementStats{
		Interactions:   total,
		CompletionRate: stats.CompletionRate(completed, total),
		Favorites:      favorites,
		AverageRating:  stats.AverageRating(ratings),
		MostViewed:     stats.RankTop(viewedNames, rankingSize),
	}
}

func windowDays(req domain.SummaryRequest) (int, error) {
	days := req.WindowDays
	if days == 0 {
		return defaultWindowDays, nil
	}
	if days < 0 || days > maxWindowDays {
		return 0, domain.ErrInvalidWindow
	}
	return days, nil
}
