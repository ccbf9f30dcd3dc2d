// Package seed loads a small demo dataset so a fresh deployment renders a
// meaningful dashboard. Seeding is idempotent: it only runs against an empty
// members table.
package seed

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fitlane/fitlane/internal/config"
	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
	engagementdomain "github.com/fitlane/fitlane/internal/engagement/domain"
	inboxdomain "github.com/fitlane/fitlane/internal/inbox/domain"
	memberdomain "github.com/fitlane/fitlane/internal/member/domain"
	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
	subscriptiondomain "github.com/fitlane/fitlane/internal/subscription/domain"
	trafficdomain "github.com/fitlane/fitlane/internal/traffic/domain"
)

// Run seeds demo data when SEED_DEMO is set.
func Run(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
	log = log.Named("seed")
	if !cfg.SeedDemo {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&memberdomain.Member{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Info("members already present, skipping demo seed")
			return nil
		}

		if err := seedDemo(tx, node); err != nil {
			return err
		}
		log.Info("demo data seeded")
		return nil
	})
}

func seedDemo(tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	monthsAgo := func(m, days int) time.Time { return now.AddDate(0, -m, -days) }
	price := func(v int64) *int64 { return &v }
	rating := func(v int16) *int16 { return &v }

	members := []memberdomain.Member{
		{ID: node.Generate(), Email: "ava@example.com", DisplayName: "Ava Martin", CreatedAt: monthsAgo(5, 0)},
		{ID: node.Generate(), Email: "liam@example.com", DisplayName: "Liam Chen", CreatedAt: monthsAgo(4, 10)},
		{ID: node.Generate(), Email: "noah@example.com", DisplayName: "Noah Patel", CreatedAt: monthsAgo(3, 2)},
		{ID: node.Generate(), Email: "mia@example.com", DisplayName: "Mia Lopez", CreatedAt: monthsAgo(1, 5)},
	}
	if err := tx.Create(&members).Error; err != nil {
		return err
	}

	subscriptions := []subscriptiondomain.Subscription{
		{ID: node.Generate(), MemberID: members[0].ID, PlanType: config.PlanGold, Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "pay_demo_1", CreatedAt: monthsAgo(5, 0)},
		{ID: node.Generate(), MemberID: members[1].ID, PlanType: config.PlanPlatinum, Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "pay_demo_2", CreatedAt: monthsAgo(4, 8)},
		{ID: node.Generate(), MemberID: members[2].ID, PlanType: config.PlanGold, Status: subscriptiondomain.SubscriptionStatusActive, PaymentRef: "", CreatedAt: monthsAgo(3, 0)},
	}
	if err := tx.Create(&subscriptions).Error; err != nil {
		return err
	}

	corporate := []corporatedomain.CorporateSubscription{
		{ID: node.Generate(), OrganizationName: "Northwind Fitness", PlanType: config.CorporatePlanPower, Status: corporatedomain.CorporateStatusActive, MaxUsers: 50, CurrentUsersCount: 34, PaymentRef: "pay_demo_c1", CustomerRef: "cus_demo_c1", CreatedAt: monthsAgo(4, 0)},
	}
	if err := tx.Create(&corporate).Error; err != nil {
		return err
	}

	purchases := []purchasedomain.Purchase{
		{ID: node.Generate(), MemberID: members[2].ID, ContentType: purchasedomain.ContentTypePersonalTraining, ContentName: "1:1 Strength Session", PriceCents: price(7500), PurchasedAt: monthsAgo(0, 12)},
		{ID: node.Generate(), MemberID: members[3].ID, ContentType: purchasedomain.ContentTypeWorkout, ContentName: "HIIT Ignite", PriceCents: price(1200), PurchasedAt: monthsAgo(0, 6)},
		{ID: node.Generate(), MemberID: members[0].ID, ContentType: purchasedomain.ContentTypeProgram, ContentName: "8-Week Shred", PriceCents: price(4900), PurchasedAt: monthsAgo(1, 2)},
	}
	if err := tx.Create(&purchases).Error; err != nil {
		return err
	}

	interactions := []engagementdomain.Interaction{
		{ID: node.Generate(), MemberID: members[0].ID, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "HIIT Ignite", Completed: true, Viewed: true, Favorite: true, Rating: rating(5), CreatedAt: monthsAgo(0, 4)},
		{ID: node.Generate(), MemberID: members[1].ID, ContentKind: engagementdomain.ContentKindWorkout, ContentName: "HIIT Ignite", Completed: true, Viewed: true, Rating: rating(4), CreatedAt: monthsAgo(0, 3)},
		{ID: node.Generate(), MemberID: members[3].ID, ContentKind: engagementdomain.ContentKindProgram, ContentName: "8-Week Shred", Viewed: true, CreatedAt: monthsAgo(0, 2)},
	}
	if err := tx.Create(&interactions).Error; err != nil {
		return err
	}

	events := []trafficdomain.TrafficEvent{
		{ID: node.Generate(), SessionID: uuid.New(), EventType: trafficdomain.EventTypeVisit, LandingPage: "/home", DeviceType: "mobile", ReferralSource: "instagram", CreatedAt: monthsAgo(0, 5)},
		{ID: node.Generate(), SessionID: uuid.New(), EventType: trafficdomain.EventTypeVisit, LandingPage: "/pricing", DeviceType: "desktop", ReferralSource: "google", CreatedAt: monthsAgo(0, 4)},
		{ID: node.Generate(), SessionID: uuid.New(), EventType: trafficdomain.EventTypeSignup, LandingPage: "/signup", DeviceType: "mobile", ReferralSource: "instagram", CreatedAt: monthsAgo(0, 4)},
	}
	if err := tx.Create(&events).Error; err != nil {
		return err
	}

	answered := monthsAgo(0, 7).Add(3 * time.Hour)
	messages := []inboxdomain.Message{
		{ID: node.Generate(), SenderEmail: "ava@example.com", Subject: "Billing question", CreatedAt: monthsAgo(0, 7), RespondedAt: &answered},
		{ID: node.Generate(), SenderEmail: "visitor@example.com", Subject: "Corporate plans", CreatedAt: monthsAgo(0, 1)},
	}
	return tx.Create(&messages).Error
}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)
