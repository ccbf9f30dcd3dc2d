// Package domain contains read models for individual member subscriptions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionStatus represents lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription captures a member's plan. A subscription with no payment
// reference was granted administratively and never contributes revenue.
// Records are never deleted; cancellation only flips the status.
type Subscription struct {
	ID               snowflake.ID       `gorm:"primaryKey"`
	MemberID         snowflake.ID       `gorm:"not null;index"`
	PlanType         string             `gorm:"type:text;not null"`
	Status           SubscriptionStatus `gorm:"type:text;not null"`
	PaymentRef       string             `gorm:"type:text"`
	CreatedAt        time.Time          `gorm:"not null;index"`
	CurrentPeriodEnd *time.Time         `gorm:""`
	UpdatedAt        time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }
