// Package domain contains read models for corporate plans.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CorporateStatus string

const (
	CorporateStatusActive   CorporateStatus = "active"
	CorporateStatusPastDue  CorporateStatus = "past_due"
	CorporateStatusCanceled CorporateStatus = "canceled"
)

// CorporateSubscription is an organization-wide plan with purchased seats.
// Corporate billing is invoiced externally; only accounts with both a payment
// reference and a customer reference are fully wired for revenue.
type CorporateSubscription struct {
	ID                snowflake.ID    `gorm:"primaryKey"`
	OrganizationName  string          `gorm:"type:text;not null"`
	PlanType          string          `gorm:"type:text;not null"`
	Status            CorporateStatus `gorm:"type:text;not null"`
	MaxUsers          int             `gorm:"not null"`
	CurrentUsersCount int             `gorm:"not null;default:0"`
	PaymentRef        string          `gorm:"type:text"`
	CustomerRef       string          `gorm:"type:text"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	CurrentPeriodEnd  *time.Time      `gorm:""`
	UpdatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CorporateSubscription) TableName() string { return "corporate_subscriptions" }
