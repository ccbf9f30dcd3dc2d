// Package domain contains read models for one-off purchases.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Content types sold as one-off purchases. Personal training is broken out as
// its own revenue category; everything else aggregates as standalone.
const (
	ContentTypeWorkout          = "workout"
	ContentTypeProgram          = "program"
	ContentTypePersonalTraining = "personal_training"
	ContentTypeShopProduct      = "shop_product"
)

// Purchase is a completed one-off sale. There is no complimentary concept for
// purchases; a nil price is a data-quality gap and counts as zero.
type Purchase struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	MemberID    snowflake.ID `gorm:"not null;index"`
	ContentType string       `gorm:"type:text;not null"`
	ContentName string       `gorm:"type:text;not null"`
	PriceCents  *int64       `gorm:""`
	PurchasedAt time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Purchase) TableName() string { return "purchases" }

// Amount applies the default-value policy for missing prices.
func (p Purchase) Amount() int64 {
	if p.PriceCents == nil {
		return 0
	}
	return *p.PriceCents
}
