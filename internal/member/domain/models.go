// Package domain contains read models for registered members.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Member is a registered platform user. Analytics only needs the population
// size as the conversion-rate denominator.
type Member struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Email       string       `gorm:"type:text;not null;uniqueIndex"`
	DisplayName string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "members" }
