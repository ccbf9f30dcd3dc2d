// Package domain contains read models for operator inbox messages.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Message is a support request from a member or visitor. RespondedAt stays
// nil until an operator replies; response-time stats only consider answered
// messages.
type Message struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	SenderEmail string       `gorm:"type:text;not null"`
	Subject     string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null;index"`
	RespondedAt *time.Time   `gorm:""`
}

// TableName sets the database table name.
func (Message) TableName() string { return "inbox_messages" }
