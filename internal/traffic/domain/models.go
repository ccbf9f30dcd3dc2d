// Package domain contains read models for landing-page traffic events.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeVisit  EventType = "visit"
	EventTypeSignup EventType = "signup"
)

// TrafficEvent is an anonymous visit or signup captured on the public site.
type TrafficEvent struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	SessionID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	EventType      EventType    `gorm:"type:text;not null"`
	LandingPage    string       `gorm:"type:text"`
	DeviceType     string       `gorm:"type:text"`
	ReferralSource string       `gorm:"type:text"`
	CreatedAt      time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (TrafficEvent) TableName() string { return "traffic_events" }
