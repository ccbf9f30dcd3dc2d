// Package domain contains read models for content interactions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ContentKind distinguishes the two interaction families tracked separately.
type ContentKind string

const (
	ContentKindWorkout ContentKind = "workout"
	ContentKindProgram ContentKind = "program"
)

// Interaction records one member's engagement with a piece of content.
type Interaction struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	MemberID    snowflake.ID `gorm:"not null;index"`
	ContentKind ContentKind  `gorm:"type:text;not null;index"`
	ContentName string       `gorm:"type:text;not null"`
	Completed   bool         `gorm:"not null;default:false"`
	Favorite    bool         `gorm:"not null;default:false"`
	Viewed      bool         `gorm:"not null;default:false"`
	Rating      *int16       `gorm:"type:smallint"`
	CreatedAt   time.Time    `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Interaction) TableName() string { return "content_interactions" }
