package domain

import (
	"context"
	"time"
)

// Repository lists subscription records for analytics. The range filters on
// created_at; a nil bound leaves that side open.
type Repository interface {
	List(ctx context.Context, from, to *time.Time) ([]Subscription, error)
}
