package domain

import (
	"context"
	"time"
)

// Repository lists purchases ordered by purchase time ascending, which the
// ranking layer relies on for deterministic tie-breaking.
type Repository interface {
	List(ctx context.Context, from, to *time.Time) ([]Purchase, error)
}
