package domain

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, kind ContentKind, from, to *time.Time) ([]Interaction, error)
}
