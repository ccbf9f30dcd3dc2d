package domain

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, from, to *time.Time) ([]Message, error)
}
