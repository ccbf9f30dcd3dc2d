package domain

import (
	"context"
	"time"
)

// Repository counts registered members. A nil bound counts everyone.
type Repository interface {
	Count(ctx context.Context, before *time.Time) (int64, error)
}
