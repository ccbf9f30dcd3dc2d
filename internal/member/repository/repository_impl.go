package repository

import (
	"context"
	"time"

	memberdomain "github.com/fitlane/fitlane/internal/member/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type repo struct {
	db  *gorm.DB
	log *zap.Logger
}

func Provide(p Params) memberdomain.Repository {
	return &repo{
		db:  p.DB,
		log: p.Log.Named("member.repository"),
	}
}

func (r *repo) Count(ctx context.Context, before *time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&memberdomain.Member{})
	if before != nil {
		query = query.Where("created_at <= ?", before.UTC())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
