package repository

import (
	"context"
	"time"

	engagementdomain "github.com/fitlane/fitlane/internal/engagement/domain"
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

func Provide(p Params) engagementdomain.Repository {
	return &repo{
		db:  p.DB,
		log: p.Log.Named("engagement.repository"),
	}
}

func (r *repo) List(ctx context.Context, kind engagementdomain.ContentKind, from, to *time.Time) ([]engagementdomain.Interaction, error) {
	query := r.db.WithContext(ctx).
		Model(&engagementdomain.Interaction{}).
		Where("content_kind = ?", kind)
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at <= ?", to.UTC())
	}

	var rows []engagementdomain.Interaction
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
