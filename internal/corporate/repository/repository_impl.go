package repository

import (
	"context"
	"time"

	corporatedomain "github.com/fitlane/fitlane/internal/corporate/domain"
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

func Provide(p Params) corporatedomain.Repository {
	return &repo{
		db:  p.DB,
		log: p.Log.Named("corporate.repository"),
	}
}

func (r *repo) List(ctx context.Context, from, to *time.Time) ([]corporatedomain.CorporateSubscription, error) {
	query := r.db.WithContext(ctx).Model(&corporatedomain.CorporateSubscription{})
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at <= ?", to.UTC())
	}

	var rows []corporatedomain.CorporateSubscription
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
