package repository

import (
	"context"
	"time"

	purchasedomain "github.com/fitlane/fitlane/internal/purchase/domain"
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

func Provide(p Params) purchasedomain.Repository {
	return &repo{
		db:  p.DB,
		log: p.Log.Named("purchase.repository"),
	}
}

func (r *repo) List(ctx context.Context, from, to *time.Time) ([]purchasedomain.Purchase, error) {
	query := r.db.WithContext(ctx).Model(&purchasedomain.Purchase{})
	if from != nil {
		query = query.Where("purchased_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("purchased_at <= ?", to.UTC())
	}

	var rows []purchasedomain.Purchase
	if err := query.Order("purchased_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
