package repository

import (
	"context"
	"time"

	inboxdomain "github.com/fitlane/fitlane/internal/inbox/domain"
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

func Provide(p Params) inboxdomain.Repository {
	return &repo{
		db:  p.DB,
		log: p.Log.Named("inbox.repository"),
	}
}

func (r *repo) List(ctx context.Context, from, to *time.Time) ([]inboxdomain.Message, error) {
	query := r.db.WithContext(ctx).Model(&inboxdomain.Message{})
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at <= ?", to.UTC())
	}

	var rows []inboxdomain.Message
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
