package domain

import (
	"context"
	"errors"
)

type TrendRequest struct {
	MonthsBack int
}

type SummaryRequest struct {
	WindowDays int
}

type Service interface {
	RevenueTrend(ctx context.Context, req TrendRequest) (RevenueTrend, error)
	Summary(ctx context.Context, req SummaryRequest) (Summary, error)
	Distribution(ctx context.Context, req SummaryRequest) (Distribution, error)
}

var (
	ErrInvalidWindow        = errors.New("invalid_window")
	ErrAnalyticsUnavailable = errors.New("analytics_unavailable")
	ErrSuperseded           = errors.New("request_superseded")
)
