package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/fitlane/fitlane/internal/analytics"
	"github.com/fitlane/fitlane/internal/clock"
	"github.com/fitlane/fitlane/internal/config"
	"github.com/fitlane/fitlane/internal/corporate"
	"github.com/fitlane/fitlane/internal/engagement"
	"github.com/fitlane/fitlane/internal/inbox"
	"github.com/fitlane/fitlane/internal/member"
	"github.com/fitlane/fitlane/internal/migration"
	"github.com/fitlane/fitlane/internal/observability"
	"github.com/fitlane/fitlane/internal/purchase"
	"github.com/fitlane/fitlane/internal/ratelimit"
	"github.com/fitlane/fitlane/internal/seed"
	"github.com/fitlane/fitlane/internal/server"
	"github.com/fitlane/fitlane/internal/subscription"
	"github.com/fitlane/fitlane/internal/traffic"
	"github.com/fitlane/fitlane/pkg/db"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		migration.Module,
		seed.Module,
		ratelimit.Module,

		subscription.Module,
		corporate.Module,
		purchase.Module,
		engagement.Module,
		traffic.Module,
		inbox.Module,
		member.Module,

		analytics.Module,
		server.Module,
	)

	app.Run()
}
