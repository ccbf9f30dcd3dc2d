package analytics

import (
	"github.com/fitlane/fitlane/internal/analytics/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.Provide),
)
