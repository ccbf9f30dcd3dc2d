package traffic

import (
	"github.com/fitlane/fitlane/internal/traffic/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("traffic.repository",
	fx.Provide(repository.Provide),
)
