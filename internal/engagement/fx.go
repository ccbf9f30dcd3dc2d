package engagement

import (
	"github.com/fitlane/fitlane/internal/engagement/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("engagement.repository",
	fx.Provide(repository.Provide),
)
