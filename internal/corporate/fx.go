package corporate

import (
	"github.com/fitlane/fitlane/internal/corporate/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("corporate.repository",
	fx.Provide(repository.Provide),
)
