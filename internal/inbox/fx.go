package inbox

import (
	"github.com/fitlane/fitlane/internal/inbox/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("inbox.repository",
	fx.Provide(repository.Provide),
)
