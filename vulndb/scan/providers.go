package scan

import (
	"github.com/l3montree-dev/vulncorrelator/shared"
	"go.uber.org/fx"
)

// Module provides the status correlator
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewStatusCorrelator, fx.As(new(shared.StatusCorrelator)))),
)
