package router

import (
	"go.uber.org/fx"
)

// RouterModule provides all router constructors
var RouterModule = fx.Options(
	fx.Provide(NewAPIV1Router),
	fx.Provide(NewVulnerabilityRouter),
	fx.Provide(NewSbomRouter),
	fx.Provide(NewAdvisoryRouter),
	fx.Provide(NewNodeRouter),
)
