package controllers

import (
	"go.uber.org/fx"
)

// ControllerModule provides all HTTP controller constructors
var ControllerModule = fx.Options(
	// Correlation
	fx.Provide(NewVulnerabilityController),

	// Sbom graphs
	fx.Provide(NewAnalysisController),
	fx.Provide(NewIngestionController),
)
