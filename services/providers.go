package services

import (
	"context"
	"log/slog"

	"github.com/l3montree-dev/vulncorrelator/shared"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(NewAnalysisService),
	fx.Provide(func(s *AnalysisService) shared.AnalysisService { return s }),
	fx.Provide(fx.Annotate(NewIngestionService, fx.As(new(shared.IngestionService)))),
	fx.Invoke(registerAnalysisHooks),
)

func registerAnalysisHooks(lc fx.Lifecycle, analysisService *AnalysisService, broker shared.PubSubBroker) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := analysisService.ListenForChanges(ctx, broker); err != nil {
				return err
			}
			if shared.EnvBool("ANALYSIS_WARM_CACHE", false) {
				go func() {
					if err := analysisService.Warm(ctx); err != nil {
						slog.Warn("could not warm analysis cache", "err", err)
					}
				}()
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
