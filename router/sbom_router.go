package router

import (
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/labstack/echo/v4"
)

type SbomRouter struct {
	*echo.Group
}

func NewSbomRouter(
	apiV1Router APIV1Router,
	ingestionController *controllers.IngestionController,
	analysisController *controllers.AnalysisController,
) SbomRouter {
	sbomsRouter := apiV1Router.Group.Group("/sboms")
	sbomsRouter.POST("/", ingestionController.CreateSbom)
	sbomsRouter.POST("/cyclonedx/", ingestionController.ImportCycloneDX)

	sbomRouter := sbomsRouter.Group("/:sbomID")
	sbomRouter.DELETE("/", ingestionController.DeleteSbom)

	sbomRouter.GET("/ancestors/", analysisController.Ancestors)
	sbomRouter.GET("/descendants/", analysisController.Descendants)
	sbomRouter.GET("/roots/", analysisController.Roots)
	sbomRouter.GET("/graph.dot/", analysisController.Dot)
	sbomRouter.GET("/cyclonedx.json/", analysisController.CycloneDX)
	sbomRouter.GET("/vulnerabilities/", analysisController.Vulnerabilities)
	sbomRouter.GET("/nodes/:nodeID/external/", analysisController.ResolveExternal)

	sbomRouter.GET("/cache/", analysisController.CacheStatus)
	sbomRouter.DELETE("/cache/", analysisController.EvictCache)

	return SbomRouter{Group: sbomRouter}
}
