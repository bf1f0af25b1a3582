package router

import (
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/labstack/echo/v4"
)

type VulnerabilityRouter struct {
	*echo.Group
}

func NewVulnerabilityRouter(apiV1Router APIV1Router, vulnerabilityController *controllers.VulnerabilityController) VulnerabilityRouter {
	vulnerabilityRouter := apiV1Router.Group.Group("/vulnerabilities")

	vulnerabilityRouter.GET("/purl/", vulnerabilityController.Purl)
	vulnerabilityRouter.GET("/purl/openvex.json/", vulnerabilityController.PurlOpenVeX)
	vulnerabilityRouter.GET("/cpe/", vulnerabilityController.Cpe)
	vulnerabilityRouter.POST("/analyze/", vulnerabilityController.Analyze)

	return VulnerabilityRouter{Group: vulnerabilityRouter}
}
