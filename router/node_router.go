package router

import (
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/labstack/echo/v4"
)

type NodeRouter struct {
	*echo.Group
}

func NewNodeRouter(apiV1Router APIV1Router, analysisController *controllers.AnalysisController) NodeRouter {
	nodeRouter := apiV1Router.Group.Group("/nodes")
	nodeRouter.GET("/search/", analysisController.SearchNodes)

	return NodeRouter{Group: nodeRouter}
}
