package router

import (
	"github.com/l3montree-dev/vulncorrelator/controllers"
	"github.com/labstack/echo/v4"
)

type AdvisoryRouter struct {
	*echo.Group
}

func NewAdvisoryRouter(apiV1Router APIV1Router, ingestionController *controllers.IngestionController) AdvisoryRouter {
	advisoryRouter := apiV1Router.Group.Group("/advisories")

	advisoryRouter.POST("/", ingestionController.CreateAdvisory)
	advisoryRouter.GET("/:advisoryID/", ingestionController.ReadAdvisory)
	advisoryRouter.DELETE("/:advisoryID/", ingestionController.DeleteAdvisory)

	return AdvisoryRouter{Group: advisoryRouter}
}
