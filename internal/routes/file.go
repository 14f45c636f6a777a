package routes

import (
	"refurb-tracker/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runFileRouter(secureGroup *echo.Group, fileCtrl *controllers.FileController) {
	secureGroup.GET("/files/:kind/:id/download", fileCtrl.Download)
	secureGroup.DELETE("/files/:kind/:id", fileCtrl.Delete)
}

func runLookupRouter(secureGroup *echo.Group, categoryCtrl *controllers.CategoryController, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/categories", categoryCtrl.Search)
	secureGroup.GET("/categories/code", categoryCtrl.ProductCode)
	secureGroup.GET("/dashboard", dashboardCtrl.GetStats)
}
