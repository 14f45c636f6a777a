package routes

import (
	"refurb-tracker/internal/controllers"
	"refurb-tracker/internal/entities"

	"github.com/labstack/echo/v4"
)

func runInterventionRouter(secureGroup *echo.Group, interventionCtrl *controllers.InterventionController, fileCtrl *controllers.FileController) {
	secureGroup.GET("/interventions", interventionCtrl.GetInterventions)
	secureGroup.POST("/interventions", interventionCtrl.CreateIntervention)
	secureGroup.GET("/interventions/:id", interventionCtrl.FindIntervention)
	secureGroup.PUT("/interventions/:id", interventionCtrl.UpdateIntervention)
	secureGroup.DELETE("/interventions/:id", interventionCtrl.DeleteIntervention)

	secureGroup.GET("/interventions/:id/files", fileCtrl.ListFiles(entities.FileKindIntervention))
	secureGroup.POST("/interventions/:id/files", fileCtrl.Upload(entities.FileKindIntervention))
}
