package routes

import (
	"refurb-tracker/internal/controllers"
	"refurb-tracker/internal/entities"

	"github.com/labstack/echo/v4"
)

func runDeviceRouter(secureGroup *echo.Group, deviceCtrl *controllers.DeviceController, interventionCtrl *controllers.InterventionController, fileCtrl *controllers.FileController) {
	devices := secureGroup.Group("/devices")

	devices.GET("", deviceCtrl.GetDevices)
	devices.POST("", deviceCtrl.CreateDevice)
	devices.GET("/export", deviceCtrl.ExportDevices)
	devices.POST("/import", deviceCtrl.ImportDevices)

	devices.GET("/:id", deviceCtrl.FindDevice)
	devices.PUT("/:id", deviceCtrl.UpdateDevice)
	devices.DELETE("/:id", deviceCtrl.DeleteDevice)
	devices.GET("/:id/detail", deviceCtrl.GetDeviceDetail)
	devices.POST("/:id/photo", deviceCtrl.UploadPhoto)

	devices.GET("/:id/interventions", interventionCtrl.GetDeviceInterventions)
	devices.GET("/:id/files", fileCtrl.ListFiles(entities.FileKindDevice))
	devices.POST("/:id/files", fileCtrl.Upload(entities.FileKindDevice))
}
