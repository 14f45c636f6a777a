package routes

import (
	"refurb-tracker/internal/controllers"
	"refurb-tracker/pkg/middleware"
	"refurb-tracker/pkg/service"

	"github.com/labstack/echo/v4"
)

// runDirectoryRouter - клиенты и операторы. Удаление и правка операторов только для admin.
func runDirectoryRouter(secureGroup *echo.Group, clientCtrl *controllers.ClientController, operatorCtrl *controllers.OperatorController, deviceCtrl *controllers.DeviceController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRole(service.RoleAdmin)

	secureGroup.GET("/clients", clientCtrl.GetClients)
	secureGroup.POST("/clients", clientCtrl.CreateClient)
	secureGroup.GET("/clients/:id", clientCtrl.FindClient)
	secureGroup.PUT("/clients/:id", clientCtrl.UpdateClient)
	secureGroup.DELETE("/clients/:id", clientCtrl.DeleteClient, adminOnly)
	secureGroup.GET("/clients/:id/devices", deviceCtrl.GetClientDevices)

	secureGroup.GET("/operators", operatorCtrl.GetOperators)
	secureGroup.POST("/operators", operatorCtrl.CreateOperator, adminOnly)
	secureGroup.GET("/operators/:id", operatorCtrl.FindOperator)
	secureGroup.PUT("/operators/:id", operatorCtrl.UpdateOperator, adminOnly)
	secureGroup.DELETE("/operators/:id", operatorCtrl.DeleteOperator, adminOnly)
	secureGroup.GET("/operators/:id/devices", deviceCtrl.GetOperatorDevices)
}
