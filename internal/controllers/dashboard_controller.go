package controllers

import (
	"net/http"

	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetStats(ctx echo.Context) error {
	stats, err := c.dashboardService.GetStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить статистику", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Статистика получена", stats)
}
