package controllers

import (
	"net/http"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type InterventionController struct {
	interventionService services.InterventionServiceInterface
	logger              *zap.Logger
}

func NewInterventionController(service services.InterventionServiceInterface, logger *zap.Logger) *InterventionController {
	return &InterventionController{interventionService: service, logger: logger}
}

func (c *InterventionController) GetInterventions(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.interventionService.GetInterventions(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetInterventions: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список вмешательств", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список вмешательств успешно получен", res, total, filter)
}

func (c *InterventionController) GetDeviceInterventions(ctx echo.Context) error {
	deviceID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilter(ctx)

	res, total, err := c.interventionService.GetDeviceInterventions(ctx.Request().Context(), deviceID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить вмешательства устройства", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Вмешательства устройства получены", res, total, filter)
}

func (c *InterventionController) FindIntervention(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interventionService.FindIntervention(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти вмешательство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Вмешательство успешно найдено", res)
}

func (c *InterventionController) CreateIntervention(ctx echo.Context) error {
	var payload dto.CreateInterventionDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateIntervention: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interventionService.CreateIntervention(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateIntervention: ошибка при создании", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать вмешательство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Вмешательство успешно создано", res)
}

func (c *InterventionController) UpdateIntervention(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateInterventionDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.interventionService.UpdateIntervention(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateIntervention: ошибка при обновлении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить вмешательство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Вмешательство успешно обновлено", res)
}

func (c *InterventionController) DeleteIntervention(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.interventionService.DeleteIntervention(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить вмешательство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Вмешательство успешно удалено", struct{}{})
}
