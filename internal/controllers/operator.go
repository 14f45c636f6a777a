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

type OperatorController struct {
	service services.OperatorServiceInterface
	logger  *zap.Logger
}

func NewOperatorController(service services.OperatorServiceInterface, logger *zap.Logger) *OperatorController {
	return &OperatorController{service: service, logger: logger}
}

func (c *OperatorController) GetOperators(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.service.GetOperators(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetOperators: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список операторов", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список операторов успешно получен", res, total, filter)
}

func (c *OperatorController) FindOperator(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.FindOperator(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти оператора", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Оператор успешно найден", res)
}

func (c *OperatorController) CreateOperator(ctx echo.Context) error {
	var payload dto.CreateOperatorDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateOperator: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.CreateOperator(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateOperator: ошибка при создании", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать оператора", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Оператор успешно создан", res)
}

func (c *OperatorController) UpdateOperator(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOperatorDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.UpdateOperator(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateOperator: ошибка при обновлении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить оператора", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Оператор успешно обновлён", res)
}

func (c *OperatorController) DeleteOperator(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeleteOperator(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteOperator: ошибка при удалении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить оператора", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Оператор успешно удалён", struct{}{})
}
