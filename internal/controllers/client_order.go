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

type ClientOrderController struct {
	service services.ClientOrderServiceInterface
	logger  *zap.Logger
}

func NewClientOrderController(service services.ClientOrderServiceInterface, logger *zap.Logger) *ClientOrderController {
	return &ClientOrderController{service: service, logger: logger}
}

func (c *ClientOrderController) GetClientOrders(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.service.GetClientOrders(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetClientOrders: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список заказов клиентов", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список заказов клиентов успешно получен", res, total, filter)
}

func (c *ClientOrderController) FindClientOrder(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.FindClientOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти заказ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заказ успешно найден", res)
}

func (c *ClientOrderController) CreateClientOrder(ctx echo.Context) error {
	var payload dto.CreateClientOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateClientOrder: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.CreateClientOrder(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateClientOrder: ошибка при создании", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать заказ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Заказ успешно создан", res)
}

func (c *ClientOrderController) UpdateClientOrder(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateClientOrderDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.UpdateClientOrder(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateClientOrder: ошибка при обновлении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить заказ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заказ успешно обновлён", res)
}

func (c *ClientOrderController) DeleteClientOrder(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeleteClientOrder(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteClientOrder: ошибка при удалении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить заказ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Заказ успешно удалён", struct{}{})
}
