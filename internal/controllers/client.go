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

type ClientController struct {
	service services.ClientServiceInterface
	logger  *zap.Logger
}

func NewClientController(service services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{service: service, logger: logger}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.service.GetClients(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetClients: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список клиентов", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список клиентов успешно получен", res, total, filter)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.FindClient(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти клиента", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Клиент успешно найден", res)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	var payload dto.CreateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateClient: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.CreateClient(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateClient: ошибка при создании", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать клиента", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Клиент успешно создан", res)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateClientDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.UpdateClient(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateClient: ошибка при обновлении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить клиента", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Клиент успешно обновлён", res)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeleteClient(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteClient: ошибка при удалении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить клиента", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Клиент успешно удалён", struct{}{})
}
