package controllers

import (
	"fmt"
	"net/http"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type QuoteInvoiceController struct {
	service     services.QuoteInvoiceServiceInterface
	fileService services.FileServiceInterface
	logger      *zap.Logger
}

func NewQuoteInvoiceController(service services.QuoteInvoiceServiceInterface, fileService services.FileServiceInterface, logger *zap.Logger) *QuoteInvoiceController {
	return &QuoteInvoiceController{service: service, fileService: fileService, logger: logger}
}

func (c *QuoteInvoiceController) GetQuoteInvoices(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.service.GetQuoteInvoices(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetQuoteInvoices: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список документов", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список документов успешно получен", res, total, filter)
}

func (c *QuoteInvoiceController) FindQuoteInvoice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.FindQuoteInvoice(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти документ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Документ успешно найден", res)
}

func (c *QuoteInvoiceController) CreateQuoteInvoice(ctx echo.Context) error {
	var payload dto.CreateQuoteInvoiceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateQuoteInvoice: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.CreateQuoteInvoice(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateQuoteInvoice: ошибка при создании", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать документ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Документ успешно создан", res)
}

func (c *QuoteInvoiceController) UpdateQuoteInvoice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateQuoteInvoiceDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.service.UpdateQuoteInvoice(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateQuoteInvoice: ошибка при обновлении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить документ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Документ успешно обновлён", res)
}

func (c *QuoteInvoiceController) DeleteQuoteInvoice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.service.DeleteQuoteInvoice(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteQuoteInvoice: ошибка при удалении", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить документ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Документ успешно удалён", struct{}{})
}

// UploadDocument прикрепляет PDF; предыдущий файл документа удаляется.
func (c *QuoteInvoiceController) UploadDocument(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Файл не передан (поле 'file')", apperrors.ErrBadRequest, nil),
			c.logger)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer src.Close()

	path, err := c.fileService.UploadDocument(ctx.Request().Context(), id, fileHeader.Filename, src)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось загрузить документ", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Документ загружен", map[string]string{"file_path": path})
}

func (c *QuoteInvoiceController) DownloadDocument(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	opened, err := c.fileService.OpenDocument(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить документ", err, nil),
			c.logger)
	}
	defer opened.File.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, opened.FileName))
	return ctx.Stream(http.StatusOK, opened.MimeType, opened.File)
}
