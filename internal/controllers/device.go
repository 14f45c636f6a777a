package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"refurb-tracker/internal/dto"
	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DeviceController struct {
	deviceService services.DeviceServiceInterface
	excelService  *services.DeviceExcelService
	fileService   services.FileServiceInterface
	logger        *zap.Logger
}

func NewDeviceController(
	deviceService services.DeviceServiceInterface,
	excelService *services.DeviceExcelService,
	fileService services.FileServiceInterface,
	logger *zap.Logger,
) *DeviceController {
	return &DeviceController{
		deviceService: deviceService,
		excelService:  excelService,
		fileService:   fileService,
		logger:        logger,
	}
}

func (c *DeviceController) GetDevices(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	res, total, err := c.deviceService.GetDevices(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetDevices: ошибка при получении списка устройств", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список устройств", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Список устройств успешно получен", res, total, filter)
}

func (c *DeviceController) GetClientDevices(ctx echo.Context) error {
	clientID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilter(ctx)

	res, total, err := c.deviceService.GetDevicesByClient(ctx.Request().Context(), clientID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить устройства клиента", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Устройства клиента получены", res, total, filter)
}

func (c *DeviceController) GetOperatorDevices(ctx echo.Context) error {
	operatorID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilter(ctx)

	res, total, err := c.deviceService.GetDevicesByOperator(ctx.Request().Context(), operatorID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить устройства оператора", err, nil),
			c.logger)
	}
	return api.SuccessList(ctx, "Устройства оператора получены", res, total, filter)
}

func (c *DeviceController) FindDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deviceService.FindDevice(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось найти устройство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Устройство успешно найдено", res)
}

func (c *DeviceController) GetDeviceDetail(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deviceService.GetDeviceDetail(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить карточку устройства", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Карточка устройства получена", res)
}

func (c *DeviceController) CreateDevice(ctx echo.Context) error {
	var payload dto.CreateDeviceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateDevice: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deviceService.CreateDevice(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateDevice: ошибка при создании устройства", zap.Any("payload", payload), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось создать устройство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusCreated, "Устройство успешно создано", res)
}

func (c *DeviceController) UpdateDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDeviceDTO
	sent, err := utils.BindPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.deviceService.UpdateDevice(ctx.Request().Context(), id, payload, sent)
	if err != nil {
		c.logger.Error("UpdateDevice: ошибка при обновлении устройства", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось обновить устройство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Устройство успешно обновлено", res)
}

func (c *DeviceController) DeleteDevice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.deviceService.DeleteDevice(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteDevice: ошибка при удалении устройства", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить устройство", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Устройство успешно удалено", struct{}{})
}

// ExportDevices отдаёт xlsx со всеми устройствами по текущим фильтрам.
func (c *DeviceController) ExportDevices(ctx echo.Context) error {
	filter := utils.ParseFilter(ctx)

	var buf bytes.Buffer
	count, err := c.excelService.Export(ctx.Request().Context(), filter, &buf)
	if err != nil {
		c.logger.Error("ExportDevices: ошибка при формировании файла", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось выгрузить устройства", err, nil),
			c.logger)
	}

	fileName := fmt.Sprintf("devices_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.logger.Info("Выгрузка устройств", zap.Int("rows", count))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (c *DeviceController) ImportDevices(ctx echo.Context) error {
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

	res, err := c.excelService.Import(ctx.Request().Context(), src)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось импортировать устройства", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Импорт завершён", res)
}

func (c *DeviceController) UploadPhoto(ctx echo.Context) error {
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

	path, err := c.fileService.UploadDevicePhoto(ctx.Request().Context(), id, fileHeader.Filename, src)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось загрузить фото", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Фото загружено", map[string]string{"photo_path": path})
}
