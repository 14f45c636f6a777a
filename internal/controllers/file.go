package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"refurb-tracker/internal/entities"
	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FileController обслуживает вложения устройств и вмешательств.
// Вид вложения (device | intervention) задаётся при регистрации маршрута
// для /devices/:id/files и /interventions/:id/files, а для скачивания и
// удаления приходит в параметре :kind.
type FileController struct {
	fileService services.FileServiceInterface
	logger      *zap.Logger
}

func NewFileController(fileService services.FileServiceInterface, logger *zap.Logger) *FileController {
	return &FileController{fileService: fileService, logger: logger}
}

func (c *FileController) ListFiles(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ownerID, err := utils.ParseIDParam(ctx, "id")
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		filter := utils.ParseFilter(ctx)

		res, total, err := c.fileService.ListFiles(ctx.Request().Context(), kind, ownerID, filter)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить список файлов", err, nil),
				c.logger)
		}
		return api.SuccessList(ctx, "Список файлов получен", res, total, filter)
	}
}

func (c *FileController) Upload(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ownerID, err := utils.ParseIDParam(ctx, "id")
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

		res, err := c.fileService.Upload(ctx.Request().Context(), kind, ownerID, fileHeader.Filename, src)
		if err != nil {
			c.logger.Error("Upload: ошибка загрузки файла", zap.String("kind", kind), zap.Uint64("owner_id", ownerID), zap.Error(err))
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось загрузить файл", err, nil),
				c.logger)
		}
		return api.SuccessOne(ctx, http.StatusCreated, "Файл успешно загружен", res)
	}
}

func (c *FileController) Download(ctx echo.Context) error {
	kind, id, err := c.kindAndID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	opened, err := c.fileService.Open(ctx.Request().Context(), kind, id)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось получить файл", err, nil),
			c.logger)
	}
	defer opened.File.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(opened.FileName)))
	return ctx.Stream(http.StatusOK, opened.MimeType, opened.File)
}

func (c *FileController) Delete(ctx echo.Context) error {
	kind, id, err := c.kindAndID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.fileService.Delete(ctx.Request().Context(), kind, id); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось удалить файл", err, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Файл удалён", struct{}{})
}

func (c *FileController) kindAndID(ctx echo.Context) (string, uint64, error) {
	kind := ctx.Param("kind")
	if kind != entities.FileKindDevice && kind != entities.FileKindIntervention {
		return "", 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidFileKind, kind)
	}
	id, err := utils.ParseIDParam(ctx, "id")
	return kind, id, err
}
