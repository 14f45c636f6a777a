package controllers

import (
	"net/http"
	"strings"

	"refurb-tracker/internal/services"
	"refurb-tracker/pkg/api"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
	"refurb-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryController struct {
	categoryService *services.CategoryService
	logger          *zap.Logger
}

func NewCategoryController(categoryService *services.CategoryService, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, logger: logger}
}

func (c *CategoryController) Search(ctx echo.Context) error {
	res := c.categoryService.Search(strings.TrimSpace(ctx.QueryParam("search")))
	return api.SuccessList(ctx, "Категории получены", res, uint64(len(res)), types.Filter{})
}

// ProductCode считает товарный код без сохранения: GET /categories/code?category=&item_code=
func (c *CategoryController) ProductCode(ctx echo.Context) error {
	label := ctx.QueryParam("category")
	itemCode := strings.TrimSpace(ctx.QueryParam("item_code"))
	if label == "" || itemCode == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Нужны параметры category и item_code", apperrors.ErrBadRequest, nil),
			c.logger)
	}
	return api.SuccessOne(ctx, http.StatusOK, "Товарный код", c.categoryService.ProductCode(label, itemCode))
}
