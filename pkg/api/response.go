package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"refurb-tracker/pkg/types"
)

type Response[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Body    T      `json:"body,omitempty"`
}

type ListBody[T any] struct {
	List       []T               `json:"list"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

// SuccessOne - для возврата одного объекта
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

// SuccessList - список с пагинацией (если она запрошена фильтром).
func SuccessList[T any](c echo.Context, message string, list []T, total uint64, filter types.Filter) error {
	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{List: list}
	if filter.WithPagination {
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = int((total + uint64(filter.Limit) - 1) / uint64(filter.Limit))
		}
		body.Pagination = &types.Pagination{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       filter.Page,
			Limit:      filter.Limit,
		}
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}
