package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ParseFilterFromQuery разбирает search, filter[...], sort[...], limit/page/offset и withPagination.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
			filterReq.Page = o/filterReq.Limit + 1
		}
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = strings.TrimSpace(vals[0])
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = strings.Join(vals, ",")
		}
	}

	return filterReq
}

// ParseFilter - ParseFilterFromQuery для запроса echo, плюс порядок полей сортировки.
func ParseFilter(ctx echo.Context) types.Filter {
	u := ctx.Request().URL
	filter := ParseFilterFromQuery(u.Query())
	filter.SortOrder = SortOrderFromRawQuery(u.RawQuery, filter.Sort)
	return filter
}

// SortOrderFromRawQuery восстанавливает порядок sort[...] из сырой строки запроса:
// url.Values - это map, и порядок в нём теряется.
func SortOrderFromRawQuery(rawQuery string, sort map[string]string) []string {
	var order []string
	seen := make(map[string]bool, len(sort))
	for _, part := range strings.Split(rawQuery, "&") {
		rawKey, _, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || !strings.HasPrefix(key, "sort[") || !strings.HasSuffix(key, "]") {
			continue
		}
		field := key[5 : len(key)-1]
		if _, ok := sort[field]; ok && !seen[field] {
			order = append(order, field)
			seen[field] = true
		}
	}
	return order
}

func ParseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			apperrors.ErrBadRequest,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

// ErrorResponse отдаёт клиенту сообщение об ошибке и пишет её в лог.
// Для HttpError с кодом 500 код и сообщение уточняются по вложенной известной ошибке.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code, message := httpErr.Code, httpErr.Message
		if code == http.StatusInternalServerError && httpErr.Err != nil {
			if known := apperrors.StatusCode(httpErr.Err); known != http.StatusInternalServerError {
				code, message = known, rootMessage(httpErr.Err)
			}
		}

		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", code),
				zap.String("message", message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Ошибка валидации: " + strings.Join(msgs, "; ")})
	}

	if code := apperrors.StatusCode(err); code != http.StatusInternalServerError {
		logger.Warn("Ошибка запроса", zap.Int("code", code), zap.Error(err))
		return c.JSON(code, map[string]interface{}{"status": false, "message": rootMessage(err)})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}

// rootMessage возвращает текст самой внутренней ошибки, чтобы не показывать технический контекст.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
