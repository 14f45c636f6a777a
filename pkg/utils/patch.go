// Файл: utils/patch.go
package utils

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	apperrors "refurb-tracker/pkg/errors"

	"github.com/labstack/echo/v4"
)

// BindPatch разбирает тело запроса в dto и возвращает набор реально присланных полей.
// Поле, присланное как null, тоже считается присланным: его нужно обнулить.
func BindPatch(c echo.Context, dto interface{}) (map[string]bool, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать тело запроса: %w", err)
	}
	return DecodePatch(body, dto)
}

func DecodePatch(body []byte, dto interface{}) (map[string]bool, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	var sentFields map[string]json.RawMessage
	if err := json.Unmarshal(body, &sentFields); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}
	if err := json.Unmarshal(body, dto); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err)
	}

	sent := make(map[string]bool, len(sentFields))
	for k := range sentFields {
		sent[k] = true
	}
	return sent, nil
}

// PatchMap превращает присланные поля patch-DTO в карту "колонка -> значение".
// Колонка берётся из тега db, иначе из json. Невалидные null-типы и nil-указатели дают NULL.
func PatchMap(patchDTO interface{}, sent map[string]bool) map[string]interface{} {
	v := reflect.ValueOf(patchDTO)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	result := make(map[string]interface{})
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		jsonName := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonName == "" || jsonName == "-" || !sent[jsonName] {
			continue
		}

		column := jsonName
		if dbTag := field.Tag.Get("db"); dbTag != "" {
			if dbTag == "-" {
				continue
			}
			column = dbTag
		}

		result[column] = columnValue(v.Field(i))
	}
	return result
}

func columnValue(fv reflect.Value) interface{} {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}
	if valuer, ok := fv.Interface().(driver.Valuer); ok {
		val, err := valuer.Value()
		if err != nil {
			return nil
		}
		return val
	}
	return fv.Interface()
}
