package errors

import (
	"fmt"
	"net/http"
)

var (
	// Токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrUnauthorized      = fmt.Errorf("неавторизован")
	ErrForbidden         = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrOperatorNotInContext = fmt.Errorf("оператор не найден в контексте запроса")

	// Общие
	ErrNotFound        = fmt.Errorf("запись не найдена")
	ErrBadRequest      = fmt.Errorf("неверный запрос")
	ErrConflict        = fmt.Errorf("запись с такими данными уже существует")
	ErrInUse           = fmt.Errorf("запись используется или ссылается на несуществующую запись")
	ErrInvalidValue    = fmt.Errorf("недопустимое значение поля")
	ErrNothingToUpdate = fmt.Errorf("нет полей для обновления")

	// Файлы
	ErrUnknownBucket      = fmt.Errorf("неизвестное хранилище файлов")
	ErrFileTooLarge       = fmt.Errorf("файл превышает допустимый размер")
	ErrFileTypeNotAllowed = fmt.Errorf("недопустимый тип файла")
	ErrInvalidFileKind    = fmt.Errorf("неизвестный тип вложения")

	// Кэш
	ErrCacheMiss = fmt.Errorf("значение в кэше отсутствует")
)

// HttpError - ошибка с HTTP-кодом и сообщением для пользователя.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

// StatusCode подбирает HTTP-код для известных ошибок.
func StatusCode(err error) int {
	switch {
	case is(err, ErrNotFound):
		return http.StatusNotFound
	case is(err, ErrConflict):
		return http.StatusConflict
	case is(err, ErrInUse):
		return http.StatusConflict
	case is(err, ErrBadRequest), is(err, ErrInvalidValue), is(err, ErrNothingToUpdate),
		is(err, ErrUnknownBucket), is(err, ErrFileTypeNotAllowed), is(err, ErrInvalidFileKind):
		return http.StatusBadRequest
	case is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case is(err, ErrEmptyAuthHeader), is(err, ErrInvalidAuthHeader), is(err, ErrInvalidToken),
		is(err, ErrTokenExpired), is(err, ErrInvalidSigningMethod), is(err, ErrUnauthorized),
		is(err, ErrOperatorNotInContext):
		return http.StatusUnauthorized
	case is(err, ErrForbidden):
		return http.StatusForbidden
	}
	var invalid *InvalidInputError
	if as(err, &invalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
