// Package apperrors предоставляет структурированные ошибки приложения.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// `grep "STEP\."` находит все ошибки выполнения шагов.
const (
	// Category: CONFIG - ошибки загрузки и валидации конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigParse    = "CONFIG.PARSE_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: SCENARIO - ошибки поиска и загрузки сценариев.
	ErrScenarioNotFound = "SCENARIO.NOT_FOUND"
	ErrScenarioInvalid  = "SCENARIO.INVALID"

	// Category: STEP - ошибки выполнения шага сценария.
	ErrStepRequest       = "STEP.REQUEST_FAILED"
	ErrStepMarkerMissing = "STEP.MARKER_MISSING"
	ErrStepSchema        = "STEP.SCHEMA_INVALID"
	ErrStepTemplate      = "STEP.TEMPLATE_FAILED"

	// Category: OUTPUT - ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"

	// Category: HISTORY - ошибки хранилища истории запусков.
	ErrHistoryConnect = "HISTORY.CONNECT_FAILED"
	ErrHistoryQuery   = "HISTORY.QUERY_FAILED"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// ВАЖНО: Message НЕ ДОЛЖЕН содержать секреты (пароли, токены, ключи).
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrStepMarkerMissing,
//	    "шаг create-boxer: маркер успеха не найден в ответе",
//	    nil)
type AppError struct {
	// Code - машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message - человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause - wrapped оригинальная ошибка. В JSON не сериализуется.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf возвращает код первого AppError в цепочке err.
// Для ошибок без AppError возвращает пустую строку.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
