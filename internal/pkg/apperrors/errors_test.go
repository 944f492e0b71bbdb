package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes_Format(t *testing.T) {
	codes := []string{
		ErrConfigLoad, ErrConfigParse, ErrConfigValidate,
		ErrScenarioNotFound, ErrScenarioInvalid,
		ErrStepRequest, ErrStepMarkerMissing, ErrStepSchema, ErrStepTemplate,
		ErrOutputFormat,
		ErrHistoryConnect, ErrHistoryQuery,
	}

	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			parts := strings.Split(code, ".")
			require.Len(t, parts, 2, "код должен иметь формат CATEGORY.SPECIFIC")
			assert.Equal(t, strings.ToUpper(code), code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withCause := NewAppError(ErrStepRequest, "шаг health: запрос не выполнен", errors.New("connection refused"))
	assert.Equal(t, "STEP.REQUEST_FAILED: шаг health: запрос не выполнен (connection refused)", withCause.Error())

	withoutCause := NewAppError(ErrStepMarkerMissing, "шаг fight: маркер не найден", nil)
	assert.Equal(t, "STEP.MARKER_MISSING: шаг fight: маркер не найден", withoutCause.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("оригинальная ошибка")
	appErr := NewAppError(ErrConfigLoad, "не удалось загрузить конфигурацию", cause)

	assert.Equal(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))
	assert.Nil(t, NewAppError(ErrConfigLoad, "x", nil).Unwrap())
}

func TestCodeOf(t *testing.T) {
	appErr := NewAppError(ErrStepSchema, "невалидный ответ", nil)

	assert.Equal(t, ErrStepSchema, CodeOf(appErr))
	assert.Equal(t, ErrStepSchema, CodeOf(fmt.Errorf("обёртка: %w", appErr)))
	assert.Empty(t, CodeOf(errors.New("обычная ошибка")))
	assert.Empty(t, CodeOf(nil))
}

func TestAppError_JSON_HidesCause(t *testing.T) {
	appErr := NewAppError(ErrHistoryConnect, "не удалось открыть хранилище истории", errors.New("password=secret"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, ErrHistoryConnect, parsed["code"])
	assert.NotContains(t, string(data), "secret")
	_, hasCause := parsed["cause"]
	assert.False(t, hasCause)
}
