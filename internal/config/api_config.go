package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
)

// Ошибки валидации секции API.
var (
	ErrBaseURLInvalid      = errors.New("api: base URL должен быть http(s) адресом с host")
	ErrSuccessMarkerEmpty  = errors.New("api: маркер успеха не может быть пустым")
	ErrRequestTimeout      = errors.New("api: таймаут запроса должен быть положительным")
	ErrRateLimitNegative   = errors.New("api: rate limit не может быть отрицательным")
	ErrOutputFormatInvalid = errors.New("api: формат вывода должен быть text или json")
	ErrScenarioRequired    = errors.New("api: не задан ни сценарий, ни файл сценария")
)

// APIConfig описывает тестируемый API и параметры прогона.
type APIConfig struct {
	// BaseURL - корень API, к которому добавляются пути шагов.
	BaseURL string `yaml:"baseUrl" env:"BR_BASE_URL" env-default:"http://localhost:5000/api"`

	// SuccessMarker - подстрока тела ответа, означающая успех шага.
	SuccessMarker string `yaml:"successMarker" env:"BR_SUCCESS_MARKER" env-default:"\"status\": \"success\""`

	RequestTimeout time.Duration `yaml:"requestTimeout" env:"BR_REQUEST_TIMEOUT" env-default:"30s"`

	// EchoJSON печатает тело каждого успешного ответа.
	EchoJSON bool `yaml:"echoJson" env:"BR_ECHO_JSON" env-default:"false"`

	// RateLimit - запросов в секунду, 0 без ограничения.
	RateLimit float64 `yaml:"rateLimit" env:"BR_RATE_LIMIT" env-default:"0"`

	// StrictEnvelope дополнительно проверяет ответ по JSON схеме {status, message}.
	StrictEnvelope bool `yaml:"strictEnvelope" env:"BR_STRICT_ENVELOPE" env-default:"false"`

	UserAgent string `yaml:"userAgent" env:"BR_USER_AGENT"`

	Scenario string `yaml:"scenario" env:"BR_SCENARIO" env-default:"boxing"`

	// ScenarioFile - YAML сценарий, заменяет встроенный.
	ScenarioFile string `yaml:"scenarioFile" env:"BR_SCENARIO_FILE"`

	// ReportFile - куда дополнительно записать JSON отчёт.
	ReportFile string `yaml:"reportFile" env:"BR_REPORT_FILE"`

	OutputFormat string `yaml:"outputFormat" env:"BR_OUTPUT_FORMAT" env-default:"text"`
}

// Validate проверяет секцию API. Ошибки здесь фатальны для запуска.
func (c *APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrBaseURLInvalid
	}
	if c.SuccessMarker == "" {
		return ErrSuccessMarkerEmpty
	}
	if c.RequestTimeout <= 0 {
		return ErrRequestTimeout
	}
	if c.RateLimit < 0 {
		return ErrRateLimitNegative
	}
	if !output.IsValidFormat(c.OutputFormat) {
		return fmt.Errorf("%w, получено: %q", ErrOutputFormatInvalid, c.OutputFormat)
	}
	if c.Scenario == "" && c.ScenarioFile == "" {
		return ErrScenarioRequired
	}
	return nil
}

// loadAPIConfig берёт секцию api из файла и накладывает BR_* переменные.
func loadAPIConfig(l *slog.Logger, cfg *Config) (*APIConfig, error) {
	apiConfig := &APIConfig{}
	if cfg.AppConfig != nil {
		*apiConfig = cfg.AppConfig.API
	}

	if err := cleanenv.ReadEnv(apiConfig); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать параметры API из окружения", err)
	}

	if err := apiConfig.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"некорректная конфигурация API", err)
	}

	l.Debug("API конфигурация загружена",
		slog.String("base_url", urlutil.MaskURL(apiConfig.BaseURL)),
		slog.String("scenario", apiConfig.Scenario),
		slog.Duration("timeout", apiConfig.RequestTimeout),
	)
	return apiConfig, nil
}
