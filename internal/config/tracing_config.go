package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" env:"BR_TRACING_ENABLED" env-default:"false"`

	// Endpoint - OTLP HTTP endpoint, например http://jaeger:4318.
	Endpoint string `yaml:"endpoint" env:"BR_TRACING_ENDPOINT"`

	ServiceName string `yaml:"serviceName" env:"BR_TRACING_SERVICE_NAME" env-default:"boxing-smoke"`
	Environment string `yaml:"environment" env:"BR_TRACING_ENVIRONMENT" env-default:"ci"`

	// Insecure - HTTP вместо HTTPS.
	Insecure bool `yaml:"insecure" env:"BR_TRACING_INSECURE" env-default:"true"`

	Timeout time.Duration `yaml:"timeout" env:"BR_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate - от 0.0 до 1.0. Значение 0 из yaml заменяется env-default,
	// для полного отключения сэмплирования используйте enabled: false.
	SamplingRate float64 `yaml:"samplingRate" env:"BR_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// ToTracing конвертирует секцию в tracing.Config.
func (c *TracingConfig) ToTracing() tracing.Config {
	if c == nil {
		return tracing.DefaultConfig()
	}
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Version:      constants.Version,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}

// loadTracingConfig загружает секцию tracing. Некорректная секция отключается.
func loadTracingConfig(l *slog.Logger, cfg *Config) *TracingConfig {
	tracingConfig := &TracingConfig{}
	if cfg.AppConfig != nil {
		*tracingConfig = cfg.AppConfig.Tracing
	}

	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		l.Warn("Ошибка загрузки Tracing конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	converted := tracingConfig.ToTracing()
	if err := converted.Validate(); err != nil {
		l.Warn("Некорректная Tracing конфигурация, трейсинг отключён",
			slog.String("error", err.Error()),
		)
		tracingConfig.Enabled = false
	}

	l.Debug("Tracing конфигурация загружена",
		slog.Bool("enabled", tracingConfig.Enabled),
		slog.String("endpoint", tracingConfig.Endpoint),
	)
	return tracingConfig
}
