package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/pkg/metrics"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
)

// MetricsConfig содержит настройки Prometheus Pushgateway.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"BR_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL - например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"BR_METRICS_PUSHGATEWAY_URL"`

	JobName string        `yaml:"jobName" env:"BR_METRICS_JOB_NAME" env-default:"boxing-smoke"`
	Timeout time.Duration `yaml:"timeout" env:"BR_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel - переопределение instance, по умолчанию hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"BR_METRICS_INSTANCE"`
}

// ToMetrics конвертирует секцию в metrics.Config.
func (c *MetricsConfig) ToMetrics() metrics.Config {
	if c == nil {
		return metrics.DefaultConfig()
	}
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// loadMetricsConfig загружает секцию metrics. Некорректная секция отключается.
func loadMetricsConfig(l *slog.Logger, cfg *Config) *MetricsConfig {
	metricsConfig := &MetricsConfig{}
	if cfg.AppConfig != nil {
		*metricsConfig = cfg.AppConfig.Metrics
	}

	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		l.Warn("Ошибка загрузки Metrics конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	converted := metricsConfig.ToMetrics()
	if err := converted.Validate(); err != nil {
		l.Warn("Некорректная Metrics конфигурация, метрики отключены",
			slog.String("error", err.Error()),
		)
		metricsConfig.Enabled = false
	}

	l.Debug("Metrics конфигурация загружена",
		slog.Bool("enabled", metricsConfig.Enabled),
		slog.String("pushgateway_url", urlutil.MaskURL(metricsConfig.PushgatewayURL)),
	)
	return metricsConfig
}
