package config

import (
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/pkg/alerting"
)

// AlertingConfig содержит настройки алертинга о падении прогона.
type AlertingConfig struct {
	Enabled bool `yaml:"enabled" env:"BR_ALERTING_ENABLED" env-default:"false"`

	// RateLimitWindow - минимальный интервал между алертами с одним кодом для сценария.
	RateLimitWindow time.Duration `yaml:"rateLimitWindow" env:"BR_ALERTING_RATE_LIMIT_WINDOW" env-default:"5m"`

	Telegram alerting.TelegramConfig `yaml:"telegram"`
	Webhook  WebhookChannelConfig    `yaml:"webhook"`
	Rules    alerting.RulesConfig    `yaml:"rules"`
}

// WebhookChannelConfig содержит настройки webhook канала.
type WebhookChannelConfig struct {
	Enabled bool     `yaml:"enabled" env:"BR_ALERTING_WEBHOOK_ENABLED" env-default:"false"`
	URLs    []string `yaml:"urls" env:"BR_ALERTING_WEBHOOK_URLS" env-separator:","`

	// Headers задаются только в YAML, например Authorization.
	Headers map[string]string `yaml:"headers"`

	Timeout    time.Duration `yaml:"timeout" env:"BR_ALERTING_WEBHOOK_TIMEOUT" env-default:"10s"`
	MaxRetries int           `yaml:"maxRetries" env:"BR_ALERTING_WEBHOOK_MAX_RETRIES" env-default:"3"`
}

// ToAlerting конвертирует секцию в alerting.Config.
func (c *AlertingConfig) ToAlerting() alerting.Config {
	if c == nil {
		return alerting.DefaultConfig()
	}
	return alerting.Config{
		Enabled:         c.Enabled,
		RateLimitWindow: c.RateLimitWindow,
		Telegram:        c.Telegram,
		Webhook: alerting.WebhookConfig{
			Enabled:    c.Webhook.Enabled,
			URLs:       c.Webhook.URLs,
			Headers:    c.Webhook.Headers,
			Timeout:    c.Webhook.Timeout,
			MaxRetries: c.Webhook.MaxRetries,
		},
	}
}

// loadAlertingConfig загружает секцию alerting. Некорректная секция отключается.
func loadAlertingConfig(l *slog.Logger, cfg *Config) *AlertingConfig {
	alertingConfig := &AlertingConfig{}
	if cfg.AppConfig != nil {
		*alertingConfig = cfg.AppConfig.Alerting
	}

	if err := cleanenv.ReadEnv(alertingConfig); err != nil {
		l.Warn("Ошибка загрузки Alerting конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	converted := alertingConfig.ToAlerting()
	if err := converted.Validate(); err != nil {
		l.Warn("Некорректная Alerting конфигурация, алертинг отключён",
			slog.String("error", err.Error()),
		)
		alertingConfig.Enabled = false
	}

	l.Debug("Alerting конфигурация загружена",
		slog.Bool("enabled", alertingConfig.Enabled),
		slog.Bool("telegram", alertingConfig.Telegram.Enabled),
		slog.Bool("webhook", alertingConfig.Webhook.Enabled),
	)
	return alertingConfig
}
