package alerting

import "time"

// DefaultRateLimitWindow - минимальный интервал между алертами с одним кодом.
const DefaultRateLimitWindow = 5 * time.Minute

// Config содержит настройки алертинга.
type Config struct {
	// Enabled - включён ли алертинг. По умолчанию false.
	Enabled bool

	RateLimitWindow time.Duration

	Telegram TelegramConfig
	Webhook  WebhookConfig
}

// DefaultConfig возвращает выключенную конфигурацию со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		RateLimitWindow: DefaultRateLimitWindow,
		Telegram: TelegramConfig{
			Timeout: DefaultTelegramTimeout,
		},
		Webhook: WebhookConfig{
			Timeout:    DefaultWebhookTimeout,
			MaxRetries: DefaultMaxRetries,
		},
	}
}

// Validate проверяет включённые каналы. Выключенный алертинг всегда валиден.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := c.Telegram.Validate(); err != nil {
		return err
	}
	return c.Webhook.Validate()
}
