package metrics

import (
	"net/url"
	"time"
)

// Config содержит настройки отправки метрик.
type Config struct {
	Enabled bool

	// PushgatewayURL - адрес Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string

	JobName string

	Timeout time.Duration

	// InstanceLabel - метка instance, пустое значение заменяется hostname.
	InstanceLabel string
}

// Validate проверяет конфигурацию. Отключённые метрики всегда валидны.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// DefaultConfig возвращает конфигурацию с отключёнными метриками.
func DefaultConfig() Config {
	return Config{
		JobName: "boxing-smoke",
		Timeout: 10 * time.Second,
	}
}
