package alerting

import (
	"net/url"
	"time"
)

// Значения по умолчанию для webhook канала.
const (
	DefaultWebhookTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
)

// WebhookConfig содержит настройки webhook канала.
type WebhookConfig struct {
	Enabled bool

	// URLs - адреса, на которые отправляется POST с JSON payload.
	URLs []string

	// Headers - дополнительные HTTP заголовки (например, Authorization).
	Headers map[string]string

	Timeout time.Duration

	// MaxRetries - количество повторов для сетевых ошибок и 5xx.
	MaxRetries int
}

// Validate проверяет адреса и заголовки webhook.
func (w *WebhookConfig) Validate() error {
	if !w.Enabled {
		return nil
	}
	if len(w.URLs) == 0 {
		return ErrWebhookURLRequired
	}
	for _, rawURL := range w.URLs {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return ErrWebhookURLInvalid
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return ErrWebhookURLInvalid
		}
	}
	for key, value := range w.Headers {
		if hasControlChars(key) || hasControlChars(value) {
			return ErrWebhookHeaderInvalid
		}
	}
	return nil
}

// hasControlChars сообщает о наличии управляющих символов, кроме HTAB.
func hasControlChars(s string) bool {
	for _, r := range s {
		if r == '\t' {
			continue
		}
		if r <= 0x1f || r == 0x7f {
			return true
		}
	}
	return false
}
