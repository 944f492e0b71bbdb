// Package alerting отправляет алерты о провалившихся прогонах сценариев.
// Каналы: telegram и webhook, с rate limiting и per-channel правилами фильтрации.
package alerting

import (
	"context"
	"time"
)

// Severity определяет уровень критичности алерта.
type Severity int

const (
	// SeverityInfo - информационный алерт.
	SeverityInfo Severity = iota
	// SeverityWarning - предупреждение.
	SeverityWarning
	// SeverityCritical - критический алерт, прогон сценария провален.
	SeverityCritical
)

// Имена каналов алертинга.
const (
	ChannelTelegram = "telegram"
	ChannelWebhook  = "webhook"
)

// Source - значение поля source в payload алертов.
const Source = "boxing-smoke"

// String возвращает строковое представление Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Alert описывает провал шага сценария.
type Alert struct {
	// ErrorCode - код ошибки (STEP.MARKER_MISSING и т.п.), ключ для rate limiting.
	ErrorCode string

	// Message - человекочитаемое сообщение.
	Message string

	// TraceID - идентификатор трассировки прогона.
	TraceID string

	// Timestamp - время провала.
	Timestamp time.Time

	// Scenario - имя сценария.
	Scenario string

	// Step - имя провалившегося шага.
	Step string

	// BaseURL - адрес проверяемого API (без учётных данных).
	BaseURL string

	Severity Severity
}

// Alerter отправляет алерты.
//
// Send всегда возвращает nil: ошибки доставки логируются и не влияют на
// код завершения прогона.
type Alerter interface {
	Send(ctx context.Context, alert Alert) error
}
