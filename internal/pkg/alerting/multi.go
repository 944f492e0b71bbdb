package alerting

import (
	"context"
	"sort"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// MultiChannelAlerter рассылает алерт по именованным каналам с учётом правил.
type MultiChannelAlerter struct {
	channels    map[string]Alerter
	names       []string
	rules       *RulesEngine
	rateLimiter *RateLimiter
	logger      logging.Logger
}

// NewMultiChannelAlerter создаёт MultiChannelAlerter. rules и rateLimiter могут быть nil.
// Каналы обходятся в алфавитном порядке.
func NewMultiChannelAlerter(channels map[string]Alerter, rules *RulesEngine, rateLimiter *RateLimiter, logger logging.Logger) *MultiChannelAlerter {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	return &MultiChannelAlerter{
		channels:    channels,
		names:       names,
		rules:       rules,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Send отправляет алерт во все каналы, прошедшие правила.
// Rate limiting проверяется один раз: подавленный алерт не уходит ни в один канал.
func (m *MultiChannelAlerter) Send(ctx context.Context, alert Alert) error {
	if m.rateLimiter != nil && !m.rateLimiter.Allow(rateKey(alert)) {
		m.logger.Debug("алерт подавлен rate limiter",
			"error_code", alert.ErrorCode,
			"scenario", alert.Scenario,
		)
		return nil
	}

	sent := 0
	for _, name := range m.names {
		if ctx.Err() != nil {
			return nil
		}
		if m.rules != nil && !m.rules.Evaluate(alert, name) {
			m.logger.Debug("алерт отклонён правилами",
				"channel", name,
				"error_code", alert.ErrorCode,
				"scenario", alert.Scenario,
			)
			continue
		}
		_ = m.channels[name].Send(ctx, alert) //nolint:errcheck // каналы логируют ошибки сами
		sent++
	}

	m.logger.Debug("рассылка алерта завершена",
		"error_code", alert.ErrorCode,
		"channels_sent", sent,
		"channels_total", len(m.names),
	)
	return nil
}
