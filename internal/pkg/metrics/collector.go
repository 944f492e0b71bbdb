// Package metrics собирает метрики прогонов смоук-сценариев и отправляет
// их в Prometheus Pushgateway.
package metrics

import (
	"context"
	"time"
)

// Collector записывает метрики шагов и прогонов.
// Процесс короткоживущий, поэтому метрики не скрейпятся, а отправляются через Push.
type Collector interface {
	// RecordStep фиксирует длительность и исход одного шага сценария.
	RecordStep(scenario, step string, duration time.Duration, success bool)

	// RecordRun фиксирует итог всего прогона.
	RecordRun(scenario string, duration time.Duration, success bool)

	// Push отправляет накопленные метрики. Ошибки отправки только логируются:
	// метрики не должны влиять на код выхода.
	Push(ctx context.Context) error
}
