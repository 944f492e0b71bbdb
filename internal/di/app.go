package di

import (
	"context"
	"errors"

	"github.com/Kargones/boxing-smoke/internal/apiclient"
	"github.com/Kargones/boxing-smoke/internal/config"
	"github.com/Kargones/boxing-smoke/internal/history"
	"github.com/Kargones/boxing-smoke/internal/pkg/alerting"
	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/metrics"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

// App содержит инициализированные зависимости прогона.
// Создаётся через InitializeApp, поля заполняются провайдерами из providers.go.
type App struct {
	Config *config.Config

	Logger logging.Logger

	// OutputWriter выбран по cfg.API.OutputFormat.
	OutputWriter output.Writer

	// TraceID - 32 hex символа, общий для логов, отчёта и OTel span-ов прогона.
	TraceID string

	// MetricsCollector - NopCollector при выключенных метриках.
	MetricsCollector metrics.Collector

	// TracerShutdown отправляет буферизированные span-ы. Nop при выключенном трейсинге.
	TracerShutdown func(context.Context) error

	// Alerter - NopAlerter при выключенном алертинге или ошибке конфигурации.
	Alerter alerting.Alerter

	// HistoryStore - NopStore при выключенной истории или недоступной БД.
	HistoryStore history.Store

	APIClient apiclient.Client
}

// Shutdown завершает трейсинг и закрывает хранилище истории.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.TracerShutdown != nil {
		errs = append(errs, a.TracerShutdown(ctx))
	}
	if a.HistoryStore != nil {
		errs = append(errs, a.HistoryStore.Close())
	}
	return errors.Join(errs...)
}
