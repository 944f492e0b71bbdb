package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/boxing-smoke/internal/apiclient"
	"github.com/Kargones/boxing-smoke/internal/config"
	"github.com/Kargones/boxing-smoke/internal/history"
	"github.com/Kargones/boxing-smoke/internal/pkg/alerting"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/dryrun"
	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/metrics"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
	"github.com/Kargones/boxing-smoke/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger из LoggingConfig. nil Config даёт logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.LoggingConfig.ToLogging())
}

// ProvideOutputWriter выбирает JSONWriter или TextWriter по cfg.API.OutputFormat.
// Формат уже учитывает BR_OUTPUT_FORMAT и флаг --format.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	if cfg == nil || cfg.API.OutputFormat == "" {
		return output.NewWriter(output.FormatText)
	}
	return output.NewWriter(cfg.API.OutputFormat)
}

// ProvideTraceID генерирует trace_id прогона.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector. Ошибка создания не фатальна:
// прогон продолжается с NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.MetricsConfig.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel и возвращает shutdown функцию.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.TracingConfig.ToTracing(), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideAlerter создаёт Alerter по AlertingConfig.
func ProvideAlerter(cfg *config.Config, logger logging.Logger) alerting.Alerter {
	if cfg == nil || cfg.AlertingConfig == nil {
		return alerting.NewNopAlerter()
	}

	alerter, err := alerting.NewAlerter(cfg.AlertingConfig.ToAlerting(), cfg.AlertingConfig.Rules, logger)
	if err != nil {
		logger.Error("ошибка создания Alerter, используется NopAlerter",
			slog.String("error", err.Error()),
		)
		return alerting.NewNopAlerter()
	}
	return alerter
}

// ProvideHistoryStore открывает хранилище истории. Недоступная БД не мешает
// прогону: используется NopStore, ошибка пишется в лог.
func ProvideHistoryStore(cfg *config.Config, logger logging.Logger) history.Store {
	if cfg == nil || cfg.HistoryConfig == nil {
		return history.NewNopStore()
	}

	histCfg := cfg.HistoryConfig.ToHistory()
	store, err := history.New(context.Background(), histCfg, logger)
	if err != nil {
		logger.Error("ошибка открытия хранилища истории, история не сохраняется",
			slog.String("driver", histCfg.Driver),
			slog.String("dsn", dryrun.MaskSecrets(histCfg.DSN)),
			slog.String("error", err.Error()),
		)
		return history.NewNopStore()
	}
	return store
}

// ProvideAPIClient создаёт HTTP клиент тестируемого API.
func ProvideAPIClient(cfg *config.Config) (apiclient.Client, error) {
	if cfg == nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad, "конфигурация не загружена", nil)
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.RequestTimeout,
		RateLimit: cfg.API.RateLimit,
		UserAgent: cfg.API.UserAgent,
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate, "некорректный base URL", err)
	}
	return client, nil
}
