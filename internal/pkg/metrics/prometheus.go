package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
)

const namespace = "boxing_smoke"

// PrometheusCollector хранит метрики в собственном registry и отправляет их в Pushgateway.
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	stepDuration *prometheus.HistogramVec
	stepTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	runSuccess   *prometheus.CounterVec
	runError     *prometheus.CounterVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с валидированной конфигурацией.
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	c := &PrometheusCollector{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		instance: instance,
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of a single scenario step (one HTTP call) in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"scenario", "step", "status"}),
		stepTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_total",
			Help:      "Total number of executed scenario steps",
		}, []string{"scenario", "step", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole smoke run in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}, []string{"scenario", "status"}),
		runSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_success_total",
			Help:      "Total number of passed smoke runs",
		}, []string{"scenario"}),
		runError: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_error_total",
			Help:      "Total number of failed smoke runs",
		}, []string{"scenario"}),
	}

	for _, col := range []prometheus.Collector{c.stepDuration, c.stepTotal, c.runDuration, c.runSuccess, c.runError} {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return c, nil
}

const maxLabelLength = 128

// sanitizeLabel заменяет управляющие символы на '_' и обрезает значение до maxLabelLength рун.
// Имена шагов могут прийти из пользовательского YAML-сценария.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordStep фиксирует длительность и исход шага.
func (c *PrometheusCollector) RecordStep(scenario, step string, duration time.Duration, success bool) {
	scenario, step = sanitizeLabel(scenario), sanitizeLabel(step)
	status := statusLabel(success)

	c.stepDuration.WithLabelValues(scenario, step, status).Observe(duration.Seconds())
	c.stepTotal.WithLabelValues(scenario, step, status).Inc()
}

// RecordRun фиксирует итог прогона.
func (c *PrometheusCollector) RecordRun(scenario string, duration time.Duration, success bool) {
	scenario = sanitizeLabel(scenario)

	c.runDuration.WithLabelValues(scenario, statusLabel(success)).Observe(duration.Seconds())
	if success {
		c.runSuccess.WithLabelValues(scenario).Inc()
	} else {
		c.runError.WithLabelValues(scenario).Inc()
	}

	c.logger.Debug("metrics: прогон записан",
		"scenario", scenario,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// Push отправляет метрики в Pushgateway. Всегда возвращает nil.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL не задан, push пропущен")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// GetRegistry возвращает registry. Используется в тестах.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
