package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
)

// maxWebhookResponseSize ограничивает чтение тела ответа webhook.
const maxWebhookResponseSize = 1024

// maxBackoff - потолок паузы между повторами.
const maxBackoff = 4 * time.Second

// WebhookPayload - JSON тело webhook запроса.
type WebhookPayload struct {
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	TraceID   string    `json:"trace_id"`
	Timestamp time.Time `json:"timestamp"`
	Scenario  string    `json:"scenario"`
	Step      string    `json:"step,omitempty"`
	BaseURL   string    `json:"base_url,omitempty"`
	Severity  string    `json:"severity"`
	Source    string    `json:"source"`
	Hostname  string    `json:"hostname,omitempty"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// WebhookAlerter отправляет алерты POST запросом на набор URL.
type WebhookAlerter struct {
	config      WebhookConfig
	logger      logging.Logger
	httpClient  HTTPClient
	hostname    string
	baseBackoff time.Duration
}

// NewWebhookAlerter создаёт WebhookAlerter.
func NewWebhookAlerter(config WebhookConfig, logger logging.Logger) *WebhookAlerter {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultWebhookTimeout
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &WebhookAlerter{
		config:      config,
		logger:      logger,
		httpClient:  &http.Client{Timeout: timeout},
		hostname:    hostname,
		baseBackoff: time.Second,
	}
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (w *WebhookAlerter) SetHTTPClient(client HTTPClient) {
	w.httpClient = client
}

// Send отправляет payload на все URL. Ошибки логируются, результат всегда nil.
func (w *WebhookAlerter) Send(ctx context.Context, alert Alert) error {
	payload := WebhookPayload{
		ErrorCode: alert.ErrorCode,
		Message:   alert.Message,
		TraceID:   alert.TraceID,
		Timestamp: alert.Timestamp,
		Scenario:  alert.Scenario,
		Step:      alert.Step,
		BaseURL:   alert.BaseURL,
		Severity:  alert.Severity.String(),
		Source:    Source,
		Hostname:  w.hostname,
	}

	delivered := 0
	for _, target := range w.config.URLs {
		if ctx.Err() != nil {
			return nil
		}
		if err := w.sendWithRetry(ctx, target, payload); err != nil {
			w.logger.Error("ошибка отправки webhook алерта",
				"error", err.Error(),
				"url", urlutil.MaskURL(target),
				"error_code", alert.ErrorCode,
			)
			continue
		}
		delivered++
	}

	if delivered == 0 && len(w.config.URLs) > 0 {
		w.logger.Warn("webhook алерт не доставлен ни на один URL",
			"error_code", alert.ErrorCode,
			"urls_total", len(w.config.URLs),
		)
		return nil
	}
	w.logger.Info("webhook алерт отправлен",
		"error_code", alert.ErrorCode,
		"urls_success", delivered,
	)
	return nil
}

// sendWithRetry повторяет сетевые ошибки и 5xx с экспоненциальной паузой. 4xx не повторяется.
func (w *WebhookAlerter) sendWithRetry(ctx context.Context, target string, payload WebhookPayload) error {
	var lastErr error
	backoff := w.baseBackoff

	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
		}

		lastErr = w.post(ctx, target, payload)
		if lastErr == nil {
			return nil
		}
		var statusErr *httpStatusError
		if errors.As(lastErr, &statusErr) && statusErr.StatusCode < 500 {
			return lastErr
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", w.config.MaxRetries+1, lastErr)
}

func (w *WebhookAlerter) post(ctx context.Context, target string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)
	for key, value := range w.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxWebhookResponseSize)) //nolint:errcheck // тело только для диагностики
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &httpStatusError{StatusCode: resp.StatusCode, Body: string(raw)}
}
