package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// TelegramAPIBaseURL - базовый URL Telegram Bot API.
const TelegramAPIBaseURL = "https://api.telegram.org/bot"

// maxTelegramResponseSize ограничивает чтение ответа Bot API.
const maxTelegramResponseSize = 1024

// HTTPClient - минимальный HTTP клиент, подменяемый в тестах.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TelegramAlerter отправляет алерты в чаты Telegram.
type TelegramAlerter struct {
	config     TelegramConfig
	logger     logging.Logger
	httpClient HTTPClient
	apiBaseURL string
}

// NewTelegramAlerter создаёт TelegramAlerter.
func NewTelegramAlerter(config TelegramConfig, logger logging.Logger) *TelegramAlerter {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTelegramTimeout
	}
	return &TelegramAlerter{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		apiBaseURL: TelegramAPIBaseURL,
	}
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (t *TelegramAlerter) SetHTTPClient(client HTTPClient) {
	t.httpClient = client
}

// Send отправляет сообщение во все чаты. Ошибки логируются, результат всегда nil.
func (t *TelegramAlerter) Send(ctx context.Context, alert Alert) error {
	message := formatTelegramMessage(alert)

	delivered := 0
	for _, chatID := range t.config.ChatIDs {
		if ctx.Err() != nil {
			t.logger.Debug("отправка telegram алерта отменена", "error_code", alert.ErrorCode)
			return nil
		}
		if err := t.sendToChat(ctx, chatID, message); err != nil {
			t.logger.Error("ошибка отправки telegram алерта",
				"error", err.Error(),
				"chat_id", chatID,
				"error_code", alert.ErrorCode,
			)
			continue
		}
		delivered++
	}

	if delivered == 0 && len(t.config.ChatIDs) > 0 {
		t.logger.Warn("telegram алерт не доставлен ни в один чат",
			"error_code", alert.ErrorCode,
			"chats_total", len(t.config.ChatIDs),
		)
		return nil
	}
	t.logger.Info("telegram алерт отправлен",
		"error_code", alert.ErrorCode,
		"chats_success", delivered,
	)
	return nil
}

// formatTelegramMessage форматирует алерт в Markdown v1.
func formatTelegramMessage(alert Alert) string {
	var sb strings.Builder
	sb.WriteString("🚨 *" + Source + "*\n\n")
	fmt.Fprintf(&sb, "*Error:* `%s`\n", escapeMarkdown(alert.ErrorCode))
	fmt.Fprintf(&sb, "*Severity:* %s\n", alert.Severity.String())
	fmt.Fprintf(&sb, "*Scenario:* %s\n", escapeMarkdown(alert.Scenario))
	if alert.Step != "" {
		fmt.Fprintf(&sb, "*Step:* %s\n", escapeMarkdown(alert.Step))
	}
	if alert.BaseURL != "" {
		fmt.Fprintf(&sb, "*API:* %s\n", escapeMarkdown(alert.BaseURL))
	}
	fmt.Fprintf(&sb, "\n*Message:*\n%s\n\n", escapeMarkdown(alert.Message))
	fmt.Fprintf(&sb, "_Trace ID:_ `%s`\n", escapeMarkdown(alert.TraceID))
	fmt.Fprintf(&sb, "_Time:_ %s", alert.Timestamp.Format(time.RFC3339))
	return sb.String()
}

// markdownReplacer экранирует backslash первым, чтобы не удваивать остальные замены.
var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	">", `\>`,
)

func escapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}

type telegramRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t *TelegramAlerter) sendToChat(ctx context.Context, chatID, message string) error {
	body, err := json.Marshal(telegramRequest{ChatID: chatID, Text: message, ParseMode: "Markdown"})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	endpoint := t.apiBaseURL + t.config.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		// net/http включает URL с токеном в текст ошибки
		return fmt.Errorf("HTTP request failed: %s", strings.ReplaceAll(err.Error(), t.config.BotToken, "[REDACTED]"))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxTelegramResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var parsed telegramResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse response (HTTP %d): %w", resp.StatusCode, err)
	}
	if !parsed.OK {
		return fmt.Errorf("telegram API error %d: %s", parsed.ErrorCode, parsed.Description)
	}
	return nil
}
