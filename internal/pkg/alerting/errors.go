package alerting

import "errors"

// Ошибки валидации конфигурации.
var (
	ErrTelegramBotTokenRequired = errors.New("alerting: bot_token is required when telegram channel is enabled")
	ErrTelegramChatIDRequired   = errors.New("alerting: at least one chat_id is required when telegram channel is enabled")
	ErrTelegramChatIDInvalid    = errors.New("alerting: chat_id must be a numeric ID or @username")
	ErrWebhookURLRequired       = errors.New("alerting: at least one url is required when webhook channel is enabled")
	ErrWebhookURLInvalid        = errors.New("alerting: webhook url must be http(s) with host")
	ErrWebhookHeaderInvalid     = errors.New("alerting: webhook header contains control characters")
)
