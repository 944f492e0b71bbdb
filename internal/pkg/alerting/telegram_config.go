package alerting

import "time"

// DefaultTelegramTimeout - таймаут запросов к Telegram Bot API.
const DefaultTelegramTimeout = 10 * time.Second

// TelegramConfig содержит настройки telegram канала.
type TelegramConfig struct {
	Enabled  bool          `yaml:"enabled" env:"BR_ALERTING_TELEGRAM_ENABLED" env-default:"false"`
	BotToken string        `yaml:"botToken" env:"BR_ALERTING_TELEGRAM_BOT_TOKEN"`
	ChatIDs  []string      `yaml:"chatIds" env:"BR_ALERTING_TELEGRAM_CHAT_IDS" env-separator:","`
	Timeout  time.Duration `yaml:"timeout" env:"BR_ALERTING_TELEGRAM_TIMEOUT" env-default:"10s"`
}

// Validate проверяет токен и идентификаторы чатов.
// chat_id допускается числовой (в том числе отрицательный для групп) или @username.
func (t *TelegramConfig) Validate() error {
	if !t.Enabled {
		return nil
	}
	if t.BotToken == "" {
		return ErrTelegramBotTokenRequired
	}
	if len(t.ChatIDs) == 0 {
		return ErrTelegramChatIDRequired
	}
	for _, chatID := range t.ChatIDs {
		if !validChatID(chatID) {
			return ErrTelegramChatIDInvalid
		}
	}
	return nil
}

func validChatID(chatID string) bool {
	if chatID == "" {
		return false
	}
	if chatID[0] == '@' {
		return len(chatID) > 1
	}
	digits := chatID
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
