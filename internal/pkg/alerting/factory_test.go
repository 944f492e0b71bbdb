package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlerter(t *testing.T) {
	t.Run("выключен", func(t *testing.T) {
		a, err := NewAlerter(DefaultConfig(), RulesConfig{}, &testLogger{})
		require.NoError(t, err)
		assert.IsType(t, &NopAlerter{}, a)
	})

	t.Run("включён без каналов", func(t *testing.T) {
		logger := &testLogger{}
		cfg := DefaultConfig()
		cfg.Enabled = true

		a, err := NewAlerter(cfg, RulesConfig{}, logger)
		require.NoError(t, err)
		assert.IsType(t, &NopAlerter{}, a)
		assert.Len(t, logger.warnMsgs, 1)
	})

	t.Run("невалидный webhook", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Enabled = true
		cfg.Webhook.Enabled = true
		cfg.Webhook.URLs = []string{"ftp://example.com"}

		_, err := NewAlerter(cfg, RulesConfig{}, &testLogger{})
		assert.ErrorIs(t, err, ErrWebhookURLInvalid)
	})

	t.Run("оба канала", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Enabled = true
		cfg.Webhook = WebhookConfig{Enabled: true, URLs: []string{"https://hooks.example.com/smoke"}}
		cfg.Telegram = TelegramConfig{Enabled: true, BotToken: "123:abc", ChatIDs: []string{"-100200"}}

		a, err := NewAlerter(cfg, RulesConfig{}, &testLogger{})
		require.NoError(t, err)

		multi, ok := a.(*MultiChannelAlerter)
		require.True(t, ok)
		assert.Equal(t, []string{ChannelTelegram, ChannelWebhook}, multi.names)
		assert.NotNil(t, multi.rateLimiter)
	})
}

func TestTelegramConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TelegramConfig
		wantErr error
	}{
		{"выключен", TelegramConfig{}, nil},
		{"нет токена", TelegramConfig{Enabled: true, ChatIDs: []string{"1"}}, ErrTelegramBotTokenRequired},
		{"нет чатов", TelegramConfig{Enabled: true, BotToken: "t"}, ErrTelegramChatIDRequired},
		{"username", TelegramConfig{Enabled: true, BotToken: "t", ChatIDs: []string{"@ops"}}, nil},
		{"группа", TelegramConfig{Enabled: true, BotToken: "t", ChatIDs: []string{"-1001"}}, nil},
		{"только минус", TelegramConfig{Enabled: true, BotToken: "t", ChatIDs: []string{"-"}}, ErrTelegramChatIDInvalid},
		{"буквы", TelegramConfig{Enabled: true, BotToken: "t", ChatIDs: []string{"12a"}}, ErrTelegramChatIDInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWebhookConfig_Validate(t *testing.T) {
	valid := WebhookConfig{Enabled: true, URLs: []string{"https://hooks.example.com/x"}}
	assert.NoError(t, valid.Validate())

	noURL := WebhookConfig{Enabled: true}
	assert.ErrorIs(t, noURL.Validate(), ErrWebhookURLRequired)

	noHost := WebhookConfig{Enabled: true, URLs: []string{"https:///path"}}
	assert.ErrorIs(t, noHost.Validate(), ErrWebhookURLInvalid)

	badHeader := WebhookConfig{
		Enabled: true,
		URLs:    []string{"https://hooks.example.com/x"},
		Headers: map[string]string{"X-Token": "a\r\nInjected: 1"},
	}
	assert.ErrorIs(t, badHeader.Validate(), ErrWebhookHeaderInvalid)

	tabHeader := WebhookConfig{
		Enabled: true,
		URLs:    []string{"https://hooks.example.com/x"},
		Headers: map[string]string{"X-Token": "a\tb"},
	}
	assert.NoError(t, tabHeader.Validate())
}
