package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/history"
	"github.com/Kargones/boxing-smoke/internal/pkg/dryrun"
)

// ErrHistoryDSNRequired возвращается при включённой истории без DSN.
var ErrHistoryDSNRequired = errors.New("history: dsn обязателен при enabled=true")

// HistoryConfig содержит настройки хранилища истории прогонов.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" env:"BR_HISTORY_ENABLED" env-default:"false"`

	// Driver - sqlite (файл рядом с запуском) или sqlserver.
	Driver string `yaml:"driver" env:"BR_HISTORY_DRIVER" env-default:"sqlite"`

	// DSN - путь к файлу sqlite или строка подключения sqlserver.
	DSN string `yaml:"dsn" env:"BR_HISTORY_DSN" env-default:"boxing-smoke-history.db"`

	Timeout time.Duration `yaml:"timeout" env:"BR_HISTORY_TIMEOUT" env-default:"10s"`
}

// ToHistory конвертирует секцию в history.Config.
func (c *HistoryConfig) ToHistory() history.Config {
	if c == nil {
		return history.DefaultConfig()
	}
	return history.Config{
		Enabled: c.Enabled,
		Driver:  c.Driver,
		DSN:     c.DSN,
		Timeout: c.Timeout,
	}
}

// Validate проверяет драйвер и DSN. Выключенная история всегда валидна.
func (c *HistoryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DSN == "" {
		return ErrHistoryDSNRequired
	}
	_, err := history.DialectFor(c.Driver)
	return err
}

// loadHistoryConfig загружает секцию history. Некорректная секция отключается.
func loadHistoryConfig(l *slog.Logger, cfg *Config) *HistoryConfig {
	historyConfig := &HistoryConfig{}
	if cfg.AppConfig != nil {
		*historyConfig = cfg.AppConfig.History
	}

	if err := cleanenv.ReadEnv(historyConfig); err != nil {
		l.Warn("Ошибка загрузки History конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	if err := historyConfig.Validate(); err != nil {
		l.Warn("Некорректная History конфигурация, история отключена",
			slog.String("error", err.Error()),
		)
		historyConfig.Enabled = false
	}

	l.Debug("History конфигурация загружена",
		slog.Bool("enabled", historyConfig.Enabled),
		slog.String("driver", historyConfig.Driver),
		slog.String("dsn", dryrun.MaskSecrets(historyConfig.DSN)),
	)
	return historyConfig
}
