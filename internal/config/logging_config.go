package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	// Level - debug, info, warn, error.
	Level string `yaml:"level" env:"BR_LOG_LEVEL" env-default:"info"`

	// Format - json или text.
	Format string `yaml:"format" env:"BR_LOG_FORMAT" env-default:"text"`

	// Output - stderr или file. stdout занят отчётом.
	Output string `yaml:"output" env:"BR_LOG_OUTPUT" env-default:"stderr"`

	FilePath   string `yaml:"filePath" env:"BR_LOG_FILE_PATH"`
	MaxSize    int    `yaml:"maxSize" env:"BR_LOG_MAX_SIZE" env-default:"50"`
	MaxBackups int    `yaml:"maxBackups" env:"BR_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"maxAge" env:"BR_LOG_MAX_AGE" env-default:"14"`

	// Compress: yaml false перезаписывается env-default при ReadEnv,
	// отключить сжатие можно только через BR_LOG_COMPRESS=false.
	Compress bool `yaml:"compress" env:"BR_LOG_COMPRESS" env-default:"true"`
}

// ToLogging конвертирует секцию в logging.Config. Пустые поля получают
// значения по умолчанию пакета logging.
func (c *LoggingConfig) ToLogging() logging.Config {
	out := logging.DefaultConfig()
	if c == nil {
		return out
	}
	if c.Level != "" {
		out.Level = c.Level
	}
	if c.Format != "" {
		out.Format = c.Format
	}
	if c.Output != "" {
		out.Output = c.Output
	}
	if c.FilePath != "" {
		out.FilePath = c.FilePath
	}
	if c.MaxSize > 0 {
		out.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		out.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		out.MaxAge = c.MaxAge
	}
	out.Compress = c.Compress
	return out
}

// loadLoggingConfig загружает секцию logging. Неизвестные level или format
// заменяются значениями по умолчанию с предупреждением.
func loadLoggingConfig(l *slog.Logger, cfg *Config) *LoggingConfig {
	loggingConfig := &LoggingConfig{}
	if cfg.AppConfig != nil {
		*loggingConfig = cfg.AppConfig.Logging
	}

	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		l.Warn("Ошибка загрузки Logging конфигурации из переменных окружения",
			slog.String("error", err.Error()),
		)
	}

	switch loggingConfig.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		l.Warn("Неизвестный уровень логирования, используется info",
			slog.String("level", loggingConfig.Level),
		)
		loggingConfig.Level = logging.DefaultLevel
	}

	if loggingConfig.Format != logging.FormatJSON && loggingConfig.Format != logging.FormatText {
		l.Warn("Неизвестный формат логов, используется text",
			slog.String("format", loggingConfig.Format),
		)
		loggingConfig.Format = logging.DefaultFormat
	}

	l.Debug("Logging конфигурация загружена",
		slog.String("level", loggingConfig.Level),
		slog.String("format", loggingConfig.Format),
		slog.String("output", loggingConfig.Output),
	)
	return loggingConfig
}
