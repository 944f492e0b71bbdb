package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Kargones/boxing-smoke/internal/constants"
)

// NewLogger создаёт Logger по конфигурации.
// Output="file" пишет в файл с ротацией через lumberjack, остальное уходит в stderr.
// stdout не используется никогда: он занят отчётом прогона и эхом ответов API.
func NewLogger(config Config) Logger {
	var w io.Writer

	switch config.Output {
	case OutputFile:
		w = newRotatingWriter(config)
	case OutputStderr, "":
		w = os.Stderr
	default:
		bootstrapWarn(fmt.Sprintf("неизвестный logging output %q, используется stderr", config.Output))
		w = os.Stderr
	}

	return NewLoggerWithWriter(config, w)
}

// newRotatingWriter возвращает lumberjack writer или stderr, если файл недоступен.
func newRotatingWriter(config Config) io.Writer {
	if config.FilePath == "" {
		bootstrapWarn("logging output=file, но путь к файлу пуст, используется stderr")
		return os.Stderr
	}

	if dir := filepath.Dir(config.FilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			bootstrapWarn(fmt.Sprintf("не удалось создать директорию логов %q: %v, используется stderr", dir, err))
			return os.Stderr
		}
	}

	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}
}

// bootstrapWarn пишет предупреждение до того, как логгер создан.
func bootstrapWarn(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, "WARNING: "+msg) //nolint:errcheck // bootstrap stderr
}

// NewLoggerWithWriter создаёт Logger, пишущий в w. Используется в тестах.
func NewLoggerWithWriter(config Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return NewSlogAdapter(slog.New(handler))
}

// parseLevel конвертирует строковый уровень в slog.Level, неизвестное значение даёт info.
func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
