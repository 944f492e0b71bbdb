// Package progress показывает ход прогона сценария: bar в терминале,
// строки лога в CI и JSON-lines события для автоматизации.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

// Progress отображает выполнение Total единиц работы (шагов сценария).
type Progress interface {
	Start(message string)
	Update(current int64, message string)
	SetTotal(total int64)
	Finish()
}

// Options конфигурирует Progress.
type Options struct {
	Total int64

	// Output - обычно os.Stderr: stdout занят отчётом.
	Output io.Writer

	ShowETA bool

	// Format - действующий формат вывода результата (text, json). Пустое значение означает text.
	Format string

	// ThrottleInterval - минимальный интервал между перерисовками.
	ThrottleInterval time.Duration

	// Logger используется NonTTYProgress. nil означает NopLogger.
	Logger logging.Logger
}

// Event - JSON событие прогресса.
type Event struct {
	Type       string `json:"type"` // "progress_start", "progress", "progress_end"
	Percent    *int   `json:"percent,omitempty"`
	ETASeconds *int64 `json:"eta_seconds,omitempty"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

// IsTTY сообщает, является ли w терминалом.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// percentOf возвращает процент выполнения, ограниченный 100.
func percentOf(current, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(float64(current) / float64(total) * 100)
	if p > 100 {
		return 100
	}
	return p
}

// FormatDuration форматирует длительность: "45s", "5m 30s", "1h 7m 30s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		return "0s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	out := ""
	if h > 0 {
		out = fmt.Sprintf("%dh", h)
	}
	if m > 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%dm", m)
	}
	if s > 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%ds", s)
	}
	return out
}
