// Package history хранит итоги прогонов сценариев в SQL базе:
// встроенный SQLite файл или SQL Server.
package history

import (
	"context"
	"time"

	"github.com/Kargones/boxing-smoke/internal/smoke"
)

// Поддерживаемые драйверы.
const (
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

// DefaultLimit - число записей, которое Recent возвращает при limit <= 0.
const DefaultLimit = 20

// Run - одна запись истории.
type Run struct {
	ID            string    `json:"id"`
	Scenario      string    `json:"scenario"`
	BaseURL       string    `json:"base_url"`
	StartedAt     time.Time `json:"started_at"`
	DurationMs    int64     `json:"duration_ms"`
	Passed        bool      `json:"passed"`
	StepsTotal    int       `json:"steps_total"`
	StepsExecuted int       `json:"steps_executed"`
	FailedStep    string    `json:"failed_step,omitempty"`
	ErrorCode     string    `json:"error_code,omitempty"`
	TraceID       string    `json:"trace_id,omitempty"`
}

// Store сохраняет и читает историю прогонов.
type Store interface {
	Save(ctx context.Context, run Run) error

	// Recent возвращает последние limit прогонов, новые первыми.
	// Пустой scenario означает все сценарии.
	Recent(ctx context.Context, scenario string, limit int) ([]Run, error)

	Close() error
}

// Config описывает подключение к хранилищу истории.
type Config struct {
	Enabled bool

	// Driver - "sqlite" или "sqlserver".
	Driver string

	// DSN - путь к файлу для sqlite или строка подключения sqlserver.
	DSN string

	// Timeout ограничивает подключение и каждый запрос.
	Timeout time.Duration
}

// DefaultConfig возвращает выключенную конфигурацию с SQLite по умолчанию.
func DefaultConfig() Config {
	return Config{
		Driver:  DriverSQLite,
		DSN:     "boxing-smoke-history.db",
		Timeout: 10 * time.Second,
	}
}

// RunFromReport строит запись истории из отчёта прогона.
func RunFromReport(report *smoke.Report, traceID string) Run {
	run := Run{
		ID:            report.RunID,
		Scenario:      report.Scenario,
		BaseURL:       report.BaseURL,
		StartedAt:     report.StartedAt,
		DurationMs:    report.DurationMs,
		Passed:        report.Passed,
		StepsTotal:    report.TotalSteps,
		StepsExecuted: report.Executed(),
		FailedStep:    report.FailedStep,
		TraceID:       traceID,
	}
	if n := len(report.Steps); n > 0 && !report.Passed {
		run.ErrorCode = report.Steps[n-1].ErrorCode
	}
	return run
}
