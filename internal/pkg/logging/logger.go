// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Основная реализация: SlogAdapter поверх log/slog.
//
//	logger.Info("Шаг выполнен", "scenario", "boxing", "step", "fight", "duration_ms", 42)
//
// Logger никогда не пишет в stdout: там находится отчёт прогона.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("run_id", runID).Info("Прогон начат")
	With(args ...any) Logger
}
