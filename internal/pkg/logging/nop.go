package logging

// NopLogger игнорирует все сообщения.
type NopLogger struct{}

// NewNopLogger создаёт Logger без вывода. Используется в тестах и как fallback в DI.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(_ string, _ ...any) {}
func (n *NopLogger) Info(_ string, _ ...any)  {}
func (n *NopLogger) Warn(_ string, _ ...any)  {}
func (n *NopLogger) Error(_ string, _ ...any) {}

// With возвращает тот же NopLogger: атрибуты всё равно отбрасываются.
func (n *NopLogger) With(_ ...any) Logger {
	return n
}
