package output

import "io"

// Writer форматирует Result и пишет его в w.
type Writer interface {
	Write(w io.Writer, result *Result) error
}

// TextRenderer реализуется payload'ами, которым нужен собственный текстовый вид
// (отчёт прогона, таблица истории) вместо JSON-дампа Data.
type TextRenderer interface {
	RenderText(w io.Writer) error
}
