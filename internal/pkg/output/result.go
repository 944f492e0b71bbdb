// Package output форматирует результаты команд в JSON и текст.
package output

// Значения поля Status в Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result представляет структурированный результат выполнения команды.
// Сериализуется в JSON при BR_OUTPUT_FORMAT=json, иначе выводится текстом.
type Result struct {
	Status string `json:"status"`

	// Command содержит имя выполненной команды ("run", "list", "history").
	Command string `json:"command"`

	// Data содержит payload команды. Если тип реализует TextRenderer,
	// TextWriter отдаёт ему текстовый вывод целиком.
	Data any `json:"data,omitempty"`

	// Error заполняется только при status="error".
	Error *ErrorInfo `json:"error,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`

	// DryRun и Plan заполняются в режиме BR_DRY_RUN=true.
	DryRun bool        `json:"dry_run,omitempty"`
	Plan   *DryRunPlan `json:"plan,omitempty"`

	// Summary копируется JSONWriter'ом в Metadata.Summary.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo описывает ошибку в машиночитаемом виде.
// Message НЕ ДОЛЖЕН содержать секреты.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные выполнения команды.
type Metadata struct {
	DurationMs int64 `json:"duration_ms"`

	// TraceID коррелирует вывод с логами и спанами.
	TraceID string `json:"trace_id,omitempty"`

	// RunID - идентификатор прогона в истории (только для "run").
	RunID string `json:"run_id,omitempty"`

	APIVersion string `json:"api_version"`

	Summary *SummaryInfo `json:"summary,omitempty"`
}
