package smoke

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// StepResult - результат одного выполненного шага.
type StepResult struct {
	Name   string `json:"name"`
	Method string `json:"method"`

	// Path - путь после подстановки переменных, с query string.
	Path string `json:"path"`

	StatusCode int   `json:"status_code,omitempty"`
	DurationMs int64 `json:"duration_ms"`
	Passed     bool  `json:"passed"`

	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	// Captured - переменные, захваченные из ответа.
	Captured map[string]string `json:"captured,omitempty"`

	// Response - тело ответа, если включено встраивание (json вывод с --echo-json).
	Response json.RawMessage `json:"response,omitempty"`
}

// Report - итог прогона сценария. Steps содержит только выполненные шаги.
type Report struct {
	RunID      string       `json:"run_id"`
	Scenario   string       `json:"scenario"`
	BaseURL    string       `json:"base_url"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMs int64        `json:"duration_ms"`
	Passed     bool         `json:"passed"`
	TotalSteps int          `json:"total_steps"`
	Steps      []StepResult `json:"steps"`
	FailedStep string       `json:"failed_step,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// Executed возвращает число выполненных шагов.
func (r *Report) Executed() int {
	return len(r.Steps)
}

// RenderText выводит построчный отчёт для текстового формата.
func (r *Report) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Сценарий %s: %s\n", r.Scenario, r.BaseURL); err != nil {
		return err
	}

	for i, step := range r.Steps {
		mark := "[OK]  "
		if !step.Passed {
			mark = "[FAIL]"
		}
		status := "---"
		if step.StatusCode != 0 {
			status = fmt.Sprintf("%d", step.StatusCode)
		}
		if _, err := fmt.Fprintf(w, "  %s [%d/%d] %-24s %-6s %s %s %dms\n",
			mark, i+1, r.TotalSteps, step.Name, step.Method, step.Path, status, step.DurationMs); err != nil {
			return err
		}
		if step.Error != "" {
			if _, err := fmt.Fprintf(w, "         %s\n", step.Error); err != nil {
				return err
			}
		}
	}

	for _, warning := range r.Warnings {
		if _, err := fmt.Fprintf(w, "  WARNING: %s\n", warning); err != nil {
			return err
		}
	}

	var err error
	if r.Passed {
		_, err = fmt.Fprintf(w, "Все шаги пройдены (%d/%d)\n", r.Executed(), r.TotalSteps)
	} else {
		_, err = fmt.Fprintf(w, "Прогон остановлен на шаге %s (%d/%d)\n", r.FailedStep, r.Executed(), r.TotalSteps)
	}
	return err
}
