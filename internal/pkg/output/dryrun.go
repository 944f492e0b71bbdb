package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DryRunPlan описывает шаги сценария, которые были бы выполнены без BR_DRY_RUN.
type DryRunPlan struct {
	Command          string     `json:"command"`
	Scenario         string     `json:"scenario,omitempty"`
	Steps            []PlanStep `json:"steps"`
	Summary          string     `json:"summary,omitempty"`
	ValidationPassed bool       `json:"validation_passed"`
}

// PlanStep описывает один шаг плана.
type PlanStep struct {
	Order      int            `json:"order"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`

	// ExpectedChanges перечисляет переменные, которые шаг захватит из ответа.
	ExpectedChanges []string `json:"expected_changes,omitempty"`

	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// WriteText выводит план в рамке "=== DRY RUN ===".
func (p *DryRunPlan) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== DRY RUN ===\n")
	fmt.Fprintf(&b, "Команда: %s\n", p.Command)
	if p.Scenario != "" {
		fmt.Fprintf(&b, "Сценарий: %s\n", p.Scenario)
	}
	fmt.Fprintf(&b, "Валидация: %s\n\nПлан выполнения:\n", boolToStatus(p.ValidationPassed))

	for _, step := range p.Steps {
		if step.Skipped {
			fmt.Fprintf(&b, "  %d. [SKIP] %s (%s)\n", step.Order, step.Operation, step.SkipReason)
			continue
		}
		fmt.Fprintf(&b, "  %d. %s\n", step.Order, step.Operation)

		keys := make([]string, 0, len(step.Parameters))
		for k := range step.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "      %s: %s\n", k, sanitizeValue(step.Parameters[k]))
		}

		if len(step.ExpectedChanges) > 0 {
			b.WriteString("      Ожидаемые изменения:\n")
			for _, change := range step.ExpectedChanges {
				fmt.Fprintf(&b, "        - %s\n", change)
			}
		}
	}

	if p.Summary != "" {
		fmt.Fprintf(&b, "\nИтого: %s\n", p.Summary)
	}
	b.WriteString("=== END DRY RUN ===\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func boolToStatus(b bool) string {
	if b {
		return "✅ Пройдена"
	}
	return "❌ Не пройдена"
}

// sanitizeValue удаляет ANSI escape-последовательности и управляющие символы,
// переносы строк и табы заменяются пробелами.
func sanitizeValue(v any) string {
	s := fmt.Sprintf("%v", v)

	var out strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		switch {
		case r == '\n' || r == '\t':
			out.WriteRune(' ')
		case r < 32 || r == 127:
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
