package history

import (
	"fmt"
	"io"
)

// RunList - результат команды history. В JSON сериализуется как массив.
type RunList []Run

// RenderText выводит по строке на прогон, новые первыми.
func (l RunList) RenderText(w io.Writer) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "История прогонов пуста")
		return err
	}

	if _, err := fmt.Fprintf(w, "История прогонов (%d):\n", len(l)); err != nil {
		return err
	}
	for _, run := range l {
		status := "PASS"
		if !run.Passed {
			status = "FAIL"
		}
		line := fmt.Sprintf("  %s  %-12s %s %d/%d %6dms",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Scenario, status, run.StepsExecuted, run.StepsTotal, run.DurationMs)
		if !run.Passed {
			line += fmt.Sprintf("  %s %s", run.FailedStep, run.ErrorCode)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
