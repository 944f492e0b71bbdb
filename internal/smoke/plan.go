package smoke

import (
	"fmt"

	"github.com/Kargones/boxing-smoke/internal/pkg/dryrun"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
	"github.com/Kargones/boxing-smoke/internal/scenario"
)

// Plan строит план прогона без обращения к API.
// Пути выводятся шаблонами: значения захватов до прогона неизвестны.
func Plan(command string, sc *scenario.Scenario, baseURL string) *output.DryRunPlan {
	steps := make([]output.PlanStep, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		params := map[string]any{
			"method": step.Method,
			"path":   displayPath(step.Path, step.QueryValues()),
		}
		if step.Body != nil {
			params["body"] = step.Body
		}
		steps = append(steps, output.PlanStep{
			Order:           i + 1,
			Operation:       step.Name,
			Parameters:      params,
			ExpectedChanges: step.CaptureNames(),
		})
	}

	summary := fmt.Sprintf("%d запросов к %s", len(sc.Steps), urlutil.RedactURL(baseURL))
	return dryrun.BuildPlanWithSummary(command, sc.Name, steps, summary)
}
