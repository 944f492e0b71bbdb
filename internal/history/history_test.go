package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kargones/boxing-smoke/internal/smoke"
)

func TestRunFromReport(t *testing.T) {
	started := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	report := &smoke.Report{
		RunID:      "3f1c",
		Scenario:   "boxing",
		BaseURL:    "http://localhost:5000/api",
		StartedAt:  started,
		DurationMs: 250,
		TotalSteps: 15,
		FailedStep: "fight",
		Steps: []smoke.StepResult{
			{Name: "health", Passed: true},
			{Name: "fight", ErrorCode: "STEP.MARKER_MISSING"},
		},
	}

	run := RunFromReport(report, "trace-1")

	assert.Equal(t, "3f1c", run.ID)
	assert.Equal(t, 2, run.StepsExecuted)
	assert.Equal(t, 15, run.StepsTotal)
	assert.Equal(t, "fight", run.FailedStep)
	assert.Equal(t, "STEP.MARKER_MISSING", run.ErrorCode)
	assert.Equal(t, "trace-1", run.TraceID)
	assert.False(t, run.Passed)

	report.Passed = true
	report.FailedStep = ""
	assert.Empty(t, RunFromReport(report, "").ErrorCode)
}
