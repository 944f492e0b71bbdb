package output

import (
	"io"
	"time"
)

// WriteDryRunResult пишет dry-run план: текстом с рамкой "=== DRY RUN ==="
// или JSON'ом с "dry_run": true и "plan": {...}.
func WriteDryRunResult(w io.Writer, format, command, traceID, apiVersion string, start time.Time, plan *DryRunPlan) error {
	if format != FormatJSON {
		return plan.WriteText(w)
	}

	result := &Result{
		Status:  StatusSuccess,
		Command: command,
		DryRun:  true,
		Plan:    plan,
		Metadata: &Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: apiVersion,
		},
	}
	return NewJSONWriter().Write(w, result)
}
