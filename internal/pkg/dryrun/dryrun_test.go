package dryrun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/output"
)

func TestIsDryRun(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv(constants.EnvDryRun, tt.value)
			assert.Equal(t, tt.want, IsDryRun())
		})
	}
}

func TestBuildPlan(t *testing.T) {
	steps := []output.PlanStep{{Order: 1, Operation: "health"}}

	plan := BuildPlan("run", "boxing", steps)
	assert.Equal(t, "run", plan.Command)
	assert.Equal(t, "boxing", plan.Scenario)
	assert.True(t, plan.ValidationPassed)
	assert.Empty(t, plan.Summary)

	plan = BuildPlanWithSummary("run", "boxing", steps, "1 шаг")
	assert.Equal(t, "1 шаг", plan.Summary)
	assert.Len(t, plan.Steps, 1)
}

func TestMaskSecrets(t *testing.T) {
	tests := map[string]string{
		"sqlserver://sa:secret@db:1433?database=smoke":   "sqlserver://sa:***@db:1433?database=smoke",
		"server=db;user id=sa;password=p@ss;database=s":  "server=db;user id=sa;password=***;database=s",
		"server=db;PWD=qwerty":                           "server=db;PWD=***",
		"file:/var/lib/boxing-smoke/history.db?_pragma=x": "file:/var/lib/boxing-smoke/history.db?_pragma=x",
		"": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, MaskSecrets(in), in)
	}
}
