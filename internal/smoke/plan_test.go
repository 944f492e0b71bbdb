package smoke

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/scenario/boxing"
)

func TestPlan(t *testing.T) {
	sc := boxing.New()
	plan := Plan("run", sc, "http://user:pw@localhost:5000/api")

	require.Len(t, plan.Steps, len(sc.Steps))
	assert.Equal(t, "run", plan.Command)
	assert.Equal(t, boxing.Name, plan.Scenario)
	assert.True(t, plan.ValidationPassed)
	assert.NotContains(t, plan.Summary, "pw")

	first := plan.Steps[0]
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, "health", first.Operation)
	assert.Equal(t, "GET", first.Parameters["method"])

	for _, step := range plan.Steps {
		if step.Operation == "create-boxer-ali" {
			assert.Equal(t, []string{"ali_id"}, step.ExpectedChanges)
			assert.NotNil(t, step.Parameters["body"])
		}
		if step.Operation == "leaderboard-wins" {
			assert.Equal(t, "/leaderboard?sort=wins", step.Parameters["path"])
		}
	}

	var buf bytes.Buffer
	require.NoError(t, plan.WriteText(&buf))
	assert.Contains(t, buf.String(), "=== DRY RUN ===")
}
