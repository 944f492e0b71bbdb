package boxing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsValid(t *testing.T) {
	s := New()
	require.NoError(t, s.Validate())
	assert.Equal(t, Name, s.Name)
}

func TestNew_StepOrder(t *testing.T) {
	var got []string
	for _, step := range New().Steps {
		got = append(got, step.Method+" "+step.Path)
	}

	assert.Equal(t, []string{
		"GET /health",
		"GET /db-check",
		"POST /create-boxer",
		"POST /create-boxer",
		"POST /create-boxer",
		"DELETE /delete-boxer/{frazier_id}",
		"GET /get-boxer-by-id/{ali_id}",
		"GET /get-boxer-by-name/Tyson",
		"POST /enter-ring",
		"POST /enter-ring",
		"GET /get-boxers",
		"GET /fight",
		"POST /clear-boxers",
		"GET /leaderboard",
		"GET /leaderboard",
	}, got)
}

func TestNew_CreateBodies(t *testing.T) {
	s := New()
	for i, name := range []string{"Ali", "Tyson", "Frazier"} {
		body, ok := s.Steps[2+i].Body.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, name, body["name"])
		for _, field := range []string{"weight", "height", "reach", "age"} {
			assert.Contains(t, body, field)
		}
	}
}

func TestNew_LeaderboardSorts(t *testing.T) {
	steps := New().Steps
	assert.Equal(t, "wins", steps[len(steps)-2].Query["sort"])
	assert.Equal(t, "win_pct", steps[len(steps)-1].Query["sort"])
}
