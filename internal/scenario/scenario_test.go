package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
)

func TestResolvePath(t *testing.T) {
	vars := map[string]string{"ali_id": "7", "name": "Sugar Ray"}

	got, err := ResolvePath("/get-boxer-by-id/{ali_id}", vars)
	require.NoError(t, err)
	assert.Equal(t, "/get-boxer-by-id/7", got)

	got, err = ResolvePath("/get-boxer-by-name/{name}", vars)
	require.NoError(t, err)
	assert.Equal(t, "/get-boxer-by-name/Sugar%20Ray", got)

	got, err = ResolvePath("/health", nil)
	require.NoError(t, err)
	assert.Equal(t, "/health", got)

	_, err = ResolvePath("/delete-boxer/{frazier_id}/{x}", vars)
	require.ErrorIs(t, err, ErrUnresolvedVar)
	assert.Contains(t, err.Error(), "frazier_id, x")
}

func TestPathVars(t *testing.T) {
	assert.Equal(t, []string{"a", "b_2"}, PathVars("/x/{a}/y/{b_2}"))
	assert.Empty(t, PathVars("/health"))
}

func TestStep_QueryAndCapture(t *testing.T) {
	s := Step{Query: map[string]string{"sort": "wins"}, Capture: map[string]string{"z": "id", "a": "id"}}
	assert.Equal(t, "sort=wins", s.QueryValues().Encode())
	assert.Equal(t, []string{"a", "z"}, s.CaptureNames())
	assert.Nil(t, Step{}.QueryValues())
}

func TestValidate(t *testing.T) {
	valid := func() *Scenario {
		return &Scenario{
			Name: "mini",
			Steps: []Step{
				{Name: "create", Method: "POST", Path: "/create-boxer", Capture: map[string]string{"id": "id"}},
				{Name: "get", Method: "GET", Path: "/get-boxer-by-id/{id}"},
			},
		}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(s *Scenario){
		"bad name":       func(s *Scenario) { s.Name = "Mini" },
		"no steps":       func(s *Scenario) { s.Steps = nil },
		"no step name":   func(s *Scenario) { s.Steps[0].Name = "" },
		"bad method":     func(s *Scenario) { s.Steps[0].Method = "FETCH" },
		"relative path":  func(s *Scenario) { s.Steps[0].Path = "create-boxer" },
		"undefined var":  func(s *Scenario) { s.Steps[0].Capture = nil },
		"empty capture":  func(s *Scenario) { s.Steps[0].Capture = map[string]string{"id": ""} },
		"var used early": func(s *Scenario) { s.Steps[0], s.Steps[1] = s.Steps[1], s.Steps[0] },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := valid()
			mutate(s)
			assert.Error(t, s.Validate())
		})
	}

	withVars := valid()
	withVars.Steps[0].Capture = nil
	withVars.Vars = map[string]string{"id": "1"}
	assert.NoError(t, withVars.Validate(), "переменная из Vars не требует захвата")

	var nilScenario *Scenario
	assert.Error(t, nilScenario.Validate())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
name: boxing-lite
description: Короткая проверка
vars:
  ali_id: "1"
steps:
  - name: health
    method: get
    path: /health
  - name: create
    method: POST
    path: /create-boxer
    body:
      name: Ali
      weight: 210
    capture:
      ali_id: id
  - name: leaderboard
    method: GET
    path: /leaderboard
    query:
      sort: wins
`)

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "boxing-lite", s.Name)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, "GET", s.Steps[0].Method, "метод нормализуется в верхний регистр")

	body, ok := s.Steps[1].Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ali", body["name"])
	assert.Equal(t, 210, body["weight"])
	assert.Equal(t, "wins", s.Steps[2].Query["sort"])
}

func TestLoadFile_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "name: x\nsteps:\n  - name: a\n    method: GET\n    path: /a\n    retries: 3\n",
		"invalid yaml":  "name: [unclosed",
		"no steps":      "name: empty\n",
		"bad path":      "name: x\nsteps:\n  - name: a\n    method: GET\n    path: a\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, content))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrScenarioInvalid, apperrors.CodeOf(err))
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, apperrors.ErrScenarioInvalid, apperrors.CodeOf(err))
}
