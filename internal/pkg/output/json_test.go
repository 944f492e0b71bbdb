package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultSchema фиксирует контракт JSON вывода для внешних потребителей (CI pipeline).
const resultSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["status", "command"],
  "properties": {
    "status": {"enum": ["success", "error"]},
    "command": {"type": "string", "minLength": 1},
    "dry_run": {"type": "boolean"},
    "error": {
      "type": "object",
      "required": ["code", "message"],
      "properties": {
        "code": {"type": "string", "pattern": "^[A-Z]+\\.[A-Z_]+$"},
        "message": {"type": "string"}
      }
    },
    "metadata": {
      "type": "object",
      "required": ["duration_ms", "api_version"],
      "properties": {
        "duration_ms": {"type": "integer", "minimum": 0},
        "api_version": {"const": "v1"},
        "trace_id": {"type": "string"},
        "run_id": {"type": "string"}
      }
    }
  }
}`

func loadSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(resultSchema))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("result.schema.json", doc))

	schema, err := compiler.Compile("result.schema.json")
	require.NoError(t, err, "не удалось скомпилировать JSON Schema")
	return schema
}

func writeJSON(t *testing.T, result *Result) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))
	return buf.Bytes()
}

func TestJSONWriter_SchemaValidation(t *testing.T) {
	schema := loadSchema(t)

	results := map[string]*Result{
		"success": {
			Status:   StatusSuccess,
			Command:  "run",
			Data:     map[string]string{"scenario": "boxing"},
			Metadata: &Metadata{DurationMs: 150, APIVersion: "v1", RunID: "r-1"},
		},
		"error": {
			Status:   StatusError,
			Command:  "run",
			Error:    &ErrorInfo{Code: "STEP.MARKER_MISSING", Message: "шаг fight провален"},
			Metadata: &Metadata{DurationMs: 20, APIVersion: "v1"},
		},
		"dry-run": {
			Status:   StatusSuccess,
			Command:  "run",
			DryRun:   true,
			Plan:     &DryRunPlan{Command: "run", ValidationPassed: true},
			Metadata: &Metadata{APIVersion: "v1"},
		},
	}

	for name, result := range results {
		t.Run(name, func(t *testing.T) {
			var doc any
			require.NoError(t, json.Unmarshal(writeJSON(t, result), &doc))
			assert.NoError(t, schema.Validate(doc))
		})
	}
}

func TestJSONWriter_SummaryMovedToMetadata(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Шагов выполнено", "17", "")
	result := &Result{
		Status:   StatusSuccess,
		Command:  "run",
		Metadata: &Metadata{DurationMs: 1, APIVersion: "v1"},
		Summary:  summary,
	}

	var parsed struct {
		Metadata struct {
			Summary *SummaryInfo `json:"summary"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(writeJSON(t, result), &parsed))

	require.NotNil(t, parsed.Metadata.Summary)
	assert.Equal(t, "17", parsed.Metadata.Summary.KeyMetrics[0].Value)
	assert.Nil(t, result.Metadata.Summary, "исходный result не должен мутировать")
}

func TestJSONWriter_NoHTMLEscaping(t *testing.T) {
	out := writeJSON(t, &Result{Status: StatusSuccess, Command: "run", Data: "<title>502</title>"})
	assert.Contains(t, string(out), "<title>502</title>")
}

func TestJSONWriter_NilResult(t *testing.T) {
	assert.Equal(t, "null\n", string(writeJSON(t, nil)))
}
