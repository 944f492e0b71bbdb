package output

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type renderedPayload struct {
	Lines []string
}

func (r renderedPayload) RenderText(w io.Writer) error {
	for _, l := range r.Lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func TestTextWriter_UsesTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewTextWriter().Write(&buf, &Result{
		Status:  StatusSuccess,
		Command: "run",
		Data:    renderedPayload{Lines: []string{"✅ health", "✅ db-check"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "run: success\n✅ health\n✅ db-check\n", buf.String())
}

func TestTextWriter_PlainDataAsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, &Result{
		Status:  StatusSuccess,
		Command: "version",
		Data:    map[string]string{"version": "dev"},
	}))

	assert.Contains(t, buf.String(), `"version": "dev"`)
}

func TestTextWriter_ErrorSkipsSummary(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Шагов", "3", "")

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, &Result{
		Status:   StatusError,
		Command:  "run",
		Error:    &ErrorInfo{Code: "STEP.MARKER_MISSING", Message: "шаг fight провален"},
		Metadata: &Metadata{DurationMs: 1500},
		Summary:  summary,
	}))

	out := buf.String()
	assert.Contains(t, out, "Error [STEP.MARKER_MISSING]: шаг fight провален")
	assert.NotContains(t, out, "Сводка")
}

func TestTextWriter_Summary(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Шагов выполнено", "17", "шт")
	summary.AddWarning("история недоступна")

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, &Result{
		Status:   StatusSuccess,
		Command:  "run",
		Metadata: &Metadata{DurationMs: 2500},
		Summary:  summary,
	}))

	out := buf.String()
	assert.Contains(t, out, "📊 Сводка")
	assert.Contains(t, out, "Время выполнения: 2.5с")
	assert.Contains(t, out, "📈 Шагов выполнено: 17 шт")
	assert.Contains(t, out, "Предупреждений: 1")
	assert.Contains(t, out, "• история недоступна")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "850мс", formatDuration(850))
	assert.Equal(t, "1.0с", formatDuration(1000))
	assert.Equal(t, "59.9с", formatDuration(59900))
	assert.Equal(t, "2м 5с", formatDuration(125000))
}

func TestNewWriter(t *testing.T) {
	assert.IsType(t, &JSONWriter{}, NewWriter("JSON"))
	assert.IsType(t, &TextWriter{}, NewWriter("text"))
	assert.IsType(t, &TextWriter{}, NewWriter("yaml"))

	assert.True(t, IsValidFormat("Json"))
	assert.False(t, IsValidFormat("xml"))
}
