package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTextAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func TestNewSlogAdapter_Nil(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	a := newTextAdapter(&buf)

	a.Debug("отладка", "step", "health")
	a.Info("шаг выполнен", "duration_ms", 15)
	a.Warn("устаревший сценарий", "alias", "smoketest")
	a.Error("шаг провален", "code", "STEP.MARKER_MISSING")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "step=health",
		"level=INFO", "duration_ms=15",
		"level=WARN", "alias=smoketest",
		"level=ERROR", "code=STEP.MARKER_MISSING",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	base := newTextAdapter(&buf)

	child := base.With("run_id", "r-1").With("scenario", "boxing")
	child.Info("прогон начат")
	base.Info("без атрибутов")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=r-1")
	assert.Contains(t, lines[0], "scenario=boxing")
	assert.NotContains(t, lines[1], "run_id", "With не должен менять исходный логгер")
}
