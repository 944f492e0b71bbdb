package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

func newTestCollector(t *testing.T, url string) *PrometheusCollector {
	t.Helper()
	c, err := NewPrometheusCollector(Config{
		Enabled:        true,
		PushgatewayURL: url,
		JobName:        "boxing-smoke",
		Timeout:        5 * time.Second,
		InstanceLabel:  "ci-runner",
	}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestPrometheusCollector_RecordStepAndRun(t *testing.T) {
	c := newTestCollector(t, "http://localhost:9091")

	c.RecordStep("boxing", "health", 20*time.Millisecond, true)
	c.RecordStep("boxing", "health", 30*time.Millisecond, true)
	c.RecordStep("boxing", "fight", 40*time.Millisecond, false)
	c.RecordRun("boxing", time.Second, false)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.stepTotal.WithLabelValues("boxing", "health", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stepTotal.WithLabelValues("boxing", "fight", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.runError.WithLabelValues("boxing")))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.runSuccess.WithLabelValues("boxing")))

	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["boxing_smoke_step_duration_seconds"])
	assert.True(t, names["boxing_smoke_run_duration_seconds"])
}

func TestPrometheusCollector_Push(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestCollector(t, server.URL)
	c.RecordRun("boxing", time.Second, true)

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, http.MethodPut, method)
	assert.Contains(t, path, "/metrics/job/boxing-smoke")
	assert.Contains(t, path, "/instance/ci-runner")
}

func TestPrometheusCollector_PushErrorIsSwallowed(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestCollector(t, server.URL)
	assert.NoError(t, c.Push(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestPrometheusCollector_PushCancelledContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestCollector(t, server.URL)
	assert.NoError(t, c.Push(ctx))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "create_boxer", sanitizeLabel("create\nboxer"))
	assert.Equal(t, "a_b", sanitizeLabel("a\tb"))

	long := strings.Repeat("я", 200)
	assert.Len(t, []rune(sanitizeLabel(long)), maxLabelLength)
}

func TestNewCollector(t *testing.T) {
	c, err := NewCollector(Config{Enabled: false}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &NopCollector{}, c)

	_, err = NewCollector(Config{Enabled: true, JobName: "x", Timeout: time.Second}, logging.NewNopLogger())
	assert.ErrorIs(t, err, ErrPushgatewayURLRequired)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"disabled", Config{}, nil},
		{"invalid url", Config{Enabled: true, PushgatewayURL: "not a url", JobName: "j", Timeout: time.Second}, ErrPushgatewayURLInvalid},
		{"no job", Config{Enabled: true, PushgatewayURL: "http://pg:9091", Timeout: time.Second}, ErrJobNameRequired},
		{"no timeout", Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j"}, ErrInvalidTimeout},
		{"ok", Config{Enabled: true, PushgatewayURL: "http://pg:9091", JobName: "j", Timeout: time.Second}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
