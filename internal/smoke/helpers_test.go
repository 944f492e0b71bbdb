package smoke

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/apiclient"
	"github.com/Kargones/boxing-smoke/internal/pkg/alerting"
)

// newHTTPClient создаёт apiclient с собственным transport, закрываемым после теста.
func newHTTPClient(t *testing.T, baseURL string) *apiclient.HTTPClient {
	t.Helper()

	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)

	client, err := apiclient.New(apiclient.Options{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		Transport: transport,
	})
	require.NoError(t, err)
	return client
}

type stepMetric struct {
	scenario string
	step     string
	success  bool
}

// recordingCollector запоминает вызовы metrics.Collector.
type recordingCollector struct {
	mu    sync.Mutex
	steps []stepMetric
	runs  []bool
}

func (c *recordingCollector) RecordStep(scenario, step string, _ time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, stepMetric{scenario: scenario, step: step, success: success})
}

func (c *recordingCollector) RecordRun(_ string, _ time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, success)
}

func (c *recordingCollector) Push(context.Context) error { return nil }

// recordingAlerter запоминает отправленные алерты.
type recordingAlerter struct {
	mu     sync.Mutex
	alerts []alerting.Alert
}

func (a *recordingAlerter) Send(_ context.Context, alert alerting.Alert) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerts = append(a.alerts, alert)
	return nil
}

// recordingProgress считает обновления индикатора.
type recordingProgress struct {
	started  bool
	updates  []int64
	finished bool
}

func (p *recordingProgress) Start(string)                   { p.started = true }
func (p *recordingProgress) Update(current int64, _ string) { p.updates = append(p.updates, current) }
func (p *recordingProgress) SetTotal(int64)                 {}
func (p *recordingProgress) Finish()                        { p.finished = true }
