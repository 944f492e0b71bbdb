package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	alerts []Alert
}

func (r *recordingAlerter) Send(_ context.Context, alert Alert) error {
	r.alerts = append(r.alerts, alert)
	return nil
}

func TestMultiChannelAlerter_SendsToAllChannels(t *testing.T) {
	tg, wh := &recordingAlerter{}, &recordingAlerter{}
	multi := NewMultiChannelAlerter(map[string]Alerter{
		ChannelTelegram: tg,
		ChannelWebhook:  wh,
	}, nil, nil, &testLogger{})

	alert := Alert{ErrorCode: "STEP.MARKER_MISSING", Scenario: "boxing", Step: "fight", Severity: SeverityCritical}
	require.NoError(t, multi.Send(context.Background(), alert))

	require.Len(t, tg.alerts, 1)
	require.Len(t, wh.alerts, 1)
	assert.Equal(t, "fight", tg.alerts[0].Step)
	assert.Equal(t, []string{ChannelTelegram, ChannelWebhook}, multi.names)
}

func TestMultiChannelAlerter_RulesPerChannel(t *testing.T) {
	tg, wh := &recordingAlerter{}, &recordingAlerter{}
	rules := NewRulesEngine(RulesConfig{
		Channels: map[string]ChannelRulesConfig{
			ChannelTelegram: {IncludeScenarios: []string{"boxing"}},
		},
	})
	multi := NewMultiChannelAlerter(map[string]Alerter{ChannelTelegram: tg, ChannelWebhook: wh}, rules, nil, &testLogger{})

	require.NoError(t, multi.Send(context.Background(), Alert{Scenario: "playlist", ErrorCode: "STEP.REQUEST_FAILED"}))

	assert.Empty(t, tg.alerts)
	assert.Len(t, wh.alerts, 1)
}

func TestMultiChannelAlerter_RateLimitedOnce(t *testing.T) {
	tg, wh := &recordingAlerter{}, &recordingAlerter{}
	multi := NewMultiChannelAlerter(map[string]Alerter{ChannelTelegram: tg, ChannelWebhook: wh},
		nil, NewRateLimiter(time.Hour), &testLogger{})

	alert := Alert{Scenario: "boxing", ErrorCode: "STEP.REQUEST_FAILED"}
	require.NoError(t, multi.Send(context.Background(), alert))
	require.NoError(t, multi.Send(context.Background(), alert))

	assert.Len(t, tg.alerts, 1)
	assert.Len(t, wh.alerts, 1)
}

func TestMultiChannelAlerter_CanceledContext(t *testing.T) {
	tg := &recordingAlerter{}
	multi := NewMultiChannelAlerter(map[string]Alerter{ChannelTelegram: tg}, nil, nil, &testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, multi.Send(ctx, Alert{}))
	assert.Empty(t, tg.alerts)
}
