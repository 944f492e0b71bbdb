package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/pkg/logging"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Enabled: true,
		Driver:  DriverSQLite,
		DSN:     filepath.Join(t.TempDir(), "nested", "history.db"),
		Timeout: 5 * time.Second,
	}

	store, err := New(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i, scenario := range []string{"boxing", "playlist", "boxing"} {
		require.NoError(t, store.Save(ctx, Run{
			Scenario:   scenario,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			DurationMs: int64(100 + i),
			Passed:     i != 2,
			StepsTotal: 15,
		}))
	}

	boxingRuns, err := store.Recent(ctx, "boxing", 10)
	require.NoError(t, err)
	require.Len(t, boxingRuns, 2)
	assert.Equal(t, int64(102), boxingRuns[0].DurationMs, "новые первыми")
	assert.False(t, boxingRuns[0].Passed)
	assert.True(t, boxingRuns[1].Passed)
	assert.Len(t, boxingRuns[0].ID, 36)

	limited, err := store.Recent(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.True(t, limited[0].StartedAt.Equal(base.Add(2*time.Minute)))
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Enabled: true, Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "history.db")}

	store, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, Run{ID: "keep", Scenario: "boxing", Passed: true}))
	require.NoError(t, store.Close())

	store, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(ctx, "boxing", 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "keep", runs[0].ID)
}

func TestNew_DisabledReturnsNop(t *testing.T) {
	store, err := New(context.Background(), DefaultConfig(), logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &NopStore{}, store)

	runs, err := store.Recent(context.Background(), "", 5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Enabled: true, Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY.CONNECT_FAILED")
}
