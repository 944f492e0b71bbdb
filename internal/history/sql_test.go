package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
)

var recentColumns = []string{
	"id", "scenario", "base_url", "started_at_ms", "duration_ms", "passed",
	"steps_total", "steps_executed", "failed_step", "error_code", "trace_id",
}

func newMockStore(t *testing.T, dialect Dialect) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db, dialect, time.Second), mock
}

func TestSQLStore_Save_SQLServerPlaceholders(t *testing.T) {
	store, mock := newMockStore(t, SQLServer)
	started := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO smoke_runs (" + columns + ") VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9, @p10, @p11)")).
		WithArgs("run-1", "boxing", "http://localhost:5000/api", started.UnixMilli(), int64(120), false, 15, 12,
			"fight", "STEP.MARKER_MISSING", "trace").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), Run{
		ID:            "run-1",
		Scenario:      "boxing",
		BaseURL:       "http://localhost:5000/api",
		StartedAt:     started,
		DurationMs:    120,
		StepsTotal:    15,
		StepsExecuted: 12,
		FailedStep:    "fight",
		ErrorCode:     "STEP.MARKER_MISSING",
		TraceID:       "trace",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Save_GeneratesID(t *testing.T) {
	store, mock := newMockStore(t, SQLite)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO smoke_runs")).
		WithArgs(sqlmock.AnyArg(), "playlist", "", sqlmock.AnyArg(), int64(0), true, 0, 0, "", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Save(context.Background(), Run{Scenario: "playlist", Passed: true}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Save_Error(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	mock.ExpectExec("INSERT INTO smoke_runs").WillReturnError(errors.New("database is locked"))

	err := store.Save(context.Background(), Run{ID: "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrHistoryQuery, apperrors.CodeOf(err))
}

func TestSQLStore_Recent_SQLite(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	started := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + columns + " FROM smoke_runs WHERE scenario = ? ORDER BY started_at_ms DESC LIMIT ?")).
		WithArgs("boxing", 5).
		WillReturnRows(sqlmock.NewRows(recentColumns).
			AddRow("run-2", "boxing", "http://localhost:5000/api", started.UnixMilli(), 300, 1, 15, 15, "", "", "t2").
			AddRow("run-1", "boxing", "http://localhost:5000/api", started.Add(-time.Hour).UnixMilli(), 90, 0, 15, 1, "health", "STEP.REQUEST_FAILED", "t1"))

	runs, err := store.Recent(context.Background(), "boxing", 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.True(t, runs[0].Passed)
	assert.True(t, runs[0].StartedAt.Equal(started))
	assert.False(t, runs[1].Passed)
	assert.Equal(t, "STEP.REQUEST_FAILED", runs[1].ErrorCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Recent_SQLServerAllScenarios(t *testing.T) {
	store, mock := newMockStore(t, SQLServer)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT TOP (@p1) " + columns + " FROM dbo.smoke_runs ORDER BY started_at_ms DESC")).
		WithArgs(DefaultLimit).
		WillReturnRows(sqlmock.NewRows(recentColumns))

	runs, err := store.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Recent_QueryError(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("no such table"))

	_, err := store.Recent(context.Background(), "", 1)
	assert.Equal(t, apperrors.ErrHistoryQuery, apperrors.CodeOf(err))
}

func TestSQLStore_Migrate(t *testing.T) {
	store, mock := newMockStore(t, SQLServer)
	mock.ExpectExec(regexp.QuoteMeta("IF OBJECT_ID(N'dbo.smoke_runs', N'U') IS NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_CloseTwice(t *testing.T) {
	store, mock := newMockStore(t, SQLite)
	mock.ExpectClose()

	require.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d.Name)

	d, err = DialectFor("MSSQL")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLServer, d.Name)
	assert.Equal(t, "@p3", d.placeholder(3))

	_, err = DialectFor("postgres")
	assert.Error(t, err)
}
