package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// драйверы database/sql
	_ "github.com/denisenkom/go-mssqldb"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Kargones/boxing-smoke/internal/constants"
	"github.com/Kargones/boxing-smoke/internal/pkg/apperrors"
	"github.com/Kargones/boxing-smoke/internal/pkg/dryrun"
)

// tableName - имя таблицы истории. Константа, поэтому подставляется в SQL через Sprintf.
const tableName = "smoke_runs"

const columns = "id, scenario, base_url, started_at_ms, duration_ms, passed, steps_total, steps_executed, failed_step, error_code, trace_id"

// Dialect описывает различия SQL диалектов.
type Dialect struct {
	Name string

	// createTable - идемпотентный DDL.
	createTable string

	// placeholder возвращает n-й (с 1) параметр запроса.
	placeholder func(n int) string

	// limitQuery строит SELECT последних записей с условием where.
	limitQuery func(where, limit string) string
}

// SQLite - диалект modernc.org/sqlite.
var SQLite = Dialect{
	Name: DriverSQLite,
	createTable: `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
	id TEXT PRIMARY KEY,
	scenario TEXT NOT NULL,
	base_url TEXT NOT NULL,
	started_at_ms INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	steps_total INTEGER NOT NULL,
	steps_executed INTEGER NOT NULL,
	failed_step TEXT NOT NULL DEFAULT '',
	error_code TEXT NOT NULL DEFAULT '',
	trace_id TEXT NOT NULL DEFAULT ''
)`,
	placeholder: func(int) string { return "?" },
	limitQuery: func(where, limit string) string {
		return "SELECT " + columns + " FROM " + tableName + where + " ORDER BY started_at_ms DESC LIMIT " + limit
	},
}

// SQLServer - диалект github.com/denisenkom/go-mssqldb.
var SQLServer = Dialect{
	Name: DriverSQLServer,
	createTable: `IF OBJECT_ID(N'dbo.` + tableName + `', N'U') IS NULL
CREATE TABLE dbo.` + tableName + ` (
	id NVARCHAR(36) NOT NULL PRIMARY KEY,
	scenario NVARCHAR(128) NOT NULL,
	base_url NVARCHAR(512) NOT NULL,
	started_at_ms BIGINT NOT NULL,
	duration_ms BIGINT NOT NULL,
	passed BIT NOT NULL,
	steps_total INT NOT NULL,
	steps_executed INT NOT NULL,
	failed_step NVARCHAR(128) NOT NULL DEFAULT N'',
	error_code NVARCHAR(64) NOT NULL DEFAULT N'',
	trace_id NVARCHAR(64) NOT NULL DEFAULT N''
)`,
	placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
	limitQuery: func(where, limit string) string {
		return "SELECT TOP (" + limit + ") " + columns + " FROM dbo." + tableName + where + " ORDER BY started_at_ms DESC"
	},
}

// DialectFor возвращает диалект по имени драйвера.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case DriverSQLite, "":
		return SQLite, nil
	case DriverSQLServer, "mssql":
		return SQLServer, nil
	default:
		return Dialect{}, fmt.Errorf("неизвестный драйвер истории %q", driver)
	}
}

// SQLStore - Store поверх database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
}

// NewSQLStore оборачивает открытое соединение. Таблица не создаётся: см. Migrate.
func NewSQLStore(db *sql.DB, dialect Dialect, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, timeout: timeout}
}

// Open подключается к хранилищу, проверяет соединение и создаёт таблицу.
func Open(ctx context.Context, cfg Config) (*SQLStore, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrHistoryConnect, "некорректная конфигурация истории", err)
	}

	dsn := cfg.DSN
	if dialect.Name == DriverSQLite {
		dsn, err = sqliteDSN(cfg.DSN)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrHistoryConnect, "не удалось подготовить файл истории", err)
		}
	}

	db, err := sql.Open(dialect.Name, dsn)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrHistoryConnect,
			"не удалось открыть хранилище истории "+dryrun.MaskSecrets(cfg.DSN), err)
	}
	if dialect.Name == DriverSQLite {
		// SQLite допускает одного писателя.
		db.SetMaxOpenConns(1)
	}

	store := NewSQLStore(db, dialect, cfg.Timeout)

	pingCtx, cancel := store.withTimeout(ctx)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close() //nolint:errcheck // ошибка ping важнее
		return nil, apperrors.NewAppError(apperrors.ErrHistoryConnect,
			"хранилище истории недоступно "+dryrun.MaskSecrets(cfg.DSN), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // ошибка миграции важнее
		return nil, err
	}
	return store, nil
}

// sqliteDSN превращает путь в DSN modernc.org/sqlite и создаёт директорию файла.
func sqliteDSN(path string) (string, error) {
	if strings.HasPrefix(path, "file:") || path == ":memory:" {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermStandard); err != nil {
			return "", err
		}
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)", nil
}

// Migrate создаёт таблицу истории, если её нет.
func (s *SQLStore) Migrate(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.dialect.createTable); err != nil {
		return apperrors.NewAppError(apperrors.ErrHistoryQuery, "не удалось создать таблицу истории", err)
	}
	return nil
}

// Save добавляет запись. Пустой ID заменяется новым UUID.
func (s *SQLStore) Save(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	placeholders := make([]string, 11)
	for i := range placeholders {
		placeholders[i] = s.dialect.placeholder(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, columns, strings.Join(placeholders, ", "))

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Scenario,
		run.BaseURL,
		run.StartedAt.UnixMilli(),
		run.DurationMs,
		run.Passed,
		run.StepsTotal,
		run.StepsExecuted,
		run.FailedStep,
		run.ErrorCode,
		run.TraceID,
	)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrHistoryQuery, "не удалось сохранить прогон "+run.ID, err)
	}
	return nil
}

// Recent возвращает последние прогоны, новые первыми.
func (s *SQLStore) Recent(ctx context.Context, scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		where string
		args  []any
	)
	if scenario != "" {
		where = " WHERE scenario = " + s.dialect.placeholder(1)
		args = append(args, scenario)
	}
	args = append(args, limit)
	query := s.dialect.limitQuery(where, s.dialect.placeholder(len(args)))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrHistoryQuery, "не удалось прочитать историю", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			startedAt int64
		)
		if err := rows.Scan(
			&run.ID,
			&run.Scenario,
			&run.BaseURL,
			&startedAt,
			&run.DurationMs,
			&run.Passed,
			&run.StepsTotal,
			&run.StepsExecuted,
			&run.FailedStep,
			&run.ErrorCode,
			&run.TraceID,
		); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrHistoryQuery, "не удалось разобрать запись истории", err)
		}
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrHistoryQuery, "ошибка чтения истории", err)
	}
	return runs, nil
}

// Close закрывает соединение.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
