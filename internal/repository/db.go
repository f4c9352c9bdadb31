package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-console/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Statement is one SQL text plus its bind arguments ($1..$n).
type Statement struct {
	SQL  string
	Args []any
}

func Stmt(sql string, args ...any) Statement {
	return Statement{SQL: sql, Args: args}
}

// Result holds a query result in display form.
type Result struct {
	Columns []string
	Rows    [][]string
}

// DB wraps the single connection the client holds for its lifetime.
type DB struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects to Postgres through the pgx database/sql driver and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	timeout := cfg.ConnectTimeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	return NewDB(db, logger), nil
}

func NewDB(db *sql.DB, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DB{db: db, log: logger}
}

// SQL exposes the underlying handle for tools such as migrations.
func (d *DB) SQL() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Exec runs a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, st Statement) error {
	d.log.Debug("exec", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	if _, err := d.db.ExecContext(ctx, st.SQL, st.Args...); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// ExecAffected is Exec for callers that need the number of rows the statement touched.
func (d *DB) ExecAffected(ctx context.Context, st Statement) (int64, error) {
	d.log.Debug("exec", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	res, err := d.db.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	return res.RowsAffected()
}

// QueryResult runs a query and returns its columns and rows as display strings.
func (d *DB) QueryResult(ctx context.Context, st Statement) (*Result, error) {
	d.log.Debug("query", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	rows, err := d.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	res := &Result{Columns: cols, Rows: make([][]string, 0)}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = FormatValue(v)
		}
		res.Rows = append(res.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return res, nil
}

// QueryRows is QueryResult without the column names.
func (d *DB) QueryRows(ctx context.Context, st Statement) ([][]string, error) {
	res, err := d.QueryResult(ctx, st)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Count scans the single integer a statement such as SELECT COUNT(*) returns.
func (d *DB) Count(ctx context.Context, st Statement) (int, error) {
	d.log.Debug("count", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	var n int
	if err := d.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return n, nil
}

// Exists scans the boolean of a SELECT EXISTS (...) statement.
func (d *DB) Exists(ctx context.Context, st Statement) (bool, error) {
	d.log.Debug("exists", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	var ok bool
	if err := d.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to execute query: %w", err)
	}
	return ok, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

func (d *DB) queryRow(ctx context.Context, st Statement) *sql.Row {
	d.log.Debug("query row", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	return d.db.QueryRowContext(ctx, st.SQL, st.Args...)
}

func (d *DB) query(ctx context.Context, st Statement) (*sql.Rows, error) {
	d.log.Debug("query", slog.String("sql", st.SQL), slog.Int("args", len(st.Args)))
	rows, err := d.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// idTriggers pairs each table with the trigger that assigns its key from a sequence.
var idTriggers = []struct {
	table, trigger, function string
}{
	{"Passenger", "pID_trigger", "next_id"},
	{"Booking", "bookRef_trigger", "next_bookRef"},
	{"Ratings", "rID_trigger", "next_rid"},
}

// InstallIDTriggers drops and re-creates the BEFORE INSERT triggers the inserts rely on.
func (d *DB) InstallIDTriggers(ctx context.Context) error {
	for _, t := range idTriggers {
		drop := fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", t.trigger, t.table)
		create := fmt.Sprintf("CREATE TRIGGER %s BEFORE INSERT ON %s FOR EACH ROW EXECUTE PROCEDURE %s()", t.trigger, t.table, t.function)
		if err := d.Exec(ctx, Stmt(drop)); err != nil {
			return fmt.Errorf("drop %s: %w", t.trigger, err)
		}
		if err := d.Exec(ctx, Stmt(create)); err != nil {
			return fmt.Errorf("create %s: %w", t.trigger, err)
		}
	}
	return nil
}

// FormatValue renders a scanned column value the way it is printed to the terminal.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return strings.TrimRight(string(val), " ")
	case string:
		return strings.TrimRight(val, " ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
