// Package store persists works and their plannings in SQL. SQLite (pure Go,
// modernc.org/sqlite) is the default backend; MySQL-compatible servers such
// as Dolt are supported through go-sql-driver/mysql. The planning document is
// kept as one JSON column so the schema does not follow schedule changes.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL / Dolt driver.
	_ "modernc.org/sqlite"             // Pure-Go SQLite driver.

	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planning"
)

// Supported driver names.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Sentinel errors.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrUnknownDriver = errors.New("store: unknown driver")
)

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_mysql.sql
var mysqlSchema string

// dialect holds the statements that differ between backends.
type dialect struct {
	schema         string
	upsertWork     string
	upsertPlanning string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		schema: sqliteSchema,
		upsertWork: `
			INSERT INTO works (id, name, regional, go_live_date)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name         = excluded.name,
				regional     = excluded.regional,
				go_live_date = excluded.go_live_date`,
		upsertPlanning: `
			INSERT INTO plannings (id, work_id, status, anchor, data, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(work_id) DO UPDATE SET
				status     = excluded.status,
				anchor     = excluded.anchor,
				data       = excluded.data,
				updated_at = excluded.updated_at`,
	},
	DriverMySQL: {
		schema: mysqlSchema,
		upsertWork: `
			INSERT INTO works (id, name, regional, go_live_date)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				name         = VALUES(name),
				regional     = VALUES(regional),
				go_live_date = VALUES(go_live_date)`,
		upsertPlanning: `
			INSERT INTO plannings (id, work_id, status, anchor, data, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				status     = VALUES(status),
				anchor     = VALUES(anchor),
				data       = VALUES(data),
				updated_at = VALUES(updated_at)`,
	},
}

// Store is a SQL-backed repository of works and plannings.
type Store struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// Open connects to the database named by driver and dsn and creates the
// schema if needed. For SQLite, dsn is a file path.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite has a single writer; one pooled connection keeps the
		// PRAGMAs below in effect for every statement.
		db.SetMaxOpenConns(1)
		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA foreign_keys=ON",
		} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("store: %s: %w", pragma, err)
			}
		}
	} else if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	for _, stmt := range splitStatements(d.schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: create schema: %w", err)
		}
	}

	return &Store{db: db, dialect: d, now: time.Now}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutWork inserts or updates a work.
func (s *Store) PutWork(ctx context.Context, w planning.Work) error {
	if strings.TrimSpace(w.ID) == "" {
		return fmt.Errorf("store: put work: %w", planning.ErrMissingField)
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertWork, w.ID, w.Name, w.Regional, w.GoLive.String()); err != nil {
		return fmt.Errorf("store: put work %q: %w", w.ID, err)
	}
	return nil
}

// GetWork returns the work with the given id, or ErrNotFound.
func (s *Store) GetWork(ctx context.Context, id string) (planning.Work, error) {
	const q = `SELECT id, name, regional, go_live_date FROM works WHERE id = ?`
	w, err := scanWork(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return planning.Work{}, fmt.Errorf("store: work %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return planning.Work{}, fmt.Errorf("store: get work %q: %w", id, err)
	}
	return w, nil
}

// ListWorks returns every work ordered by id.
func (s *Store) ListWorks(ctx context.Context) ([]planning.Work, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, regional, go_live_date FROM works ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list works: %w", err)
	}
	defer rows.Close()

	var out []planning.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan work: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate works: %w", err)
	}
	return out, nil
}

// DeleteWork removes a work and, through the foreign key, its planning.
func (s *Store) DeleteWork(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete work %q: %w", id, err)
	}
	return requireAffected(res, "work", id)
}

// GetPlanning returns the planning owned by workID, or ErrNotFound.
func (s *Store) GetPlanning(ctx context.Context, workID string) (planning.Planning, error) {
	const q = `SELECT id, work_id, status, anchor, data, updated_at FROM plannings WHERE work_id = ?`
	p, err := scanPlanning(s.db.QueryRowContext(ctx, q, workID))
	if errors.Is(err, sql.ErrNoRows) {
		return planning.Planning{}, fmt.Errorf("store: planning for work %q: %w", workID, ErrNotFound)
	}
	if err != nil {
		return planning.Planning{}, fmt.Errorf("store: get planning for work %q: %w", workID, err)
	}
	return p, nil
}

// UpsertPlanning writes p, replacing any planning of the same work. The
// stored UpdatedAt is set to the current time and returned in the result.
// Concurrent writers are not merged: the last write wins.
func (s *Store) UpsertPlanning(ctx context.Context, p planning.Planning) (planning.Planning, error) {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.WorkID) == "" {
		return p, fmt.Errorf("store: upsert planning: %w", planning.ErrMissingField)
	}
	data, err := json.Marshal(p.Data)
	if err != nil {
		return p, fmt.Errorf("store: encode planning %q: %w", p.ID, err)
	}
	p.UpdatedAt = s.now().UTC()
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertPlanning,
		p.ID, p.WorkID, string(p.Status), p.Anchor.String(), string(data), p.UpdatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return p, fmt.Errorf("store: upsert planning %q: %w", p.ID, err)
	}
	return p, nil
}

// ListPlannings returns every planning ordered by work id.
func (s *Store) ListPlannings(ctx context.Context) ([]planning.Planning, error) {
	const q = `SELECT id, work_id, status, anchor, data, updated_at FROM plannings ORDER BY work_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: list plannings: %w", err)
	}
	defer rows.Close()

	var out []planning.Planning
	for rows.Next() {
		p, err := scanPlanning(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan planning: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate plannings: %w", err)
	}
	return out, nil
}

// DeletePlanning removes the planning owned by workID.
func (s *Store) DeletePlanning(ctx context.Context, workID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plannings WHERE work_id = ?`, workID)
	if err != nil {
		return fmt.Errorf("store: delete planning for work %q: %w", workID, err)
	}
	return requireAffected(res, "planning for work", workID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWork(row scanner) (planning.Work, error) {
	var w planning.Work
	var goLive string
	if err := row.Scan(&w.ID, &w.Name, &w.Regional, &goLive); err != nil {
		return planning.Work{}, err
	}
	w.GoLive, _ = civil.Parse(goLive)
	return w, nil
}

func scanPlanning(row scanner) (planning.Planning, error) {
	var (
		p                        planning.Planning
		status, anchor, data, ts string
	)
	if err := row.Scan(&p.ID, &p.WorkID, &status, &anchor, &data, &ts); err != nil {
		return planning.Planning{}, err
	}
	p.Status = planning.Status(status)
	p.Anchor, _ = civil.Parse(anchor)
	if err := json.Unmarshal([]byte(data), &p.Data); err != nil {
		return planning.Planning{}, fmt.Errorf("decode planning %q: %w", p.ID, err)
	}
	updated, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return planning.Planning{}, fmt.Errorf("parse planning %q timestamp: %w", p.ID, err)
	}
	p.UpdatedAt = updated
	return p, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("store: %s %q: %w", what, id, ErrNotFound)
	}
	return nil
}

// splitStatements splits a SQL script on semicolons, dropping empty and
// comment-only fragments.
func splitStatements(script string) []string {
	raw := strings.Split(script, ";")
	stmts := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || isCommentOnly(trimmed) {
			continue
		}
		stmts = append(stmts, trimmed)
	}
	return stmts
}

func isCommentOnly(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}
