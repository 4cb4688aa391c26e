package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/golive/internal/catalog"
	"github.com/papapumpkin/golive/internal/civil"
	"github.com/papapumpkin/golive/internal/planning"
	"github.com/papapumpkin/golive/internal/schedule"
)

// testStore opens a temporary SQLite store and registers cleanup.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golive.db")
	s, err := Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err, "Open(%q)", path)
	t.Cleanup(func() { s.Close() })
	return s
}

// testDSN returns the DSN of a MySQL/Dolt test instance. Set
// GOLIVE_TEST_DSN to override the default.
func testDSN() string {
	if dsn := os.Getenv("GOLIVE_TEST_DSN"); dsn != "" {
		return dsn
	}
	return "root@tcp(127.0.0.1:3306)/golive_test"
}

func sampleWork() planning.Work {
	return planning.Work{ID: "w-001", Name: "Loja Centro", Regional: "Sul", GoLive: civil.MustParse("2026-03-02")}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("enables WAL", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)
		var mode string
		require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("idempotent schema", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "twice.db")
		s1, err := Open(context.Background(), DriverSQLite, path)
		require.NoError(t, err)
		s1.Close()
		s2, err := Open(context.Background(), DriverSQLite, path)
		require.NoError(t, err)
		s2.Close()
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, err := Open(context.Background(), "postgres", "x")
		assert.ErrorIs(t, err, ErrUnknownDriver)
	})
}

func TestWorks(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	_, err := s.GetWork(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	w := sampleWork()
	require.NoError(t, s.PutWork(ctx, w))

	got, err := s.GetWork(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Name, got.Name)
	assert.True(t, got.GoLive.Equal(w.GoLive), "GoLive = %s", got.GoLive)

	w.GoLive = civil.MustParse("2026-04-01")
	w.Name = "Loja Centro II"
	require.NoError(t, s.PutWork(ctx, w))
	got, err = s.GetWork(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loja Centro II", got.Name)
	assert.Equal(t, "2026-04-01", got.GoLive.String())

	require.NoError(t, s.PutWork(ctx, planning.Work{ID: "w-000", Name: "Sem data"}))
	all, err := s.ListWorks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "w-000", all[0].ID)
	assert.True(t, all[0].GoLive.IsZero())

	assert.ErrorIs(t, s.PutWork(ctx, planning.Work{Name: "no id"}), planning.ErrMissingField)
}

func TestPlannings(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	w := sampleWork()
	require.NoError(t, s.PutWork(ctx, w))

	_, err := s.GetPlanning(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	p := planning.NewPlanning(w.ID)
	p.Anchor = w.GoLive
	p.Data.Schedule = schedule.Compute(w.GoLive, nil, catalog.Default())
	p.Data.Schedule, _ = p.Data.Schedule.Update("contract_signed", func(r schedule.StageRecord) schedule.StageRecord {
		return r.WithActualStart(civil.MustParse("2025-09-10")).WithResponsible("ana")
	})

	saved, err := s.UpsertPlanning(ctx, p)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(saved.UpdatedAt), "UpdatedAt = %s", saved.UpdatedAt)

	got, err := s.GetPlanning(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, planning.StatusDraft, got.Status)
	assert.True(t, got.Anchor.Equal(w.GoLive))
	assert.True(t, fixed.Equal(got.UpdatedAt))
	require.Len(t, got.Data.Schedule, catalog.Default().Len())
	first := got.Data.Schedule[0]
	assert.Equal(t, "2025-09-10", first.ActualStart.String())
	assert.Equal(t, "ana", first.Responsible)
	assert.True(t, first.ActualEnd.IsZero())

	got.Status = planning.StatusActive
	_, err = s.UpsertPlanning(ctx, got)
	require.NoError(t, err)
	all, err := s.ListPlannings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, planning.StatusActive, all[0].Status)

	require.NoError(t, s.DeletePlanning(ctx, w.ID))
	assert.ErrorIs(t, s.DeletePlanning(ctx, w.ID), ErrNotFound)
}

func TestDeleteWorkCascades(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	w := sampleWork()
	require.NoError(t, s.PutWork(ctx, w))
	_, err := s.UpsertPlanning(ctx, planning.NewPlanning(w.ID))
	require.NoError(t, err)

	require.NoError(t, s.DeleteWork(ctx, w.ID))
	_, err = s.GetPlanning(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteWork(ctx, w.ID), ErrNotFound)
}

func TestUpsertPlanningRequiresIDs(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	_, err := s.UpsertPlanning(context.Background(), planning.Planning{WorkID: "w"})
	assert.ErrorIs(t, err, planning.ErrMissingField)
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	assert.Len(t, splitStatements(sqliteSchema), 2)
	assert.Len(t, splitStatements(mysqlSchema), 2)
	assert.Empty(t, splitStatements("-- only a comment\n;\n  ;"))
}

func TestMySQLRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, DriverMySQL, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: database not reachable: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	for _, table := range []string{"plannings", "works"} {
		_, err := s.db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err, "cleaning table %s", table)
	}

	w := sampleWork()
	require.NoError(t, s.PutWork(ctx, w))
	require.NoError(t, s.PutWork(ctx, w))

	p := planning.NewPlanning(w.ID)
	p.Anchor = w.GoLive
	p.Data.Schedule = schedule.Compute(w.GoLive, nil, catalog.Default())
	_, err = s.UpsertPlanning(ctx, p)
	require.NoError(t, err)
	_, err = s.UpsertPlanning(ctx, p)
	require.NoError(t, err)

	got, err := s.GetPlanning(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, got.Data.Schedule, catalog.Default().Len())
}
