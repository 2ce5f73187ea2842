package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("INSERT INTO solve_runs").
		WithArgs(pgxmock.AnyArg(), "hash-1", "cost-scaling", 128, 960, int64(42), int64(84), 1.25).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run := &SolveRun{
		InstanceHash: "hash-1",
		Algorithm:    "cost-scaling",
		Nodes:        128,
		Arcs:         960,
		Flow:         42,
		Cost:         84,
		DurationMs:   1.25,
	}
	require.NoError(t, repo.Record(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID, "an id is assigned when missing")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"id", "instance_hash", "algorithm", "nodes", "arcs", "flow", "cost", "duration_ms", "created_at",
	}).AddRow(id, "hash-1", "cost-scaling", 128, 960, int64(42), int64(84), 1.25, now)

	mock.ExpectQuery("SELECT (.+) FROM solve_runs").
		WithArgs(10).
		WillReturnRows(rows)

	runs, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "cost-scaling", runs[0].Algorithm)
	assert.Equal(t, int64(84), runs[0].Cost)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByInstance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	rows := pgxmock.NewRows([]string{
		"id", "instance_hash", "algorithm", "nodes", "arcs", "flow", "cost", "duration_ms", "created_at",
	}).
		AddRow(uuid.New(), "hash-2", "edmonds-karp-fifo", 4, 5, int64(3), int64(7), 0.1, time.Now()).
		AddRow(uuid.New(), "hash-2", "cost-scaling", 4, 5, int64(3), int64(7), 0.05, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM solve_runs").
		WithArgs("hash-2", 5).
		WillReturnRows(rows)

	runs, err := repo.ListByInstance(context.Background(), "hash-2", 5)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_RecordError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectExec("INSERT INTO solve_runs").
		WillReturnError(assert.AnError)

	err = repo.Record(context.Background(), &SolveRun{InstanceHash: "x", Algorithm: "y"})
	assert.Error(t, err)
}
