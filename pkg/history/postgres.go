package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"netflow/pkg/database"
)

// PostgresRepository - реализация Repository поверх PostgreSQL
type PostgresRepository struct {
	db database.DB
}

// NewPostgresRepository создаёт репозиторий истории
func NewPostgresRepository(db database.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Record сохраняет запись о решении
func (r *PostgresRepository) Record(ctx context.Context, run *SolveRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	const query = `
		INSERT INTO solve_runs (id, instance_hash, algorithm, nodes, arcs, flow, cost, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		run.ID, run.InstanceHash, run.Algorithm,
		run.Nodes, run.Arcs, run.Flow, run.Cost, run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record solve run: %w", err)
	}
	return nil
}

// List возвращает последние записи
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*SolveRun, error) {
	const query = `
		SELECT id, instance_hash, algorithm, nodes, arcs, flow, cost, duration_ms, created_at
		FROM solve_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListByInstance возвращает записи для конкретной задачи
func (r *PostgresRepository) ListByInstance(ctx context.Context, instanceHash string, limit int) ([]*SolveRun, error) {
	const query = `
		SELECT id, instance_hash, algorithm, nodes, arcs, flow, cost, duration_ms, created_at
		FROM solve_runs
		WHERE instance_hash = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, instanceHash, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns читает строки результата в слайс
func scanRuns(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*SolveRun, error) {
	var runs []*SolveRun
	for rows.Next() {
		run := &SolveRun{}
		if err := rows.Scan(
			&run.ID, &run.InstanceHash, &run.Algorithm,
			&run.Nodes, &run.Arcs, &run.Flow, &run.Cost,
			&run.DurationMs, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
