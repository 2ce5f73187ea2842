// Package history persists solve runs to PostgreSQL so benchmark series
// can be compared across time.
package history

import (
	"context"
	"embed"
	"time"

	"github.com/google/uuid"
)

// Migrations содержит SQL миграции схемы истории
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir - каталог миграций внутри Migrations
const MigrationsDir = "migrations"

// SolveRun - одна запись о выполненном решении
type SolveRun struct {
	ID           uuid.UUID `json:"id"`
	InstanceHash string    `json:"instance_hash"`
	Algorithm    string    `json:"algorithm"`
	Nodes        int       `json:"nodes"`
	Arcs         int       `json:"arcs"`
	Flow         int64     `json:"flow"`
	Cost         int64     `json:"cost"`
	DurationMs   float64   `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository - хранилище истории решений
type Repository interface {
	// Record сохраняет запись о решении
	Record(ctx context.Context, run *SolveRun) error
	// List возвращает последние записи (не более limit)
	List(ctx context.Context, limit int) ([]*SolveRun, error)
	// ListByInstance возвращает записи для конкретной задачи
	ListByInstance(ctx context.Context, instanceHash string, limit int) ([]*SolveRun, error)
}
