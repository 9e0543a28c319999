// Package store persists capture run records.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pagoandino/capture-cli/internal/config"
	"github.com/pagoandino/capture-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for capture runs.
type Store interface {
	CreateRun(ctx context.Context, sourceDir string) (*model.CaptureRun, error)
	CompleteRun(ctx context.Context, runID string, result *model.RunResult) error
	FailRun(ctx context.Context, runID string, cause error) error
	MarkPublished(ctx context.Context, runID string) error
	GetRun(ctx context.Context, runID string) (*model.CaptureRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.CaptureRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store from config. SQLite is the default driver.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
