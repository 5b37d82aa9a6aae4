package storage

import (
	"context"

	"hbsmoke/internal/config"
	"hbsmoke/internal/domain"
)

// Storage persists and loads the report of the last run (e.g. for the report viewer).
type Storage interface {
	Save(report *domain.SessionReport) error
	Load() (*domain.SessionReport, error)
}

// History records runs across invocations
type History interface {
	Record(ctx context.Context, report *domain.SessionReport) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.HistoryRun, error)
	Close() error
}

// JSONStorage stores the report in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
