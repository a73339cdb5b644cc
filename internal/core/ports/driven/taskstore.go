package driven

import (
	"context"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// TaskStore persists normalised task records. This is the boundary to the
// framework's generic record storage; records are keyed by TaskRecord.Key
// so repeated syncs upsert rather than duplicate.
type TaskStore interface {
	// Save stores or updates a task record, keyed by record.Key.
	Save(ctx context.Context, record *domain.TaskRecord) error

	// Get retrieves a task record by key.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, key string) (*domain.TaskRecord, error)

	// List returns all task records for a source.
	List(ctx context.Context, sourceID string) ([]domain.TaskRecord, error)
}
