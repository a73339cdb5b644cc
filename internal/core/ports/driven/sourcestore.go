package driven

import (
	"context"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// SourceStore persists source configurations.
type SourceStore interface {
	// Get retrieves a source by ID.
	// Returns domain.ErrNotFound if the source does not exist.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all configured sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Delete removes a source by ID.
	Delete(ctx context.Context, id string) error
}
