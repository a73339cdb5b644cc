package memory

import (
	"context"
	"sync"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory implementation of driven.TaskStore.
// Records are keyed by TaskRecord.Key, so repeated saves of the same
// remote issue upsert instead of duplicating.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.TaskRecord
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]domain.TaskRecord),
	}
}

// Save stores or updates a task record.
func (s *TaskStore) Save(_ context.Context, record *domain.TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[record.Key] = *record
	return nil
}

// Get retrieves a task record by key.
func (s *TaskStore) Get(_ context.Context, key string) (*domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.tasks[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all task records for a source.
func (s *TaskStore) List(_ context.Context, sourceID string) ([]domain.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.TaskRecord
	for key := range s.tasks {
		record := s.tasks[key]
		if record.SourceID == sourceID {
			result = append(result, record)
		}
	}
	return result, nil
}

// Len returns the number of stored records.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
