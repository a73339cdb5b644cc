package file

import (
	"context"
	"time"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore persists sources as [sources.<id>] tables in the config file.
type SourceStore struct {
	config *ConfigStore
}

// NewSourceStore creates a source store backed by the config file.
func NewSourceStore(config *ConfigStore) *SourceStore {
	return &SourceStore{config: config}
}

// Get retrieves a source by ID.
func (s *SourceStore) Get(_ context.Context, id string) (*domain.Source, error) {
	s.config.mu.RLock()
	defer s.config.mu.RUnlock()

	entry, ok := s.config.sourcesTable()[id].(map[string]any)
	if !ok {
		return nil, domain.ErrNotFound
	}
	source := decodeSource(id, entry)
	return &source, nil
}

// List returns all configured sources.
func (s *SourceStore) List(_ context.Context) ([]domain.Source, error) {
	s.config.mu.RLock()
	defer s.config.mu.RUnlock()

	table := s.config.sourcesTable()
	sources := make([]domain.Source, 0, len(table))
	for id, v := range table {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		sources = append(sources, decodeSource(id, entry))
	}
	return sources, nil
}

// Save stores or updates a source and persists the config file.
func (s *SourceStore) Save(_ context.Context, source domain.Source) error {
	s.config.mu.Lock()
	defer s.config.mu.Unlock()

	cfg := make(map[string]any, len(source.Config))
	for k, v := range source.Config {
		cfg[k] = v
	}

	s.config.sourcesTable()[source.ID] = map[string]any{
		"type":        source.Type,
		"name":        source.Name,
		"interactive": source.Interactive,
		"config":      cfg,
	}
	s.config.data = flattenMap(s.config.raw, "")
	return s.config.save()
}

// Delete removes a source by ID and persists the config file.
func (s *SourceStore) Delete(_ context.Context, id string) error {
	s.config.mu.Lock()
	defer s.config.mu.Unlock()

	table := s.config.sourcesTable()
	if _, ok := table[id]; !ok {
		return domain.ErrNotFound
	}
	delete(table, id)
	s.config.data = flattenMap(s.config.raw, "")
	return s.config.save()
}

// decodeSource converts a [sources.<id>] table into a domain.Source.
// Unknown or mistyped fields default to their zero values; the connector's
// own config parsing reports what is actually missing.
func decodeSource(id string, entry map[string]any) domain.Source {
	source := domain.Source{
		ID:     id,
		Config: make(map[string]string),
	}

	if v, ok := entry["type"].(string); ok {
		source.Type = v
	}
	if v, ok := entry["name"].(string); ok {
		source.Name = v
	}
	if v, ok := entry["interactive"].(bool); ok {
		source.Interactive = v
	}
	if v, ok := entry["created_at"].(time.Time); ok {
		source.CreatedAt = v
	}
	if cfg, ok := entry["config"].(map[string]any); ok {
		for k, val := range cfg {
			if str, ok := val.(string); ok {
				source.Config[k] = str
			}
		}
	}
	return source
}
