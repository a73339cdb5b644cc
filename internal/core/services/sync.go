package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driving"
	"github.com/taskpull/taskpull-cli/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates task synchronisation.
type SyncOrchestrator struct {
	sourceStore driven.SourceStore
	taskStore   driven.TaskStore
	factory     driven.ConnectorFactory

	// Status tracking
	mu          sync.RWMutex
	activeSyncs map[string]*driving.SyncStatus
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	sourceStore driven.SourceStore,
	taskStore driven.TaskStore,
	factory driven.ConnectorFactory,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		sourceStore: sourceStore,
		taskStore:   taskStore,
		factory:     factory,
		activeSyncs: make(map[string]*driving.SyncStatus),
	}
}

// Sync triggers synchronisation for a source. The run is fail-fast: the
// first connector error aborts the invocation with no partial-result
// salvage and no retry.
func (o *SyncOrchestrator) Sync(ctx context.Context, sourceID string) error {
	source, err := o.sourceStore.Get(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("get source: %w", err)
	}

	if o.factory == nil {
		return fmt.Errorf("create connector: connector factory not configured")
	}
	connector, err := o.factory.Create(ctx, *source)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if err := connector.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
	}

	status := &driving.SyncStatus{
		SourceID: sourceID,
		Running:  true,
	}
	o.setStatus(sourceID, status)
	defer o.clearStatus(sourceID)

	logger.Info("Starting sync for source %s", sourceID)

	recordsCh, errsCh := connector.FullSync(ctx)
	if err := o.processRecords(ctx, recordsCh, errsCh, status); err != nil {
		return err
	}

	logger.Info("Sync complete: %d tasks", status.TasksProcessed)
	status.Running = false
	return nil
}

// SyncAll triggers synchronisation for all configured sources.
func (o *SyncOrchestrator) SyncAll(ctx context.Context) error {
	sources, err := o.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var errs []error
	for _, source := range sources {
		if err := o.Sync(ctx, source.ID); err != nil {
			errs = append(errs, fmt.Errorf("sync %s: %w", source.ID, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Status returns sync status for a source.
func (o *SyncOrchestrator) Status(_ context.Context, sourceID string) (*driving.SyncStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if status, ok := o.activeSyncs[sourceID]; ok {
		// Return a copy to avoid race conditions
		return &driving.SyncStatus{
			SourceID:       status.SourceID,
			Running:        status.Running,
			TasksProcessed: status.TasksProcessed,
		}, nil
	}

	// Not running - return idle status
	return &driving.SyncStatus{
		SourceID: sourceID,
		Running:  false,
	}, nil
}

// processRecords drains the connector's channels, upserting each record
// into the task store. The first connector error aborts the run.
func (o *SyncOrchestrator) processRecords(
	ctx context.Context,
	recordsCh <-chan domain.TaskRecord,
	errsCh <-chan error,
	status *driving.SyncStatus,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if err != nil {
				return fmt.Errorf("connector error: %w", err)
			}

		case record, ok := <-recordsCh:
			if !ok {
				// Record channel closed; a trailing error may still be
				// buffered on the error channel.
				if errsCh != nil {
					for err := range errsCh {
						if err != nil {
							return fmt.Errorf("connector error: %w", err)
						}
					}
				}
				return nil
			}

			logger.Debug("Saving task %s", record.Key)
			if err := o.taskStore.Save(ctx, &record); err != nil {
				return fmt.Errorf("save task %s: %w", record.Key, err)
			}
			status.TasksProcessed++
		}
	}
}

// setStatus sets the sync status for a source.
func (o *SyncOrchestrator) setStatus(sourceID string, status *driving.SyncStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.activeSyncs[sourceID] = status
}

// clearStatus removes the sync status for a source.
func (o *SyncOrchestrator) clearStatus(sourceID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.activeSyncs, sourceID)
}
