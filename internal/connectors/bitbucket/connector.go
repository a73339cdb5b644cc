package bitbucket

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
	"github.com/taskpull/taskpull-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// closedStatuses is the fixed set of remote statuses that never produce a
// task record.
var closedStatuses = map[string]bool{
	"resolved":  true,
	"duplicate": true,
	"wontfix":   true,
	"invalid":   true,
}

// Connector pulls issues from Bitbucket and emits normalised task records.
type Connector struct {
	sourceID  string
	config    *Config
	client    *Client
	predicate driven.IssuePredicate
	mu        sync.Mutex
	closed    bool
}

// New creates a Bitbucket connector. The credential may be nil for
// anonymous access; the predicate may be nil to include every open issue.
func New(sourceID string, cfg *Config, credential *domain.Credential, predicate driven.IssuePredicate) *Connector {
	return &Connector{
		sourceID:  sourceID,
		config:    cfg,
		client:    NewClient(credential),
		predicate: predicate,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return "bitbucket"
}

// SourceID returns the source identifier.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// SetClient replaces the API client. Used by tests to point the connector
// at an httptest server.
func (c *Connector) SetClient(client *Client) {
	c.client = client
}

// Validate checks configuration and credentials with one profile fetch.
func (c *Connector) Validate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrConnectorClosed
	}

	var profile struct{}
	if err := c.client.Get(ctx, "/users/"+c.config.Username+"/", &profile); err != nil {
		if IsUnauthorized(err) {
			return domain.ErrAuthInvalid
		}
		return fmt.Errorf("%w: %w", domain.ErrConnectorValidation, err)
	}
	return nil
}

// FullSync runs the whole pipeline: repository discovery, repo filtering,
// per-repo issue listing, status and predicate filtering, per-issue comment
// fetch, and mapping. Records stream on the first channel; the first error
// aborts the run. Fetching is strictly sequential, one request at a time.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.TaskRecord, <-chan error) {
	recordsChan := make(chan domain.TaskRecord)
	errsChan := make(chan error, 1)

	go func() {
		defer close(recordsChan)
		defer close(errsChan)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			errsChan <- domain.ErrConnectorClosed
			return
		}
		c.mu.Unlock()

		repos, err := ListRepositories(ctx, c.client, c.config.Username)
		if err != nil {
			errsChan <- err
			return
		}

		for _, repo := range repos {
			if !c.config.IncludeRepo(repo.Slug) {
				continue
			}

			select {
			case <-ctx.Done():
				return
			default:
			}

			tag := c.config.Username + "/" + repo.Slug
			if err := c.syncRepo(ctx, tag, recordsChan); err != nil {
				errsChan <- err
				return
			}
		}
	}()

	return recordsChan, errsChan
}

// syncRepo pulls one repository's issues and streams the surviving records.
func (c *Connector) syncRepo(ctx context.Context, tag string, out chan<- domain.TaskRecord) error {
	issues, err := ListIssues(ctx, c.client, tag)
	if err != nil {
		return err
	}
	logger.Debug("%s: found %d issues", tag, len(issues))

	kept := 0
	for i := range issues {
		issue := &issues[i]

		if issue.Status != nil && closedStatuses[*issue.Status] {
			continue
		}
		if !c.include(tag, issue) {
			continue
		}
		kept++

		record, err := c.buildRecord(ctx, tag, issue)
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- *record:
		}
	}
	logger.Debug("%s: pruned down to %d", tag, kept)

	return nil
}

// include applies the externally supplied inclusion predicate, if any.
func (c *Connector) include(tag string, issue *Issue) bool {
	if c.predicate == nil {
		return true
	}

	candidate := driven.IssueCandidate{
		Project: projectFromTag(tag),
		Owner:   issue.Owner(),
	}
	if issue.LocalID != nil {
		candidate.ForeignID = *issue.LocalID
	}
	if issue.Title != nil {
		candidate.Title = *issue.Title
	}
	if issue.Status != nil {
		candidate.Status = *issue.Status
	}
	return c.predicate(candidate)
}

// buildRecord fetches the comment thread and maps one issue.
func (c *Connector) buildRecord(ctx context.Context, tag string, issue *Issue) (*domain.TaskRecord, error) {
	if issue.LocalID == nil {
		return nil, fmt.Errorf("%w: missing local_id", ErrIncompleteRecord)
	}

	comments, err := ListComments(ctx, c.client, tag, *issue.LocalID)
	if err != nil {
		return nil, err
	}

	url := CanonicalURL(issue.ResourceURI)
	annotations := BuildAnnotations(comments, url)

	record, err := MapIssue(tag, issue, annotations)
	if err != nil {
		return nil, err
	}
	record.SourceID = c.sourceID
	return record, nil
}

// Close releases resources.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
