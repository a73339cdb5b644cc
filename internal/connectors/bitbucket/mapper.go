package bitbucket

import (
	"fmt"
	"strings"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// priorityMap is the fixed translation from Bitbucket priorities to the
// normalised vocabulary. It is total: any remote value outside this table
// is a mapping failure, never a silent default.
var priorityMap = map[string]domain.Priority{
	"trivial":  domain.PriorityLow,
	"minor":    domain.PriorityLow,
	"major":    domain.PriorityMedium,
	"critical": domain.PriorityHigh,
	"blocker":  domain.PriorityHigh,
}

// MapPriority translates a remote priority string.
func MapPriority(remote string) (domain.Priority, error) {
	priority, ok := priorityMap[remote]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, remote)
	}
	return priority, nil
}

// MapIssue converts one raw issue (plus its prebuilt annotations) into a
// normalised task record. The tag is "owner/slug"; the slug becomes the
// record's project. Fails if local_id, title or status is absent, or if
// the priority is outside the mapping table.
func MapIssue(tag string, issue *Issue, annotations []string) (*domain.TaskRecord, error) {
	if issue.LocalID == nil {
		return nil, fmt.Errorf("%w: missing local_id", ErrIncompleteRecord)
	}
	if issue.Title == nil {
		return nil, fmt.Errorf("%w: missing title (issue %d)", ErrIncompleteRecord, *issue.LocalID)
	}
	if issue.Status == nil {
		return nil, fmt.Errorf("%w: missing status (issue %d)", ErrIncompleteRecord, *issue.LocalID)
	}

	var remotePriority string
	if issue.Priority != nil {
		remotePriority = *issue.Priority
	}
	priority, err := MapPriority(remotePriority)
	if err != nil {
		return nil, fmt.Errorf("issue %d: %w", *issue.LocalID, err)
	}

	url := CanonicalURL(issue.ResourceURI)

	return &domain.TaskRecord{
		Key:         url,
		Project:     projectFromTag(tag),
		Priority:    priority,
		Title:       *issue.Title,
		ForeignID:   *issue.LocalID,
		URL:         url,
		Owner:       issue.Owner(),
		Annotations: annotations,
	}, nil
}

// projectFromTag extracts the repository slug from an "owner/slug" tag.
func projectFromTag(tag string) string {
	parts := strings.SplitN(tag, "/", 2)
	if len(parts) < 2 {
		return tag
	}
	return parts[1]
}
