package domain

// Priority is the normalised task priority.
type Priority string

const (
	// PriorityLow maps low-urgency remote priorities.
	PriorityLow Priority = "L"
	// PriorityMedium maps medium-urgency remote priorities.
	PriorityMedium Priority = "M"
	// PriorityHigh maps high-urgency remote priorities.
	PriorityHigh Priority = "H"
)

// TaskRecord is the normalised representation of one remote issue.
// It is constructed fresh on every sync run and never mutated afterwards;
// ownership passes to the task store on save.
type TaskRecord struct {
	// Key is the unique identity of the record, derived from the canonical
	// web URL of the remote issue. The same remote issue always produces the
	// same Key, across runs, enabling upsert in the store.
	Key string

	// SourceID links to the Source that produced this record.
	SourceID string

	// Project is the repository slug the issue belongs to.
	Project string

	// Priority is the normalised priority (L/M/H).
	Priority Priority

	// Title is the remote issue title.
	Title string

	// ForeignID is the remote issue's local numeric id.
	ForeignID int

	// URL is the canonical human-facing web URL (not the API URL).
	URL string

	// Owner is the username responsible for the issue, empty when unassigned.
	Owner string

	// Annotations are human-readable comment summaries, in remote
	// (chronological) order.
	Annotations []string
}
