package domain

import "time"

// Source represents a configured remote service to pull tasks from.
// Each source produces task records via a connector.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (e.g., "bitbucket").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string

	// Interactive indicates whether credential resolution for this source
	// may prompt the user.
	Interactive bool

	// CreatedAt is when the source was created.
	CreatedAt time.Time

	// UpdatedAt is when the source was last updated.
	UpdatedAt time.Time
}
