package bitbucket

import (
	"strings"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

// Config holds the parsed configuration for a Bitbucket source.
type Config struct {
	// Username is the account whose repositories are enumerated. Required.
	Username string

	// Login is the credential identity. Optional; empty means anonymous.
	Login string

	// Password is the configured secret. Optional; may be an oracle
	// reference (see domain.OracleMarker) or absent, in which case the
	// secret is resolved through the secure store.
	Password string

	// ExcludeRepos lists repository slugs that never sync.
	ExcludeRepos []string

	// IncludeRepos, when non-empty, restricts syncing to the listed slugs.
	IncludeRepos []string
}

// ParseConfig parses a source's config map into a Config struct.
// Only username is required; everything else defaults to open access.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		Username: strings.TrimSpace(source.Config["username"]),
		Login:    strings.TrimSpace(source.Config["login"]),
		Password: source.Config["password"],
	}

	if cfg.Username == "" {
		return nil, ErrConfigMissingUsername
	}

	if v, ok := source.Config["exclude_repos"]; ok && v != "" {
		cfg.ExcludeRepos = splitList(v)
	}
	if v, ok := source.Config["include_repos"]; ok && v != "" {
		cfg.IncludeRepos = splitList(v)
	}

	return cfg, nil
}

// SecretKey builds the composite secure-store lookup key for this source,
// in the form "bitbucket://<login>@bitbucket.org/<username>".
func (c *Config) SecretKey() string {
	return "bitbucket://" + c.Login + "@bitbucket.org/" + c.Username
}

// IncludeRepo decides whether a repository slug participates in the sync.
// The exclude-list wins; otherwise a non-empty include-list must contain
// the slug; otherwise everything is accepted.
func (c *Config) IncludeRepo(slug string) bool {
	for _, excluded := range c.ExcludeRepos {
		if slug == excluded {
			return false
		}
	}

	if len(c.IncludeRepos) > 0 {
		for _, included := range c.IncludeRepos {
			if slug == included {
				return true
			}
		}
		return false
	}

	return true
}

// splitList parses a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
