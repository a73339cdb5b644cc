package driven

import "context"

// SecretResolver resolves indirect credential references against a secure
// store. The production resolver talks to the user's secret storage; test
// resolvers return fixed values.
type SecretResolver interface {
	// Resolve looks up the secret for a composite key such as
	// "bitbucket://login@bitbucket.org/username". The hint carries the raw
	// oracle token from configuration (may be empty when the password was
	// simply absent). When interactive is true the resolver may fall back
	// to prompting the user; otherwise it must fail rather than block.
	Resolve(ctx context.Context, key, hint string, interactive bool) (string, error)
}
