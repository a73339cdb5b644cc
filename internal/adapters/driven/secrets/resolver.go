// Package secrets implements the SecretResolver port.
//
// The resolver chain mirrors how users actually hold service passwords:
// environment variables first, then an interactive no-echo prompt when the
// run permits it. A static resolver backs tests.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// ErrSecretNotFound indicates a resolver had no secret for the key.
// Chain members returning it are skipped; other errors abort resolution.
var ErrSecretNotFound = errors.New("secrets: secret not found")

// EnvPrefix prefixes the environment variables consulted by EnvResolver.
const EnvPrefix = "TASKPULL"

// Ensure implementations satisfy the port.
var (
	_ driven.SecretResolver = (*EnvResolver)(nil)
	_ driven.SecretResolver = (*PromptResolver)(nil)
	_ driven.SecretResolver = (*ChainResolver)(nil)
	_ driven.SecretResolver = (*StaticResolver)(nil)
)

// EnvResolver reads secrets from environment variables. An oracle hint
// "@oracle:team-secret" maps to TASKPULL_SECRET_TEAM_SECRET; without an
// oracle name the generic TASKPULL_PASSWORD is consulted.
type EnvResolver struct{}

// Resolve looks up the environment variable derived from the hint.
func (e *EnvResolver) Resolve(_ context.Context, key, hint string, _ bool) (string, error) {
	name := envName(hint)
	if value := os.Getenv(name); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s not set (key %s)", ErrSecretNotFound, name, key)
}

// envName derives the environment variable name for a hint.
func envName(hint string) string {
	oracle := domain.OracleName(hint)
	if oracle == "" {
		return EnvPrefix + "_PASSWORD"
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, oracle)
	return EnvPrefix + "_SECRET_" + mapped
}

// PromptResolver asks the user for the secret on the terminal, without
// echo. It refuses to resolve when the run is non-interactive or stdin is
// not a terminal.
type PromptResolver struct{}

// Resolve prompts for the secret named by key.
func (p *PromptResolver) Resolve(_ context.Context, key, _ string, interactive bool) (string, error) {
	if !interactive {
		return "", fmt.Errorf("%w: non-interactive run (key %s)", ErrSecretNotFound, key)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("%w: stdin is not a terminal (key %s)", ErrSecretNotFound, key)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", key)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty password entered (key %s)", ErrSecretNotFound, key)
	}
	return string(secret), nil
}

// ChainResolver tries resolvers in order, skipping those without a secret.
type ChainResolver struct {
	resolvers []driven.SecretResolver
}

// NewChainResolver creates a chain over the given resolvers.
func NewChainResolver(resolvers ...driven.SecretResolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// NewDefaultResolver is the production chain: environment first, then an
// interactive prompt.
func NewDefaultResolver() *ChainResolver {
	return NewChainResolver(&EnvResolver{}, &PromptResolver{})
}

// Resolve returns the first secret found. A resolver failure other than
// ErrSecretNotFound aborts immediately.
func (c *ChainResolver) Resolve(ctx context.Context, key, hint string, interactive bool) (string, error) {
	var notFound error
	for _, r := range c.resolvers {
		secret, err := r.Resolve(ctx, key, hint, interactive)
		if err == nil {
			return secret, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			return "", err
		}
		notFound = err
	}
	if notFound == nil {
		notFound = fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return "", notFound
}

// StaticResolver returns fixed secrets by key. Used in tests.
type StaticResolver struct {
	// Secrets maps lookup keys to secrets.
	Secrets map[string]string

	// Calls counts Resolve invocations.
	Calls int
}

// Resolve returns the configured secret for key.
func (s *StaticResolver) Resolve(_ context.Context, key, _ string, _ bool) (string, error) {
	s.Calls++
	secret, ok := s.Secrets[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return secret, nil
}
