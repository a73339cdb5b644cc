package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// CredentialResolver produces the authentication credential for a source,
// resolving oracle references through the secure store. Resolution happens
// at most once per source per run; the result is cached so repeated
// connector construction never re-queries the store.
type CredentialResolver struct {
	secrets driven.SecretResolver

	mu    sync.Mutex
	cache map[string]*domain.Credential
}

// NewCredentialResolver creates a credential resolver backed by the given
// secret store.
func NewCredentialResolver(secrets driven.SecretResolver) *CredentialResolver {
	return &CredentialResolver{
		secrets: secrets,
		cache:   make(map[string]*domain.Credential),
	}
}

// Resolve returns the credential for a source, or nil for anonymous access.
//
// No login configured means anonymous. A literal password is used as-is.
// An absent password, or one carrying the oracle marker, is resolved
// against the secure store under the composite key, passing the raw
// configured value through as a hint.
func (r *CredentialResolver) Resolve(
	ctx context.Context,
	sourceID, key, login, password string,
	interactive bool,
) (*domain.Credential, error) {
	if login == "" {
		return nil, nil
	}

	r.mu.Lock()
	if cached, ok := r.cache[sourceID]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	secret := password
	if secret == "" || domain.IsOracle(secret) {
		resolved, err := r.secrets.Resolve(ctx, key, password, interactive)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrSecretUnavailable, key, err)
		}
		secret = resolved
	}

	credential := &domain.Credential{Identity: login, Secret: secret}

	r.mu.Lock()
	r.cache[sourceID] = credential
	r.mu.Unlock()

	return credential, nil
}
