package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvResolver(t *testing.T) {
	ctx := context.Background()
	key := "bitbucket://me@bitbucket.org/acme"

	t.Run("oracle hint maps to named variable", func(t *testing.T) {
		t.Setenv("TASKPULL_SECRET_WORK_ACCOUNT", "s3cret")

		resolver := &EnvResolver{}
		secret, err := resolver.Resolve(ctx, key, "@oracle:work-account", false)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", secret)
	})

	t.Run("plain hint maps to generic password variable", func(t *testing.T) {
		t.Setenv("TASKPULL_PASSWORD", "generic")

		resolver := &EnvResolver{}
		secret, err := resolver.Resolve(ctx, key, "", false)
		require.NoError(t, err)
		assert.Equal(t, "generic", secret)
	})

	t.Run("unset variable is not found", func(t *testing.T) {
		resolver := &EnvResolver{}
		_, err := resolver.Resolve(ctx, key, "@oracle:definitely-unset-secret", false)
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TASKPULL_PASSWORD", envName(""))
	assert.Equal(t, "TASKPULL_PASSWORD", envName("literal-password"))
	assert.Equal(t, "TASKPULL_SECRET_WORK", envName("@oracle:work"))
	assert.Equal(t, "TASKPULL_SECRET_TEAM_42", envName("@oracle:team.42"))
}

func TestPromptResolver(t *testing.T) {
	t.Run("refuses non-interactive runs", func(t *testing.T) {
		resolver := &PromptResolver{}
		_, err := resolver.Resolve(context.Background(), "key", "", false)
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})
}

func TestChainResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("first resolver with a secret wins", func(t *testing.T) {
		chain := NewChainResolver(
			&StaticResolver{},
			&StaticResolver{Secrets: map[string]string{"key": "second"}},
			&StaticResolver{Secrets: map[string]string{"key": "third"}},
		)
		secret, err := chain.Resolve(ctx, "key", "", false)
		require.NoError(t, err)
		assert.Equal(t, "second", secret)
	})

	t.Run("exhausted chain reports not found", func(t *testing.T) {
		chain := NewChainResolver(&StaticResolver{}, &StaticResolver{})
		_, err := chain.Resolve(ctx, "key", "", false)
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})

	t.Run("hard failure aborts the chain", func(t *testing.T) {
		hardErr := errors.New("store corrupted")
		chain := NewChainResolver(
			&failingResolver{err: hardErr},
			&StaticResolver{Secrets: map[string]string{"key": "never"}},
		)
		_, err := chain.Resolve(ctx, "key", "", false)
		assert.ErrorIs(t, err, hardErr)
	})

	t.Run("empty chain reports not found", func(t *testing.T) {
		chain := NewChainResolver()
		_, err := chain.Resolve(ctx, "key", "", false)
		assert.ErrorIs(t, err, ErrSecretNotFound)
	})
}

type failingResolver struct {
	err error
}

func (f *failingResolver) Resolve(context.Context, string, string, bool) (string, error) {
	return "", f.err
}

func TestStaticResolver(t *testing.T) {
	resolver := &StaticResolver{Secrets: map[string]string{"key": "value"}}

	secret, err := resolver.Resolve(context.Background(), "key", "", false)
	require.NoError(t, err)
	assert.Equal(t, "value", secret)

	_, err = resolver.Resolve(context.Background(), "missing", "", false)
	assert.ErrorIs(t, err, ErrSecretNotFound)
	assert.Equal(t, 2, resolver.Calls)
}
