package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskpull/taskpull-cli/internal/connectors/bitbucket"
	"github.com/taskpull/taskpull-cli/internal/core/domain"
	"github.com/taskpull/taskpull-cli/internal/core/ports/driven"
)

// Ensure ConnectorFactory implements the interface.
var _ driven.ConnectorFactory = (*ConnectorFactory)(nil)

// ConnectorFactory creates connectors from source configuration.
type ConnectorFactory struct {
	mu       sync.RWMutex
	builders map[string]driven.ConnectorBuilder
}

// NewConnectorFactory creates an empty connector factory.
func NewConnectorFactory() *ConnectorFactory {
	return &ConnectorFactory{
		builders: make(map[string]driven.ConnectorBuilder),
	}
}

// Create returns a Connector for the given source.
func (f *ConnectorFactory) Create(ctx context.Context, source domain.Source) (driven.Connector, error) {
	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, source.Type)
	}
	return builder(ctx, source)
}

// Register adds a connector builder for the given type.
func (f *ConnectorFactory) Register(connectorType string, builder driven.ConnectorBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[connectorType] = builder
}

// SupportedTypes returns all registered connector types.
func (f *ConnectorFactory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	return types
}

// RegisterBuiltinConnectors wires the builtin connector types into a
// factory. The predicate is the framework's generic inclusion rule and may
// be nil.
func RegisterBuiltinConnectors(
	factory *ConnectorFactory,
	credentials *CredentialResolver,
	predicate driven.IssuePredicate,
) {
	factory.Register("bitbucket", func(ctx context.Context, source domain.Source) (driven.Connector, error) {
		cfg, err := bitbucket.ParseConfig(source)
		if err != nil {
			return nil, err
		}

		credential, err := credentials.Resolve(
			ctx, source.ID, cfg.SecretKey(), cfg.Login, cfg.Password, source.Interactive,
		)
		if err != nil {
			return nil, err
		}

		return bitbucket.New(source.ID, cfg, credential, predicate), nil
	})
}
