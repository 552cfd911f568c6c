// Package registry manages connector registration and instantiation.
// Connector packages self-register a factory for their scheme, and callers
// resolve a source descriptor ("file:payments.csv", "postgres://...") into
// a live connector without importing the concrete package.
package registry

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/corvus-data/corvus/pkg/config"
	"github.com/corvus-data/corvus/pkg/connector"
	"github.com/corvus-data/corvus/pkg/errors"
	"github.com/corvus-data/corvus/pkg/logger"
)

// Factory creates a connector from its descriptor, the part of the source
// string after the scheme separator.
type Factory func(ctx context.Context, descriptor string, cfg *config.Config) (connector.Connector, error)

// Registry maps schemes to connector factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	log       *zap.Logger
}

// Global registry instance; connector packages register into it from init.
var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		log:       logger.With(zap.String("component", "connector_registry")),
	}
}

// Register registers a factory for a scheme. Double registration is a
// programming error and fails loudly.
func (r *Registry) Register(scheme string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[scheme]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "connector scheme %q already registered", scheme)
	}

	r.factories[scheme] = factory
	r.log.Debug("connector factory registered", zap.String("scheme", scheme))
	return nil
}

// Open resolves a source descriptor into a connector. Descriptors take the
// form "scheme:rest"; a descriptor without a registered scheme fails.
func (r *Registry) Open(ctx context.Context, source string, cfg *config.Config) (connector.Connector, error) {
	scheme, rest := splitScheme(source)

	r.mu.RLock()
	factory, ok := r.factories[scheme]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"no connector registered for scheme %q in %q", scheme, source)
	}

	conn, err := factory(ctx, rest, cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to open connector")
	}

	r.log.Debug("connector opened",
		zap.String("scheme", scheme),
		zap.String("connector", conn.Name()))
	return conn, nil
}

// Schemes returns the registered schemes, for diagnostics.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.factories))
	for scheme := range r.factories {
		schemes = append(schemes, scheme)
	}
	return schemes
}

// splitScheme separates "scheme:rest". postgres:// descriptors keep their
// full form as the rest, since the driver consumes the whole URL.
func splitScheme(source string) (scheme, rest string) {
	idx := strings.Index(source, ":")
	if idx == -1 {
		return "", source
	}

	scheme = source[:idx]
	if strings.HasPrefix(source[idx:], "://") {
		// URL-style descriptors pass through whole.
		return scheme, source
	}
	return scheme, source[idx+1:]
}

// Register registers a factory in the global registry.
func Register(scheme string, factory Factory) error {
	return globalRegistry.Register(scheme, factory)
}

// MustRegister registers a factory in the global registry and panics on
// conflict; intended for package init functions.
func MustRegister(scheme string, factory Factory) {
	if err := globalRegistry.Register(scheme, factory); err != nil {
		panic(err)
	}
}

// Open resolves a source descriptor through the global registry.
func Open(ctx context.Context, source string, cfg *config.Config) (connector.Connector, error) {
	return globalRegistry.Open(ctx, source, cfg)
}

// Schemes returns the global registry's registered schemes.
func Schemes() []string {
	return globalRegistry.Schemes()
}
