package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Linker accumulates host function definitions for one namespace and
// materializes them as a host module inside a store. It exists only
// during plugin construction.
//
// wazero's host module builder silently accepts duplicate exports, so
// the linker tracks defined names itself and rejects the second
// definition of a name deterministically.
type Linker struct {
	builder   wazero.HostModuleBuilder
	defined   map[string]struct{}
	namespace string
}

// NewLinker creates a linker for the given namespace in this store.
func (s *Store) NewLinker(namespace string) *Linker {
	return &Linker{
		builder:   s.runtime.NewHostModuleBuilder(namespace),
		defined:   make(map[string]struct{}),
		namespace: namespace,
	}
}

// DefineFunc adds a native function binding under the linker's
// namespace. Defining the same name twice is an error.
func (l *Linker) DefineFunc(name string, fn api.GoModuleFunc, params, results []api.ValueType) error {
	if name == "" {
		return fmt.Errorf("empty function name")
	}
	if fn == nil {
		return fmt.Errorf("nil callback for %q", name)
	}
	if _, dup := l.defined[name]; dup {
		return fmt.Errorf("%q already defined in namespace %q", name, l.namespace)
	}
	l.defined[name] = struct{}{}

	Logger().Debug("define host function",
		zap.String("namespace", l.namespace),
		zap.String("name", name))

	l.builder.NewFunctionBuilder().
		WithGoModuleFunction(fn, params, results).
		Export(name)
	return nil
}

// Instantiate materializes the accumulated definitions as a host module
// in the linker's store. Must be called before the guest is
// instantiated, and at most once.
func (l *Linker) Instantiate(ctx context.Context) (api.Module, error) {
	return l.builder.Instantiate(ctx)
}
