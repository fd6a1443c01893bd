package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
)

// Engine is the process-wide compiled-code execution environment. It
// owns the runtime configuration and the compilation cache shared by
// every store, so repeated loads of the same bytecode compile once.
//
// An Engine is created once at startup and closed once at shutdown,
// after every store created from it has been closed. Sequencing that is
// the embedder's responsibility.
type Engine struct {
	cfg     wazero.RuntimeConfig
	cache   wazero.CompilationCache
	stores  atomic.Int64
	created atomic.Int64
	closed  atomic.Bool
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// Interpreter forces the interpreter even on hosts where the
	// compiler backend is supported. Useful for debugging codegen issues.
	Interpreter bool
}

// New creates an engine with default configuration
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration
func NewWithConfig(_ context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	if cfg != nil {
		if cfg.Interpreter {
			runtimeCfg = wazero.NewRuntimeConfigInterpreter()
		}
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
	}

	cache := wazero.NewCompilationCache()
	runtimeCfg = runtimeCfg.WithCompilationCache(cache)

	return &Engine{cfg: runtimeCfg, cache: cache}, nil
}

// NewStore creates an isolated execution store. Host modules and guest
// instances in one store are invisible to every other store.
func (e *Engine) NewStore(ctx context.Context) (*Store, error) {
	if e.closed.Load() {
		return nil, fmt.Errorf("engine is closed")
	}

	r := wazero.NewRuntimeWithConfig(ctx, e.cfg)
	e.stores.Add(1)
	e.created.Add(1)

	return &Store{engine: e, runtime: r}, nil
}

// LiveStores returns the number of stores created and not yet closed.
func (e *Engine) LiveStores() int64 {
	return e.stores.Load()
}

// StoresCreated returns the number of stores ever created. Together
// with LiveStores it lets tests verify both leak-freedom and that a
// rejected load allocated nothing.
func (e *Engine) StoresCreated() int64 {
	return e.created.Load()
}

// Close releases the engine. Safe to call on a nil engine or more than
// once; only the first call releases the compilation cache.
func (e *Engine) Close(ctx context.Context) error {
	if e == nil || !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.cache.Close(ctx)
}
