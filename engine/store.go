package engine

import (
	"context"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// Store is the isolated execution state backing one loaded plugin: its
// own wazero runtime built from the engine's shared configuration and
// compilation cache. Compiled modules, host modules and instances live
// inside the store and are released together when it closes.
//
// A Store is single-owner. It is not safe for concurrent invocation;
// the embedder must serialize calls into it.
type Store struct {
	engine  *Engine
	runtime wazero.Runtime
	closed  atomic.Bool
}

// Runtime exposes the underlying wazero runtime.
func (s *Store) Runtime() wazero.Runtime {
	return s.runtime
}

// Compile compiles bytecode inside this store. The engine's shared
// cache makes repeated compilation of the same bytecode cheap across
// stores.
func (s *Store) Compile(ctx context.Context, bytecode []byte) (wazero.CompiledModule, error) {
	return s.runtime.CompileModule(ctx, bytecode)
}

// InstantiateWASI makes the WASI preview1 host module available to
// guests in this store, applying the process's inherited capabilities.
func (s *Store) InstantiateWASI(ctx context.Context) (api.Closer, error) {
	Logger().Debug("instantiate WASI host module")
	return wasi_snapshot_preview1.Instantiate(ctx, s.runtime)
}

// Close releases the store and everything instantiated in it. Only the
// first call has effect.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.engine.stores.Add(-1)

	if err := s.runtime.Close(ctx); err != nil {
		Logger().Warn("close store runtime", zap.Error(err))
		return err
	}
	return nil
}
