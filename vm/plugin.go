package vm

import (
	"context"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-vm/engine"
)

// Plugin is one loaded, instantiated guest module. It exclusively owns
// its compiled module, execution store, host bindings and live
// instance; none are shared with other plugins.
//
// A Plugin is single-owner: the embedder must ensure at most one
// in-flight Call per Plugin, by confining it to one worker or
// serializing calls behind a lock.
type Plugin struct {
	vm       *VM
	store    *engine.Store
	compiled wazero.CompiledModule
	hostMod  api.Module
	wasi     api.Closer
	instance api.Module
	closed   atomic.Bool
}

// Close releases everything the plugin owns. Only the first call has
// effect. The store's runtime transitively releases anything closed
// out of order, so individual close errors are reported but do not
// stop the teardown.
func (p *Plugin) Close(ctx context.Context) error {
	if p == nil || !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if p.instance != nil {
		keep(p.instance.Close(ctx))
	}
	if p.hostMod != nil {
		keep(p.hostMod.Close(ctx))
	}
	if p.wasi != nil {
		keep(p.wasi.Close(ctx))
	}
	if p.compiled != nil {
		keep(p.compiled.Close(ctx))
	}
	keep(p.store.Close(ctx))

	p.vm.log.Info("unloaded wasm plugin")
	return firstErr
}
