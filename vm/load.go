package vm

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-vm/engine"
	"github.com/wippyai/wasm-vm/errors"
	"github.com/wippyai/wasm-vm/hostapi"
	"github.com/wippyai/wasm-vm/wasm"
)

// Load compiles, links and instantiates one guest module, binding every
// registry entry under the "env" namespace, and returns a fully
// constructed Plugin. On any failure every resource acquired so far is
// released and nothing is returned: load failures are local to this one
// call and never touch the engine or other plugins.
func (v *VM) Load(ctx context.Context, bytecode []byte, reg *hostapi.Registry) (*Plugin, error) {
	// Reject obviously malformed bytecode before acquiring anything.
	// The VM ties deep compilation to a store, so structurally valid
	// but uncompilable bytecode is caught one step later.
	if err := wasm.Sniff(bytecode); err != nil {
		return nil, errors.Compile(err)
	}

	undo := rollback{log: v.log}
	defer undo.Run(ctx)

	store, err := v.engine.NewStore(ctx)
	if err != nil {
		return nil, errors.Store(err)
	}
	undo.Add(store.Close)

	compiled, err := store.Compile(ctx, bytecode)
	if err != nil {
		return nil, errors.Compile(err)
	}
	undo.Add(compiled.Close)

	wasiCloser, err := store.InstantiateWASI(ctx)
	if err != nil {
		v.report("failed to init WASI: ", err)
		return nil, errors.Capability(err)
	}
	undo.Add(wasiCloser.Close)

	linker := store.NewLinker(hostapi.Namespace)
	for _, e := range reg.Entries() {
		v.log.Debug("define wasm host API", zap.String("name", e.Name))
		if err := linker.DefineFunc(e.Name, e.Func, e.Sig.Params, e.Sig.Results); err != nil {
			v.report("failed to define API: ", err)
			return nil, errors.HostBinding(e.Name, err)
		}
	}

	hostMod, err := linker.Instantiate(ctx)
	if err != nil {
		v.report("failed to define API: ", err)
		return nil, errors.HostBinding(hostapi.Namespace, err)
	}
	undo.Add(hostMod.Close)

	// Link and run start-up code. A missing import and a trap inside
	// the start function both land here.
	instance, err := store.Runtime().InstantiateModule(ctx, compiled, engine.GuestConfig())
	if err != nil {
		diag := v.report("failed to new instance: ", err)
		return nil, errors.Instantiation(diag, err)
	}

	plugin := &Plugin{
		vm:       v,
		store:    store,
		compiled: compiled,
		hostMod:  hostMod,
		wasi:     wasiCloser,
		instance: instance,
	}
	undo.Disarm()

	v.log.Info("loaded wasm plugin")
	return plugin, nil
}
