package vm

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-vm/errors"
)

// Call invokes the named export with the given parameter shape.
//
// A missing export is not an error: embedders probe for optional
// lifecycle hooks a guest may not implement, so the call is logged at
// debug level and reported as success. When expectResult is true, the
// export's single i32 result is returned; it doubles as the guest's
// status code and is not interpreted here.
//
// Engine errors and guest traps surface as CallFailed after their
// diagnostic has been logged; the plugin stays usable for subsequent
// calls.
func (p *Plugin) Call(ctx context.Context, name string, params Params, expectResult bool) (int32, error) {
	if p.closed.Load() {
		return 0, errors.CallFailed(name, "plugin is unloaded", nil)
	}

	p.vm.log.Debug("wasm call function", zap.String("name", name))

	fn := p.instance.ExportedFunction(name)
	if fn == nil {
		p.vm.log.Debug("wasm function not defined", zap.String("name", name))
		return 0, nil
	}

	stack, err := params.marshal()
	if err != nil {
		p.vm.log.Error("unknown param shape", zap.String("name", name), zap.Error(err))
		return 0, err
	}

	results, err := fn.Call(ctx, stack...)
	if err != nil {
		diag := p.vm.report("failed to call function: ", err)
		return 0, errors.CallFailed(name, diag, err)
	}

	if !expectResult {
		p.vm.log.Debug("wasm call function done", zap.String("name", name))
		return 0, nil
	}

	resultTypes := fn.Definition().ResultTypes()
	if len(results) == 0 || len(resultTypes) == 0 || resultTypes[0] != api.ValueTypeI32 {
		got := "none"
		if len(resultTypes) > 0 {
			got = api.ValueTypeName(resultTypes[0])
		}
		return 0, errors.ResultType(name, got)
	}

	rc := api.DecodeI32(results[0])
	p.vm.log.Debug("wasm call function result",
		zap.String("name", name),
		zap.Int32("result", rc))
	return rc, nil
}
