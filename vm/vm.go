package vm

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-vm/engine"
	"github.com/wippyai/wasm-vm/errors"
)

// VM owns the process-wide execution engine. Create one at startup,
// close it at shutdown after every Plugin has been closed; the embedder
// sequences this, typically in single-writer startup/shutdown phases.
type VM struct {
	engine *engine.Engine
	log    *zap.Logger
}

// Option configures a VM.
type Option func(*options)

type options struct {
	log       *zap.Logger
	engineCfg *engine.Config
}

// WithLogger sets the logger for the VM and its plugins. Defaults to a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithEngineConfig overrides the engine configuration.
func WithEngineConfig(cfg engine.Config) Option {
	return func(o *options) {
		o.engineCfg = &cfg
	}
}

// New creates the execution engine. One init/close pair per process.
func New(ctx context.Context, opts ...Option) (*VM, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	o.log.Info("init wasm vm", zap.String("vm", "wazero"))

	eng, err := engine.NewWithConfig(ctx, o.engineCfg)
	if err != nil {
		return nil, errors.EngineInit(err)
	}

	return &VM{engine: eng, log: o.log}, nil
}

// Close destroys the engine. Safe no-op if init never succeeded or
// Close already ran.
func (v *VM) Close(ctx context.Context) error {
	if v == nil || v.engine == nil {
		return nil
	}
	v.log.Info("cleanup wasm vm", zap.String("vm", "wazero"))
	return v.engine.Close(ctx)
}

// Engine exposes the underlying engine, mainly for resource accounting.
func (v *VM) Engine() *engine.Engine {
	return v.engine
}
