package engine

import (
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
)

// GuestConfig builds the capability configuration applied to a guest
// instance: the host process's argv, environment and stdio are
// inherited, matching what a plugin running in-process is entitled to
// see. The instance itself is anonymous so parallel loads of the same
// module never collide on name.
func GuestConfig() wazero.ModuleConfig {
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs(os.Args...).
		WithStdin(os.Stdin).
		WithStdout(os.Stdout).
		WithStderr(os.Stderr)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			cfg = cfg.WithEnv(k, v)
		}
	}

	return cfg
}
