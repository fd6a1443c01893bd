package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-vm/hostapi"
	"github.com/wippyai/wasm-vm/vm"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm module file")
		funcName    = flag.String("func", "", "Exported function to call (optional)")
		argsStr     = flag.String("args", "", "Two i32 arguments, comma-separated (a,b)")
		wantResult  = flag.Bool("result", false, "Expect an i32 status result")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose adapter logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm <file.wasm> [-func name] [-args a,b] [-result]")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcName, *argsStr, *wantResult, *list, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// demoRegistry exposes env.host_log(ptr, len): the guest hands over a
// memory range and the host writes it to stderr.
func demoRegistry() (*hostapi.Registry, error) {
	return hostapi.NewRegistry(hostapi.Entry{
		Name: "host_log",
		Sig:  hostapi.SigI32I32(),
		Func: func(_ context.Context, mod api.Module, stack []uint64) {
			ptr := uint32(api.DecodeI32(stack[0]))
			n := uint32(api.DecodeI32(stack[1]))
			data, ok := mod.Memory().Read(ptr, n)
			if !ok {
				fmt.Fprintf(os.Stderr, "[guest] host_log out of range: ptr=%d len=%d\n", ptr, n)
				return
			}
			fmt.Fprintf(os.Stderr, "[guest] %s\n", data)
		},
	})
}

func parseParams(argsStr string) (vm.Params, error) {
	if argsStr == "" {
		return vm.Void(), nil
	}
	parts := strings.Split(argsStr, ",")
	if len(parts) != 2 {
		return vm.Params{}, fmt.Errorf("want two comma-separated i32 values, got %q", argsStr)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return vm.Params{}, fmt.Errorf("first argument: %w", err)
	}
	b, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return vm.Params{}, fmt.Errorf("second argument: %w", err)
	}
	return vm.I32Pair(int32(a), int32(b)), nil
}

func run(wasmFile, funcName, argsStr string, wantResult, listOnly bool, logger *zap.Logger) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	v, err := vm.New(ctx, vm.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create vm: %w", err)
	}
	defer v.Close(ctx)

	reg, err := demoRegistry()
	if err != nil {
		return fmt.Errorf("host registry: %w", err)
	}

	plugin, err := v.Load(ctx, data, reg)
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}
	defer plugin.Close(ctx)

	exports := plugin.Exports()
	fmt.Printf("Module: %s\n", wasmFile)
	fmt.Printf("\nExported functions:\n")
	for _, e := range exports {
		fmt.Printf("  %s\n", e.Signature())
	}

	if listOnly {
		return nil
	}

	// Without -func, try common entry points before giving up.
	if funcName == "" {
		for _, candidate := range []string{"run", "main", "on_request"} {
			for _, e := range exports {
				if e.Name == candidate {
					funcName = candidate
					break
				}
			}
			if funcName != "" {
				break
			}
		}
		if funcName == "" && len(exports) == 1 {
			funcName = exports[0].Name
		}
		if funcName == "" {
			fmt.Printf("\nNo function specified and no common entry point found.\n")
			fmt.Printf("Use -func to specify a function to call.\n")
			return nil
		}
	}

	params, err := parseParams(argsStr)
	if err != nil {
		return err
	}

	fmt.Printf("\nCalling %s...\n", funcName)
	status, err := plugin.Call(ctx, funcName, params, wantResult)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}

	if wantResult {
		fmt.Printf("Status: %d\n", status)
	} else {
		fmt.Println("OK")
	}
	return nil
}
