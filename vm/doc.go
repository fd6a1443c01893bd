// Package vm is the host-side adapter the rest of the server talks to:
// initialize the engine, load a module, call exported functions, unload
// the module, shut the engine down. Everything VM-specific — lifecycle,
// host-function binding, call marshaling, trap reporting — stays behind
// this surface.
//
// A VM wraps the process-wide engine. Load turns bytecode plus a host
// API registry into a Plugin; a Plugin is either fully constructed or
// never returned, with every intermediate resource released on the
// failure path. Calls marshal a small closed set of parameter shapes
// (see Params) and surface guest traps as classified errors after the
// diagnostic has been logged.
package vm
