package vm

import (
	"sort"
	"strings"

	"github.com/tetratelabs/wazero/api"
)

// ExportInfo describes one exported function of a loaded plugin.
type ExportInfo struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// Signature renders the export's wasm-level signature, e.g.
// "add(i32, i32) -> i32".
func (e ExportInfo) Signature() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('(')
	for i, p := range e.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteByte(')')
	if len(e.Results) > 0 {
		b.WriteString(" -> ")
		for i, r := range e.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(api.ValueTypeName(r))
		}
	}
	return b.String()
}

// Exports returns the plugin's exported functions sorted by name.
func (p *Plugin) Exports() []ExportInfo {
	if p == nil || p.closed.Load() {
		return nil
	}

	defs := p.instance.ExportedFunctionDefinitions()
	exports := make([]ExportInfo, 0, len(defs))
	for name, def := range defs {
		exports = append(exports, ExportInfo{
			Name:    name,
			Params:  def.ParamTypes(),
			Results: def.ResultTypes(),
		})
	}
	sort.Slice(exports, func(i, j int) bool { return exports[i].Name < exports[j].Name })
	return exports
}
