package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-vm/vm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	vm       *vm.VM
	plugin   *vm.Plugin
	logger   *zap.Logger
	filename string
	result   string
	funcs    []vm.ExportInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(filename string, logger *zap.Logger) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		logger:   logger,
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err    error
	vm     *vm.VM
	plugin *vm.Plugin
	funcs  []vm.ExportInfo
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadPlugin
}

func (m *interactiveModel) loadPlugin() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	v, err := vm.New(ctx, vm.WithLogger(m.logger))
	if err != nil {
		return loadedMsg{err: err}
	}

	reg, err := demoRegistry()
	if err != nil {
		v.Close(ctx)
		return loadedMsg{err: err}
	}

	plugin, err := v.Load(ctx, data, reg)
	if err != nil {
		v.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{vm: v, plugin: plugin, funcs: plugin.Exports()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			ctx := context.Background()
			if m.plugin != nil {
				m.plugin.Close(ctx)
			}
			if m.vm != nil {
				m.vm.Close(ctx)
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) == 0 {
					break
				}
				f := m.funcs[m.selected]
				if !callable(f) {
					m.result = ""
					m.err = fmt.Errorf("%s: only () and (i32, i32) signatures with at most one i32 result can be called here", f.Name)
					m.state = stateShowResult
					break
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.vm = msg.vm
		m.plugin = msg.plugin
		m.funcs = msg.funcs

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// callable reports whether the export fits the adapter's supported
// call shapes: no params or an i32 pair, and at most one i32 result.
func callable(f vm.ExportInfo) bool {
	switch len(f.Params) {
	case 0:
	case 2:
		if f.Params[0] != api.ValueTypeI32 || f.Params[1] != api.ValueTypeI32 {
			return false
		}
	default:
		return false
	}
	if len(f.Results) > 1 {
		return false
	}
	return len(f.Results) == 0 || f.Results[0] == api.ValueTypeI32
}

func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, len(f.Params))
	for i := range f.Params {
		ti := textinput.New()
		ti.Placeholder = "i32"
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	ctx := context.Background()

	if m.plugin == nil {
		return callResultMsg{err: fmt.Errorf("module not loaded")}
	}

	f := m.funcs[m.selected]
	params := vm.Void()
	if len(m.inputs) == 2 {
		a, err := strconv.ParseInt(strings.TrimSpace(m.inputs[0].Value()), 10, 32)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg0: %w", err)}
		}
		b, err := strconv.ParseInt(strings.TrimSpace(m.inputs[1].Value()), 10, 32)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg1: %w", err)}
		}
		params = vm.I32Pair(int32(a), int32(b))
	}

	wantResult := len(f.Results) == 1
	status, err := m.plugin.Call(ctx, f.Name, params, wantResult)
	if err != nil {
		return callResultMsg{err: err}
	}

	if !wantResult {
		return callResultMsg{result: "ok"}
	}
	return callResultMsg{result: strconv.FormatInt(int64(status), 10)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.plugin == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM VM"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		if len(m.funcs) == 0 {
			b.WriteString("Module has no exported functions.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			line := m.formatFunc(f)
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + line))
			} else {
				b.WriteString(cursor + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.Name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render("i32"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(f vm.ExportInfo) string {
	var params []string
	for i, p := range f.Params {
		params = append(params, fmt.Sprintf("arg%d: %s", i, typeStyle.Render(api.ValueTypeName(p))))
	}
	result := ""
	if len(f.Results) > 0 {
		var results []string
		for _, r := range f.Results {
			results = append(results, typeStyle.Render(api.ValueTypeName(r)))
		}
		result = " -> " + strings.Join(results, ", ")
	}
	line := funcStyle.Render(f.Name) + "(" + strings.Join(params, ", ") + ")" + result
	if !callable(f) {
		line += dimStyle.Render("  (not callable here)")
	}
	return line
}

func runInteractive(filename string, logger *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(filename, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
