package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/vm"
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

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "call static methods interactively",
		Action: func(c *cli.Context) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("inspect needs a terminal; use call instead")
			}
			s, err := start(c)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.env.GetVersion()
			if err != nil {
				return err
			}
			title := fmt.Sprintf("JNI %s", v)
			p := tea.NewProgram(newInspectModel(s.vm, title), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

const (
	fieldClass = iota
	fieldMethod
	fieldSignature
	fieldArgs
	numFields
)

type modelState int

const (
	stateInput modelState = iota
	stateShowResult
)

type historyEntry struct {
	call   string
	result string
	err    error
}

type inspectModel struct {
	vm       *vm.VM
	title    string
	inputs   []textinput.Model
	focusIdx int
	plan     string
	history  []historyEntry
	state    modelState
}

type callResultMsg struct {
	entry historyEntry
}

func newInspectModel(machine *vm.VM, title string) *inspectModel {
	m := &inspectModel{vm: machine, title: title, state: stateInput}
	m.inputs = make([]textinput.Model, numFields)
	for i, field := range []struct{ prompt, placeholder string }{
		{"class: ", "java/lang/Integer"},
		{"method: ", "parseInt"},
		{"signature: ", "(Ljava/lang/String;)I"},
		{"args: ", "42"},
	} {
		ti := textinput.New()
		ti.Prompt = field.prompt
		ti.Placeholder = field.placeholder
		ti.Width = 48
		m.inputs[i] = ti
	}
	m.inputs[fieldClass].Focus()
	return m
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "tab", "down":
			if m.state == stateInput {
				m.focus((m.focusIdx + 1) % numFields)
				return m, nil
			}

		case "shift+tab", "up":
			if m.state == stateInput {
				m.focus((m.focusIdx + numFields - 1) % numFields)
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateInput:
				return m, m.call
			case stateShowResult:
				m.state = stateInput
				return m, nil
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInput
				return m, nil
			}
		}

	case callResultMsg:
		m.history = append(m.history, msg.entry)
		m.state = stateShowResult
		return m, nil
	}

	if m.state != stateInput {
		return m, nil
	}
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.plan = ""
	if sig := m.inputs[fieldSignature].Value(); sig != "" {
		if plan, err := signature.Parse(sig); err == nil {
			m.plan = plan.String()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *inspectModel) focus(i int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = i
	m.inputs[m.focusIdx].Focus()
}

// call runs on a tea goroutine, so it attaches that thread for the call.
func (m *inspectModel) call() tea.Msg {
	class := m.inputs[fieldClass].Value()
	method := m.inputs[fieldMethod].Value()
	sig := m.inputs[fieldSignature].Value()
	args := strings.Fields(m.inputs[fieldArgs].Value())

	entry := historyEntry{call: fmt.Sprintf("%s.%s%s(%s)", class, method, sig, strings.Join(args, ", "))}
	entry.err = m.vm.Do(func(e *env.Env) error {
		var err error
		entry.result, err = callStatic(e, class, method, sig, args)
		return err
	})
	return callResultMsg{entry: entry}
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("JNI Runner"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString("Call a static method:\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		if m.plan != "" {
			b.WriteString("\n")
			b.WriteString(typeStyle.Render(m.plan))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • ctrl+c quit"))

	case stateShowResult:
		last := m.history[len(m.history)-1]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(last.call)))
		if last.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", last.err)))
		} else {
			b.WriteString(resultStyle.Render(last.result))
		}
		if len(m.history) > 1 {
			b.WriteString("\n\nEarlier:\n")
			for i := len(m.history) - 2; i >= 0 && i >= len(m.history)-6; i-- {
				h := m.history[i]
				line := h.result
				if h.err != nil {
					line = "error"
				}
				b.WriteString(fmt.Sprintf("  %s = %s\n", h.call, line))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}
