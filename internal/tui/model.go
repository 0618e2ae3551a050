package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	qit "github.com/aokyut/Qit"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusStepper focus = iota
	focusEditor
)

// Model represents the TUI application state: a parsed circuit, its
// flattened gate sequence, and the prefix of simulated states up to the
// cursor.
type Model struct {
	src     string
	program *qit.Program
	steps   []qit.Operator
	states  []*qit.Qubits // states[i] is the state after i gates
	cursor  int

	width  int
	height int
	editor textarea.Model
	focus  focus

	parseErr string
}

func newModel(src string) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(16)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		editor: ta,
		focus:  focusStepper,
	}
	m.load(src)
	return m
}

// load re-parses the QASM source and resets the stepper. A parse failure
// keeps the previous circuit and surfaces the error in the view.
func (m *Model) load(src string) {
	m.src = src
	m.editor.SetValue(src)

	prog, err := qit.ParseQASM(src)
	if err != nil {
		m.parseErr = err.Error()
		return
	}
	m.parseErr = ""
	m.program = prog
	m.steps = prog.Circuit.Flatten()
	m.cursor = 0
	m.recompute()
}

// recompute rebuilds the prefix states from |0…0⟩ through the whole gate
// sequence.
func (m *Model) recompute() {
	q, err := qit.Zeros(m.program.Size)
	if err != nil {
		m.parseErr = err.Error()
		return
	}
	m.states = []*qit.Qubits{q}
	for i, step := range m.steps {
		next, err := step.Apply(q.Clone())
		if err != nil {
			m.parseErr = err.Error()
			m.steps = m.steps[:i]
			break
		}
		m.states = append(m.states, next)
		q = next
	}
	if m.cursor >= len(m.states) {
		m.cursor = len(m.states) - 1
	}
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/2-6, 20))
		m.editor.SetHeight(max(msg.Height-10, 4))

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusStepper:
			switch key {
			case "q":
				return m, tea.Quit
			case "right", "l", " ":
				if m.cursor < len(m.states)-1 {
					m.cursor++
				}
			case "left", "h":
				if m.cursor > 0 {
					m.cursor--
				}
			case "g", "home":
				m.cursor = 0
			case "G", "end":
				m.cursor = len(m.states) - 1
			case "e", "tab":
				m.focus = focusEditor
				m.editor.Focus()
			}

		case focusEditor:
			if key == "esc" {
				m.focus = focusStepper
				m.editor.Blur()
				m.load(m.editor.Value())
				return m, nil
			}
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// Run starts the interactive stepper on the given QASM source.
func Run(src string) error {
	p := tea.NewProgram(newModel(src), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
