package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusInputParam
	focusSelectTarget
)

// Model is the interactive viewer state. The circuit only ever grows; the
// step cursor selects how many of its gates the state panels reflect.
type Model struct {
	evaluator   *Evaluator
	programName string
	original    *Circuit // restored by ctrl+r
	circuit     *Circuit
	state       *StateVector
	step        int // number of gates applied to state
	cursorQubit int
	compact     bool
	precision   int
	savePath    string
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int

	// Pending gate state
	pendingGate   menuItem
	pendingParams []float64
	paramInput    string
	targetQubit   int
}

// ViewerOptions configures newModel.
type ViewerOptions struct {
	Precision int
	SavePath  string
	Compact   bool
}

func newModel(c *Circuit, ev *Evaluator, opts ViewerOptions) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	if opts.SavePath == "" {
		opts.SavePath = "circuit.qasm"
	}
	name := c.Name
	if name == "" {
		name = "circuit"
	}

	m := Model{
		evaluator:   ev,
		programName: name,
		original:    c.Clone(),
		circuit:     c.Clone(),
		step:        c.Len(),
		precision:   opts.Precision,
		savePath:    opts.SavePath,
		compact:     opts.Compact,
		qasmEditor:  ta,
		focus:       focusCircuit,
	}
	m.recompute()
	m.syncQASM()
	return m
}

// recompute evaluates the circuit up to the step cursor.
func (m *Model) recompute() {
	m.step = min(max(m.step, 0), m.circuit.Len())
	m.state = m.evaluator.EvaluateUpTo(m.circuit, m.step)
}

func (m *Model) syncQASM() {
	qasm := m.circuit.QASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput replaces the circuit with the editor contents when they
// parse. On error the previous circuit stays and the error is shown.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm
	c, err := ParseQASM(qasm)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	c.Name = m.programName
	m.circuit = c
	m.step = c.Len()
	m.cursorQubit = min(m.cursorQubit, max(c.NumQubits()-1, 0))
	m.recompute()
}

// appendGate builds the pending gate on the given qubits and appends it.
// Returns false when the circuit rejected it; the circuit is then unchanged.
func (m *Model) appendGate(qubits []int) bool {
	item := m.pendingGate
	params := m.pendingParams
	m.pendingGate = menuItem{}
	m.pendingParams = nil
	m.paramInput = ""

	g, err := buildGate(item.mnemonic, params, qubits)
	if err == nil {
		err = m.circuit.Add(g)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot append: %v", err)
		return false
	}
	m.step = m.circuit.Len()
	m.recompute()
	m.syncQASM()
	m.statusMsg = "Appended " + g.String()
	return true
}

// beginTargetSelection moves to target selection, or reports that the
// register is too small.
func (m *Model) beginTargetSelection() {
	if m.circuit.NumQubits() < 2 {
		m.statusMsg = fmt.Sprintf("%s needs at least 2 qubits", m.pendingGate.name)
		m.focus = focusCircuit
		return
	}
	m.focus = focusSelectTarget
	m.targetQubit = m.cursorQubit + 1
	if m.targetQubit >= m.circuit.NumQubits() {
		m.targetQubit = m.cursorQubit - 1
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
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height/2-8, 4))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus != focusQASM {
			m.statusMsg = ""
		}
		switch m.focus {
		case focusCircuit:
			return m.updateCircuit(msg)
		case focusMenu:
			return m.updateMenu(msg), nil
		case focusInputParam:
			return m.updateParamInput(msg), nil
		case focusSelectTarget:
			return m.updateTargetSelect(msg), nil
		case focusQASM:
			return m.updateQASM(msg)
		}
	}
	return m, nil
}

// setStep moves the step cursor and re-evaluates.
func (m *Model) setStep(step int) {
	m.step = step
	m.recompute()
}

func (m Model) updateCircuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.focus = focusQASM
		return m, m.qasmEditor.Focus()
	case "ctrl+r":
		m.circuit = m.original.Clone()
		m.cursorQubit = min(m.cursorQubit, max(m.circuit.NumQubits()-1, 0))
		m.setStep(m.circuit.Len())
		m.syncQASM()
	case "ctrl+s":
		if err := os.WriteFile(m.savePath, []byte(m.circuit.QASM()), 0o644); err != nil {
			m.statusMsg = fmt.Sprintf("Save error: %v", err)
		} else {
			m.statusMsg = "Saved " + m.savePath
		}
	case "left", "h":
		m.setStep(m.step - 1)
	case "right", "l":
		m.setStep(m.step + 1)
	case "home", "0":
		m.setStep(0)
	case "end", "$":
		m.setStep(m.circuit.Len())
	case "up", "k":
		m.cursorQubit = max(m.cursorQubit-1, 0)
	case "down", "j":
		m.cursorQubit = min(m.cursorQubit+1, max(m.circuit.NumQubits()-1, 0))
	case "c":
		m.compact = !m.compact
	case "a":
		m.focus = focusMenu
		m.menuCat, m.menuItem = 0, 0
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) Model {
	items := gateMenu[m.menuCat].items
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		m.menuItem = max(m.menuItem-1, 0)
	case "down", "j":
		m.menuItem = min(m.menuItem+1, len(items)-1)
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat, m.menuItem = m.menuCat-1, 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat, m.menuItem = m.menuCat+1, 0
		}
	case "enter":
		m.pendingGate = items[m.menuItem]
		m.pendingParams = nil
		switch {
		case m.pendingGate.needsParams:
			m.paramInput = ""
			m.focus = focusInputParam
		case m.pendingGate.needsTarget:
			m.beginTargetSelection()
		default:
			m.appendGate([]int{m.cursorQubit})
			m.focus = focusCircuit
		}
	}
	return m
}

// isAngleKey reports whether key can appear in an angle expression.
func isAngleKey(key string) bool {
	return len(key) == 1 && strings.ContainsAny(key, "0123456789.-+eEpi*/")
}

func (m Model) updateParamInput(msg tea.KeyMsg) Model {
	switch key := msg.String(); key {
	case "esc":
		m.focus = focusCircuit
		m.paramInput = ""
		m.pendingGate = menuItem{}
	case "backspace":
		if len(m.paramInput) > 0 {
			m.paramInput = m.paramInput[:len(m.paramInput)-1]
		}
	case "enter":
		theta, err := ParseAngle(m.paramInput)
		if err != nil {
			m.statusMsg = err.Error()
			return m
		}
		m.pendingParams = []float64{theta}
		if m.pendingGate.needsTarget {
			m.beginTargetSelection()
			return m
		}
		m.appendGate([]int{m.cursorQubit})
		m.focus = focusCircuit
	default:
		if isAngleKey(key) {
			m.paramInput += key
		}
	}
	return m
}

func (m Model) updateTargetSelect(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
		m.pendingGate = menuItem{}
		m.pendingParams = nil
	case "up", "k":
		m.targetQubit = max(m.targetQubit-1, 0)
	case "down", "j":
		m.targetQubit = min(m.targetQubit+1, m.circuit.NumQubits()-1)
	case "enter":
		m.appendGate([]int{m.cursorQubit, m.targetQubit})
		m.focus = focusCircuit
	}
	return m
}

func (m Model) updateQASM(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.focus = focusCircuit
		m.qasmEditor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.qasmEditor, cmd = m.qasmEditor.Update(msg)
	m.parseQASMInput()
	return m, cmd
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	bodyHeight := max(m.height-controlsHeight-2, 12)
	circuitHeight := bodyHeight / 2
	blochHeight := m.circuit.NumQubits() + 3
	stateHeight := max(bodyHeight-circuitHeight-blochHeight-4, 3)

	circuitPanel := m.renderCircuitPanel(leftWidth, circuitHeight)
	statePanel := m.renderStatePanel(leftWidth, stateHeight)
	blochPanel := m.renderBlochPanel(leftWidth, blochHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, bodyHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	left := lipgloss.JoinVertical(lipgloss.Left, circuitPanel, statePanel, blochPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, left, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
