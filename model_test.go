package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m
}

func bellModel(t *testing.T) Model {
	t.Helper()
	p, err := LookupProgram("bell")
	require.NoError(t, err)
	c, err := p.Build(DefaultProgramOptions())
	require.NoError(t, err)
	return newModel(c, NewEvaluator(), ViewerOptions{
		Precision: 3,
		SavePath:  filepath.Join(t.TempDir(), "out.qasm"),
	})
}

func TestModelStartsAtLastStep(t *testing.T) {
	m := bellModel(t)
	assert.Equal(t, 2, m.step)
	assert.Equal(t, "bell", m.programName)
	assert.Equal(t, m.circuit.QASM(), m.qasmEditor.Value())
	assertAmplitudes(t, NewEvaluator().Evaluate(m.circuit).Amplitudes(), m.state)
}

func TestModelStepping(t *testing.T) {
	m := bellModel(t)
	ev := NewEvaluator()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.step)
	assertAmplitudes(t, ev.EvaluateUpTo(m.circuit, 1).Amplitudes(), m.state)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyHome}, runes("h"))
	assert.Equal(t, 0, m.step, "step must not go below zero")
	assertAmplitudes(t, []complex128{1, 0, 0, 0}, m.state)

	m = press(t, m, runes("l"), runes("l"), runes("l"))
	assert.Equal(t, 2, m.step, "step must not go past the last gate")

	m = press(t, m, runes("0"), tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 2, m.step)
}

func TestModelQubitCursorAndCompact(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 1, m.cursorQubit)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursorQubit)

	m = press(t, m, runes("c"))
	assert.True(t, m.compact)
}

func TestModelAppendSingleQubitGate(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("j"), runes("a"))
	require.Equal(t, focusMenu, m.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusCircuit, m.focus)
	require.Equal(t, 3, m.circuit.Len())
	assert.Equal(t, "x q[1]", m.circuit.Op(2).String())
	assert.Equal(t, 3, m.step)
	assert.Equal(t, "Appended x q[1]", m.statusMsg)
	assert.Contains(t, m.qasmEditor.Value(), "x q[1];")
	assert.Equal(t, 2, m.original.Len(), "original circuit must not change")
}

func TestModelAppendRotationWithAngle(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusInputParam, m.focus)

	m = press(t, m, runes("p"), runes("i"), runes("/"), runes("x"), runes("3"),
		tea.KeyMsg{Type: tea.KeyBackspace}, runes("2"))
	assert.Equal(t, "pi/2", m.paramInput)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusCircuit, m.focus)
	require.Equal(t, 3, m.circuit.Len())
	assert.Equal(t, "rx(pi/2) q[0]", m.circuit.Op(2).String())
}

func TestModelRejectsBadAngle(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter},
		runes("p"), runes("/"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusInputParam, m.focus)
	assert.Contains(t, m.statusMsg, "bad angle")
	assert.Equal(t, 2, m.circuit.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusCircuit, m.focus)
	assert.Empty(t, m.paramInput)
}

func TestModelAppendControlledGate(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusSelectTarget, m.focus)
	assert.Equal(t, 1, m.targetQubit)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 3, m.circuit.Len())
	assert.Equal(t, "cz q[0], q[1]", m.circuit.Op(2).String())
}

func TestModelRejectsControlOnTarget(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("a"), runes("l"), runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusSelectTarget, m.focus)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusCircuit, m.focus)
	assert.Equal(t, 2, m.circuit.Len(), "rejected gate must leave the circuit unchanged")
	assert.True(t, strings.HasPrefix(m.statusMsg, "Cannot append:"), m.statusMsg)
}

func TestModelControlledGateNeedsTwoQubits(t *testing.T) {
	c := mustCircuit(t, 1, Hadamard(0))
	m := newModel(c, NewEvaluator(), ViewerOptions{})
	assert.Equal(t, "circuit.qasm", m.savePath)

	m = press(t, m, runes("a"), runes("l"), runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusCircuit, m.focus)
	assert.Equal(t, "CNOT needs at least 2 qubits", m.statusMsg)
}

func TestModelResetAndSave(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 3, m.circuit.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "Saved "+m.savePath, m.statusMsg)
	data, err := os.ReadFile(m.savePath)
	require.NoError(t, err)
	assert.Equal(t, m.circuit.QASM(), string(data))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 2, m.circuit.Len())
	assert.Equal(t, 2, m.step)
	assert.Equal(t, m.original.QASM(), m.qasmEditor.Value())
}

func TestModelResetClampsCursorToOriginalRegister(t *testing.T) {
	m := bellModel(t)
	m.qasmEditor.SetValue("qreg q[4];\nh q[3];\n")
	m.parseQASMInput()
	require.Equal(t, 4, m.circuit.NumQubits())

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	require.Equal(t, 3, m.cursorQubit)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 2, m.circuit.NumQubits())
	assert.Equal(t, 1, m.cursorQubit)

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 3, m.circuit.Len())
	assert.Equal(t, "h q[1]", m.circuit.Op(2).String())
	assert.Equal(t, "Appended h q[1]", m.statusMsg)
}

func TestModelBlochPanelShowsMarginals(t *testing.T) {
	m := bellModel(t)
	panel := m.renderBlochPanel(120, 10)
	assert.Contains(t, panel, "P(1)=0.500")
	assert.Contains(t, panel, "2 gates")
}

func TestModelQASMEditing(t *testing.T) {
	m := bellModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusQASM, m.focus)

	m.qasmEditor.SetValue("qreg q[3];\nh q[2];\ncx q[2], q[0];\n")
	m.parseQASMInput()
	assert.Equal(t, 3, m.circuit.NumQubits())
	assert.Equal(t, 2, m.circuit.Len())
	assert.Equal(t, 2, m.step)
	assert.Equal(t, "bell", m.circuit.Name)

	m.qasmEditor.SetValue("qreg q[3];\nfoo q[2];\n")
	m.parseQASMInput()
	assert.Contains(t, m.statusMsg, "line 2")
	assert.Equal(t, 2, m.circuit.Len(), "parse error keeps the previous circuit")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusCircuit, m.focus)
}

func TestModelView(t *testing.T) {
	m := bellModel(t)
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 44})
	m = next.(Model)
	view := m.View()
	for _, want := range []string{"Circuit: bell", "State Vector", "Bloch Vectors", "QASM Editor", "Step 2/2"} {
		assert.Contains(t, view, want)
	}

	m = press(t, m, runes("a"))
	assert.Contains(t, m.View(), "Append Gate")
	assert.Contains(t, m.renderMenu(), "h q[0]")

	m = press(t, m, runes("l"))
	assert.Contains(t, m.renderMenu(), "rx(θ) q[0]")
	m = press(t, m, runes("l"))
	assert.Contains(t, m.renderMenu(), "cx q[0], q[?]")
}

func TestMenuMarksControlledGatesOnSingleQubit(t *testing.T) {
	m := newModel(mustCircuit(t, 1), NewEvaluator(), ViewerOptions{})
	m = press(t, m, runes("a"), runes("l"), runes("l"))
	assert.Contains(t, m.renderMenu(), "needs 2 qubits")
}

func TestModelQuit(t *testing.T) {
	m := bellModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
