package main

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ──────────────────────────── Diagram ────────────────────────────

// DiagramOptions controls DrawCircuit.
type DiagramOptions struct {
	Highlight int  // gate index to mark, -1 for none
	Compact   bool // share columns between gates on disjoint wires
	Styled    bool // apply lipgloss styles
}

type cellKind int

const (
	cellWire cellKind = iota
	cellGate
	cellControl
	cellPassThrough
)

type diagramCell struct {
	sym       string
	kind      cellKind
	gateIndex int
}

// padCenter centres s within width using fill on both sides.
func padCenter(s string, width int, fill string) string {
	w := utf8.RuneCountInString(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, width-w-left)
}

// gateBox returns the boxed label drawn on a gate's target wire.
func gateBox(g Gate) string {
	return "┤" + g.Label() + "├"
}

// targetSymbol returns what a gate draws on its target wire.
func targetSymbol(g Gate) string {
	if g.Kind != Controlled {
		return gateBox(g)
	}
	switch g.Name {
	case "x":
		return "⊕"
	case "z":
		return "●"
	default:
		return gateBox(g)
	}
}

// controlSymbol returns the wire symbol for the control qubit.
func controlSymbol(Gate) string {
	return "●"
}

// span returns the lowest and highest wire a gate's drawing covers.
func span(g Gate) (lo, hi int) {
	if g.Kind == Controlled {
		return min(g.Control, g.Target), max(g.Control, g.Target)
	}
	return g.Target, g.Target
}

// diagramColumns assigns every gate a column. In compact mode a gate goes to
// the first column at or after its DAG layer whose span is free.
func diagramColumns(c *Circuit, compact bool) []int {
	cols := make([]int, c.Len())
	if !compact {
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	var occupied [][]bool
	for _, node := range NewCircuitDAG(c).Nodes {
		lo, hi := span(node.Gate)
		col := node.Layer
		for _, dep := range node.Dependencies {
			col = max(col, cols[dep]+1)
		}
		for ; ; col++ {
			for len(occupied) <= col {
				occupied = append(occupied, make([]bool, c.NumQubits()))
			}
			free := true
			for q := lo; q <= hi; q++ {
				if occupied[col][q] {
					free = false
					break
				}
			}
			if free {
				break
			}
		}
		for q := lo; q <= hi; q++ {
			occupied[col][q] = true
		}
		cols[node.Index] = col
	}
	return cols
}

// DrawCircuit renders c as a text diagram with qubit 0 on top.
func DrawCircuit(c *Circuit, opts DiagramOptions) string {
	n := c.NumQubits()
	if n == 0 {
		return "(empty register)\n"
	}
	cols := diagramColumns(c, opts.Compact)
	numCols := 0
	for _, col := range cols {
		numCols = max(numCols, col+1)
	}

	wires := make([][]diagramCell, n)
	for q := range wires {
		wires[q] = make([]diagramCell, numCols)
		for col := range wires[q] {
			wires[q][col] = diagramCell{sym: "─", kind: cellWire, gateIndex: -1}
		}
	}
	// links[q][col] is set when a vertical line joins wire q to q+1.
	links := make([][]int, max(n-1, 0))
	for q := range links {
		links[q] = make([]int, numCols)
		for col := range links[q] {
			links[q][col] = -1
		}
	}
	widths := make([]int, numCols)
	for i := range widths {
		widths[i] = 3
	}

	for i, g := range c.ops {
		col := cols[i]
		lo, hi := span(g)
		for q := lo; q <= hi; q++ {
			cell := diagramCell{sym: "┼", kind: cellPassThrough, gateIndex: i}
			switch {
			case q == g.Target:
				cell = diagramCell{sym: targetSymbol(g), kind: cellGate, gateIndex: i}
			case g.Kind == Controlled && q == g.Control:
				cell = diagramCell{sym: controlSymbol(g), kind: cellControl, gateIndex: i}
			}
			wires[q][col] = cell
			widths[col] = max(widths[col], utf8.RuneCountInString(cell.sym)+2)
			if q < hi {
				links[q][col] = i
			}
		}
	}

	style := func(st lipgloss.Style, s string, gateIndex int) string {
		if !opts.Styled {
			return s
		}
		if gateIndex >= 0 && gateIndex == opts.Highlight {
			st = cursorBoxStyle
		}
		return st.Render(s)
	}

	var sb strings.Builder
	if opts.Highlight >= 0 && opts.Highlight < len(cols) {
		header := strings.Repeat(" ", labelVisualW+1)
		for col := range numCols {
			mark := " "
			if col == cols[opts.Highlight] {
				mark = "▼"
			}
			header += padCenter(mark, widths[col], " ") + " "
		}
		sb.WriteString(style(cursorBoxStyle, strings.TrimRight(header, " "), -1) + "\n")
	}

	for q := range n {
		label := fmt.Sprintf("%-*s", labelVisualW, fmt.Sprintf("q[%d]", q))
		line := style(qubitLabelStyle, label, -1) + "─"
		for col := range numCols {
			cell := wires[q][col]
			w := utf8.RuneCountInString(cell.sym)
			left := (widths[col] - w) / 2
			right := widths[col] - w - left
			symStyle := gateStyle
			if cell.kind == cellWire || cell.kind == cellPassThrough {
				symStyle = wireStyle
			}
			line += strings.Repeat("─", left) + style(symStyle, cell.sym, cell.gateIndex) + strings.Repeat("─", right) + "─"
		}
		sb.WriteString(line + "\n")

		if q == n-1 {
			break
		}
		conn := strings.Repeat(" ", labelVisualW+1)
		for col := range numCols {
			if gi := links[q][col]; gi >= 0 {
				conn += style(wireStyle, padCenter("│", widths[col], " "), gi) + " "
			} else {
				conn += strings.Repeat(" ", widths[col]+1)
			}
		}
		sb.WriteString(strings.TrimRight(conn, " ") + "\n")
	}
	return sb.String()
}

// ──────────────────────────── Panels ────────────────────────────

// renderCircuitPanel renders the diagram with the current step marked.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := fmt.Sprintf("Circuit: %s", m.programName)
	if m.focus == focusCircuit {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	highlight := m.step - 1
	sb.WriteString(DrawCircuit(m.circuit, DiagramOptions{Highlight: highlight, Compact: m.compact, Styled: true}))

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Step %d/%d", m.step, m.circuit.Len())
	if m.step > 0 {
		fmt.Fprintf(&sb, "  last: %s", activeGateStyle.Render(m.circuit.Op(m.step-1).String()))
	}
	fmt.Fprintf(&sb, "  │  Qubit %s", qubitLabelStyle.Render(fmt.Sprintf("q[%d]", m.cursorQubit)))
	if m.focus == focusSelectTarget {
		fmt.Fprintf(&sb, "\n  %s  control %s  target %s",
			activeGateStyle.Render(m.pendingGate.name),
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", m.cursorQubit)),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	}
	if m.focus == focusInputParam {
		fmt.Fprintf(&sb, "\n  %s angle: %s", activeGateStyle.Render(m.pendingGate.name), m.paramInput)
		sb.WriteString(cursorBoxStyle.Render("█"))
		sb.WriteString(dimStyle.Render(fmt.Sprintf("   e.g. %s  Enter Confirm  Esc Cancel", m.pendingGate.paramHint)))
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "\n  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel renders amplitudes and probability bars for the current step.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("State Vector"))
	sb.WriteString("\n\n")

	probs := m.state.Probabilities()
	barMax := max(width-40, 5)
	for i := range m.state.Len() {
		a := m.state.Amplitude(i)
		bar := strings.Repeat("█", barLen(probs[i], barMax))
		line := fmt.Sprintf("%s  %+.*f%+.*fj  %.*f ", m.state.BasisLabel(i),
			m.precision, real(a), m.precision, imag(a), m.precision, probs[i])
		if probs[i] < 1e-12 {
			sb.WriteString(dimStyle.Render(line) + "\n")
			continue
		}
		sb.WriteString(line + probBarStyle.Render(bar) + "\n")
	}
	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderBlochPanel renders one Bloch vector per qubit.
func (m Model) renderBlochPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Bloch Vectors"))
	sb.WriteString("\n\n")
	marginals := m.state.QubitProbabilities()
	for q, b := range m.state.BlochVectors() {
		theta, phi := b.Spherical()
		line := fmt.Sprintf("q[%d]  x=%+.*f y=%+.*f z=%+.*f  θ=%s φ=%s  |r|=%.*f", q,
			m.precision, b.X, m.precision, b.Y, m.precision, b.Z,
			FormatAngle(roundTo(theta, m.precision)), FormatAngle(roundTo(phi, m.precision)),
			m.precision, b.Length())
		line += fmt.Sprintf("  P(1)=%.*f", m.precision, marginals[q].Prob1)
		if q == m.cursorQubit {
			gates := len(NewCircuitDAG(m.circuit).GetNodesOnQubit(q))
			line += fmt.Sprintf("  %d gates", gates)
			sb.WriteString(menuSelectedStyle.Render("▸ "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return blochStyle.Width(width).Height(height).Render(sb.String())
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Step  Home/End First/Last  ↑↓/jk Qubit  c Compact")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Append gate\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Edit QASM  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites overlay on top of bg with its top-left corner at (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of bgLine starting at x with
// overlay, keeping escape sequences on both sides intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(prefix); w < x {
		prefix += strings.Repeat(" ", x-w)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
