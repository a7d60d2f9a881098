package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	mnemonic    string // QASM mnemonic passed to buildGate
	symbol      string
	needsTarget bool
	needsParams bool
	paramHint   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", mnemonic: "h", symbol: "H"},
			{name: "Pauli-X (NOT)", mnemonic: "x", symbol: "X"},
			{name: "Pauli-Y", mnemonic: "y", symbol: "Y"},
			{name: "Pauli-Z", mnemonic: "z", symbol: "Z"},
			{name: "Identity", mnemonic: "id", symbol: "I"},
			{name: "Phase (S)", mnemonic: "s", symbol: "S"},
			{name: "Phase Dagger (S†)", mnemonic: "sdg", symbol: "S†"},
			{name: "T Gate", mnemonic: "t", symbol: "T"},
			{name: "T Dagger (T†)", mnemonic: "tdg", symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", mnemonic: "rx", symbol: "RX", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Y", mnemonic: "ry", symbol: "RY", needsParams: true, paramHint: "pi/2"},
			{name: "Rotate Z", mnemonic: "rz", symbol: "RZ", needsParams: true, paramHint: "pi/4"},
		},
	},
	{
		name: "Controlled",
		items: []menuItem{
			{name: "CNOT", mnemonic: "cx", symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Y", mnemonic: "cy", symbol: "●─Y", needsTarget: true},
			{name: "Controlled-Z", mnemonic: "cz", symbol: "●─●", needsTarget: true},
			{name: "Controlled-H", mnemonic: "ch", symbol: "●─H", needsTarget: true},
			{name: "C-Rotate X", mnemonic: "crx", symbol: "●─RX", needsTarget: true, needsParams: true, paramHint: "pi/2"},
			{name: "C-Rotate Y", mnemonic: "cry", symbol: "●─RY", needsTarget: true, needsParams: true, paramHint: "pi/2"},
			{name: "C-Rotate Z", mnemonic: "crz", symbol: "●─RZ", needsTarget: true, needsParams: true, paramHint: "pi/2"},
		},
	},
}

// preview returns the statement the selected item would append from the
// current cursor, with "θ" standing in for a pending angle.
func (m Model) preview(item menuItem) string {
	name := item.mnemonic
	if item.needsParams {
		name += "(θ)"
	}
	if item.needsTarget {
		return fmt.Sprintf("%s q[%d], q[?]", name, m.cursorQubit)
	}
	return fmt.Sprintf("%s q[%d]", name, m.cursorQubit)
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Append Gate"))
	sb.WriteString("\n")

	tabs := make([]string, len(gateMenu))
	for i, cat := range gateMenu {
		tab := dimStyle
		if i == m.menuCat {
			tab = activeGateStyle
		}
		tabs[i] = tab.Render(" " + cat.name + " ")
	}
	sb.WriteString(strings.Join(tabs, dimStyle.Render("│")))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	tooSmall := m.circuit.NumQubits() < 2
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		label := fmt.Sprintf("%-18s", item.name)
		switch {
		case item.needsTarget && tooSmall:
			sb.WriteString("   " + dimStyle.Render(label+item.symbol+" (needs 2 qubits)"))
		case i == m.menuItem:
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + label))
			sb.WriteString(gateStyle.Render(item.symbol))
		default:
			sb.WriteString("   " + menuNormalStyle.Render(label))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")
	sb.WriteString(activeGateStyle.Render(m.preview(cat.items[m.menuItem])))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
