package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+(\w+)\s*\[\s*(\d+)\s*\]\s*;?$`)
	gateRegex    = regexp.MustCompile(`^([a-z][a-z0-9]*)\s*(?:\(([^)]*)\))?\s+(.+?)\s*;?$`)
	operandRegex = regexp.MustCompile(`^(\w+)\s*\[\s*(\d+)\s*\]$`)
)

// ParseError reports a QASM line that could not be turned into a gate.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("qasm line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("qasm line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrUnknownGate is wrapped by ParseError for mnemonics outside the gate catalog.
var ErrUnknownGate = errors.New("unknown gate")

// singleQubitGates maps QASM mnemonics to gate constructors. params has
// already been checked against arity.
var singleQubitGates = map[string]struct {
	arity int
	build func(q int, params []float64) Gate
}{
	"id":  {0, func(q int, _ []float64) Gate { return Identity(q) }},
	"h":   {0, func(q int, _ []float64) Gate { return Hadamard(q) }},
	"x":   {0, func(q int, _ []float64) Gate { return PauliX(q) }},
	"y":   {0, func(q int, _ []float64) Gate { return PauliY(q) }},
	"z":   {0, func(q int, _ []float64) Gate { return PauliZ(q) }},
	"s":   {0, func(q int, _ []float64) Gate { return Phase(q, false) }},
	"sdg": {0, func(q int, _ []float64) Gate { return Phase(q, true) }},
	"t":   {0, func(q int, _ []float64) Gate { return TGate(q, false) }},
	"tdg": {0, func(q int, _ []float64) Gate { return TGate(q, true) }},
	"rx":  {1, func(q int, p []float64) Gate { return RX(p[0], q) }},
	"ry":  {1, func(q int, p []float64) Gate { return RY(p[0], q) }},
	"rz":  {1, func(q int, p []float64) Gate { return RZ(p[0], q) }},
}

// ignoredStatements are accepted but have no effect on the state vector.
var ignoredStatements = []string{"OPENQASM", "include", "creg", "barrier", "measure"}

// QASM renders the circuit as an OpenQASM 2.0 program.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	if c.Name != "" {
		fmt.Fprintf(&sb, "// %s\n", c.Name)
	}
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.numQubits)
	for _, g := range c.ops {
		sb.WriteString(g.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}

// ParseQASM builds a circuit from OpenQASM 2.0 text. Only a single quantum
// register is supported and it must be declared before the first gate.
func ParseQASM(qasm string) (*Circuit, error) {
	var (
		c       *Circuit
		regName string
	)

	for idx, raw := range strings.Split(qasm, "\n") {
		lineNo := idx + 1
		line := raw
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || isIgnoredStatement(line) {
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			if c != nil {
				return nil, &ParseError{Line: lineNo, Msg: "only one qreg is supported"}
			}
			n, _ := strconv.Atoi(m[2])
			circuit, err := NewCircuit(n)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: "bad qreg", Err: err}
			}
			c, regName = circuit, m[1]
			continue
		}

		m := gateRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("cannot parse %q", line)}
		}
		if c == nil {
			return nil, &ParseError{Line: lineNo, Msg: "gate before qreg declaration"}
		}

		qubits, err := parseOperands(m[3], regName)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "bad operands", Err: err}
		}
		params, err := parseAngleList(m[2])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "bad parameter", Err: err}
		}
		g, err := buildGate(m[1], params, qubits)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: m[1], Err: err}
		}
		if err := c.Add(g); err != nil {
			return nil, &ParseError{Line: lineNo, Msg: "rejected gate", Err: err}
		}
	}

	if c == nil {
		return nil, &ParseError{Line: 0, Msg: "missing qreg declaration"}
	}
	return c, nil
}

func isIgnoredStatement(line string) bool {
	for _, prefix := range ignoredStatements {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// parseOperands reads "q[0], q[1]" into qubit indices.
func parseOperands(s, regName string) ([]int, error) {
	var qubits []int
	for _, part := range strings.Split(s, ",") {
		m := operandRegex.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, fmt.Errorf("cannot parse operand %q", part)
		}
		if m[1] != regName {
			return nil, fmt.Errorf("unknown register %q", m[1])
		}
		q, _ := strconv.Atoi(m[2])
		qubits = append(qubits, q)
	}
	return qubits, nil
}

// parseAngleList parses a comma separated list of angles. An empty list is
// valid and yields nil.
func parseAngleList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var params []float64
	for _, part := range strings.Split(s, ",") {
		val, err := ParseAngle(part)
		if err != nil {
			return nil, err
		}
		params = append(params, val)
	}
	return params, nil
}

// buildGate maps a mnemonic, its parameters and operands to a Gate. A
// leading "c" on a known single-qubit mnemonic makes it controlled.
func buildGate(name string, params []float64, qubits []int) (Gate, error) {
	if def, ok := singleQubitGates[name]; ok {
		if len(qubits) != 1 {
			return Gate{}, fmt.Errorf("takes 1 qubit, got %d", len(qubits))
		}
		if len(params) != def.arity {
			return Gate{}, fmt.Errorf("takes %d parameters, got %d", def.arity, len(params))
		}
		return def.build(qubits[0], params), nil
	}
	if base, ok := strings.CutPrefix(name, "c"); ok {
		if def, ok := singleQubitGates[base]; ok && base != "id" {
			if len(qubits) != 2 {
				return Gate{}, fmt.Errorf("takes 2 qubits, got %d", len(qubits))
			}
			if len(params) != def.arity {
				return Gate{}, fmt.Errorf("takes %d parameters, got %d", def.arity, len(params))
			}
			return ControlledBy(qubits[0], def.build(qubits[1], params)), nil
		}
	}
	return Gate{}, ErrUnknownGate
}
