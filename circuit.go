package main

import (
	"errors"
	"fmt"
)

// MaxQubits bounds the register size. 2^24 amplitudes of complex128 is 256 MiB.
const MaxQubits = 24

var (
	// ErrInvalidQubitIndex is returned when a gate references a qubit outside
	// the circuit's register.
	ErrInvalidQubitIndex = errors.New("invalid qubit index")

	// ErrInvalidQubitCount is returned for registers smaller than zero or
	// larger than MaxQubits.
	ErrInvalidQubitCount = errors.New("invalid qubit count")

	// ErrInvalidGate is returned for gates with an unknown kind or a matrix
	// that is not unitary.
	ErrInvalidGate = errors.New("invalid gate")
)

// QubitIndexError describes why a gate was rejected by Circuit.Add.
type QubitIndexError struct {
	Gate      string
	Qubit     int
	NumQubits int
	SameWire  bool // control and target are the same qubit
}

func (e *QubitIndexError) Error() string {
	if e.SameWire {
		return fmt.Sprintf("%s: control and target are both qubit %d", e.Gate, e.Qubit)
	}
	return fmt.Sprintf("%s: qubit %d out of range [0, %d)", e.Gate, e.Qubit, e.NumQubits)
}

func (e *QubitIndexError) Unwrap() error { return ErrInvalidQubitIndex }

// Circuit is an append-only sequence of gates over a fixed number of qubits.
type Circuit struct {
	Name      string
	numQubits int
	ops       []Gate
}

// NewCircuit creates an empty circuit over numQubits qubits.
func NewCircuit(numQubits int) (*Circuit, error) {
	if numQubits < 0 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidQubitCount, numQubits, MaxQubits)
	}
	return &Circuit{numQubits: numQubits}, nil
}

// NumQubits returns the register size.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.ops) }

// Op returns the i-th gate.
func (c *Circuit) Op(i int) Gate { return c.ops[i] }

// Ops returns a copy of the gate sequence.
func (c *Circuit) Ops() []Gate {
	out := make([]Gate, len(c.ops))
	copy(out, c.ops)
	return out
}

// Add validates g against the register and appends it. A rejected gate
// leaves the circuit untouched.
func (c *Circuit) Add(g Gate) error {
	if g.Kind != SingleQubit && g.Kind != Controlled {
		return fmt.Errorf("%w: %s has kind %s", ErrInvalidGate, g.QASMName(), g.Kind)
	}
	if !g.Matrix.IsUnitary(DefaultTolerance) {
		return fmt.Errorf("%w: %s matrix is not unitary", ErrInvalidGate, g.QASMName())
	}
	for _, q := range g.Qubits() {
		if q < 0 || q >= c.numQubits {
			return &QubitIndexError{Gate: g.QASMName(), Qubit: q, NumQubits: c.numQubits}
		}
	}
	if g.Kind == Controlled && g.Control == g.Target {
		return &QubitIndexError{Gate: g.QASMName(), Qubit: g.Target, NumQubits: c.numQubits, SameWire: true}
	}
	c.ops = append(c.ops, g)
	return nil
}

// AddAll appends gates in order, stopping at the first rejected one.
func (c *Circuit) AddAll(gates ...Gate) error {
	for i, g := range gates {
		if err := c.Add(g); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}

// ApplyHadamard appends H on qubit.
func ApplyHadamard(c *Circuit, qubit int) error {
	return c.Add(Hadamard(qubit))
}

// ApplyPauliX appends X on qubit.
func ApplyPauliX(c *Circuit, qubit int) error {
	return c.Add(PauliX(qubit))
}

// ApplyCNOT appends a CNOT with the given control and target.
func ApplyCNOT(c *Circuit, control, target int) error {
	return c.Add(CNOT(control, target))
}

// Clone returns an independent copy that can be appended to without
// affecting c.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{Name: c.Name, numQubits: c.numQubits, ops: c.Ops()}
}
