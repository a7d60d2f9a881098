package main

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ProgramOptions carries the knobs of the catalog circuits.
type ProgramOptions struct {
	Theta float64 // RX angle of the "intro" program
}

// DefaultProgramOptions matches the angle the intro circuit was written for.
func DefaultProgramOptions() ProgramOptions {
	return ProgramOptions{Theta: math.Pi / 4}
}

// Program is a named, fixed circuit.
type Program struct {
	Name        string
	Description string
	build       func(ProgramOptions) (*Circuit, error)
}

// Build returns a fresh circuit for the program.
func (p Program) Build(opts ProgramOptions) (*Circuit, error) {
	c, err := p.build(opts)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", p.Name, err)
	}
	c.Name = p.Name
	return c, nil
}

// DefaultProgram is evaluated when the CLI is run without arguments.
const DefaultProgram = "simulator"

var programs = map[string]Program{
	"simulator": {
		Name:        "simulator",
		Description: "H(0), X(1), CNOT(0,1) on 2 qubits",
		build: func(ProgramOptions) (*Circuit, error) {
			c, err := NewCircuit(2)
			if err != nil {
				return nil, err
			}
			if err := ApplyHadamard(c, 0); err != nil {
				return nil, err
			}
			if err := ApplyPauliX(c, 1); err != nil {
				return nil, err
			}
			if err := ApplyCNOT(c, 0, 1); err != nil {
				return nil, err
			}
			return c, nil
		},
	},
	"intro": {
		Name:        "intro",
		Description: "RX(theta, 0), Y(1), H(0), H(1) on 3 wires",
		build: func(opts ProgramOptions) (*Circuit, error) {
			c, err := NewCircuit(3)
			if err != nil {
				return nil, err
			}
			return c, c.AddAll(RX(opts.Theta, 0), PauliY(1), Hadamard(0), Hadamard(1))
		},
	},
	"bell": {
		Name:        "bell",
		Description: "Bell pair (|00⟩+|11⟩)/√2",
		build: func(ProgramOptions) (*Circuit, error) {
			c, err := NewCircuit(2)
			if err != nil {
				return nil, err
			}
			return c, c.AddAll(Hadamard(0), CNOT(0, 1))
		},
	},
	"ghz": {
		Name:        "ghz",
		Description: "3-qubit GHZ state (|000⟩+|111⟩)/√2",
		build: func(ProgramOptions) (*Circuit, error) {
			c, err := NewCircuit(3)
			if err != nil {
				return nil, err
			}
			return c, c.AddAll(Hadamard(0), CNOT(0, 1), CNOT(1, 2))
		},
	},
}

// Programs returns the catalog sorted by name.
func Programs() []Program {
	out := make([]Program, 0, len(programs))
	for _, p := range programs {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Program) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// LookupProgram finds a catalog program by name.
func LookupProgram(name string) (Program, error) {
	p, ok := programs[name]
	if !ok {
		return Program{}, fmt.Errorf("unknown program %q", name)
	}
	return p, nil
}
