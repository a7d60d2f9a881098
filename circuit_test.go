package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCircuitBounds(t *testing.T) {
	for _, n := range []int{-1, MaxQubits + 1} {
		_, err := NewCircuit(n)
		assert.ErrorIs(t, err, ErrInvalidQubitCount, "n=%d", n)
	}
	for _, n := range []int{0, 1, MaxQubits} {
		c, err := NewCircuit(n)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, n, c.NumQubits())
		assert.Zero(t, c.Len())
	}
}

func TestAddRejectsOutOfRangeQubits(t *testing.T) {
	tests := []struct {
		name string
		gate Gate
	}{
		{"target equal to n", PauliX(2)},
		{"negative target", Hadamard(-1)},
		{"control out of range", CNOT(5, 0)},
		{"target out of range", CNOT(0, 2)},
		{"control equals target", CNOT(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCircuit(t, 2, Hadamard(0))
			err := c.Add(tt.gate)
			require.ErrorIs(t, err, ErrInvalidQubitIndex)

			var qe *QubitIndexError
			require.True(t, errors.As(err, &qe))
			assert.Equal(t, 2, qe.NumQubits)

			assert.Equal(t, 1, c.Len(), "rejected gate must not be appended")
			assert.Equal(t, "h", c.Op(0).Name)
		})
	}
}

func TestQubitIndexErrorMessage(t *testing.T) {
	c := mustCircuit(t, 2)
	assert.EqualError(t, c.Add(CNOT(0, 3)), "cx: qubit 3 out of range [0, 2)")
	assert.EqualError(t, c.Add(CZ(1, 1)), "cz: control and target are both qubit 1")
}

func TestAddRejectsInvalidGates(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		gate Gate
	}{
		{"zero value", Gate{}},
		{"scaled identity", Gate{Kind: SingleQubit, Name: "scale", Control: -1, Matrix: Matrix{{2, 0}, {0, 2}}}},
		{"nan entries", Gate{Kind: SingleQubit, Name: "nan", Control: -1, Matrix: Matrix{{complex(nan, 0), 0}, {0, 1}}}},
		{"nan rotation", RX(nan, 0)},
		{"unknown kind", Gate{Kind: GateKind(7), Name: "x", Control: -1, Matrix: matX}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCircuit(t, 2, Hadamard(0))
			err := c.Add(tt.gate)
			require.ErrorIs(t, err, ErrInvalidGate)
			assert.NotErrorIs(t, err, ErrInvalidQubitIndex)
			assert.Equal(t, 1, c.Len(), "rejected gate must not be appended")

			probs := NewEvaluator().Evaluate(c).Probabilities()
			assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2]+probs[3], tol)
		})
	}
}

func TestAddAllStopsAtFirstError(t *testing.T) {
	c := mustCircuit(t, 1)
	err := c.AddAll(Hadamard(0), PauliX(1), PauliY(0))
	require.ErrorIs(t, err, ErrInvalidQubitIndex)
	assert.Contains(t, err.Error(), "gate 1")
	assert.Equal(t, 1, c.Len())
}

func TestOpsReturnsCopy(t *testing.T) {
	c := mustCircuit(t, 2, Hadamard(0), PauliX(1))
	ops := c.Ops()
	ops[0] = PauliZ(1)
	assert.Equal(t, "h", c.Op(0).Name)
}

func TestCloneIsIndependent(t *testing.T) {
	c := mustCircuit(t, 2, Hadamard(0))
	c.Name = "orig"
	clone := c.Clone()
	require.NoError(t, clone.Add(CNOT(0, 1)))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, "orig", clone.Name)
}

func TestGateParamsAreCopied(t *testing.T) {
	g := RX(0.5, 0)
	p := g.Params()
	p[0] = 99
	assert.Equal(t, []float64{0.5}, g.Params())
	assert.Nil(t, Hadamard(0).Params())
}

func TestPassThroughHelpers(t *testing.T) {
	c := mustCircuit(t, 2)
	require.NoError(t, ApplyHadamard(c, 0))
	require.NoError(t, ApplyPauliX(c, 1))
	require.NoError(t, ApplyCNOT(c, 0, 1))
	assert.ErrorIs(t, ApplyCNOT(c, 0, 2), ErrInvalidQubitIndex)

	names := make([]string, 0, c.Len())
	for _, g := range c.Ops() {
		names = append(names, g.String())
	}
	assert.Equal(t, []string{"h q[0]", "x q[1]", "cx q[0], q[1]"}, names)
}

func TestGateLabels(t *testing.T) {
	assert.Equal(t, "H", Hadamard(0).Label())
	assert.Equal(t, "RX", RX(1, 0).Label())
	assert.Equal(t, "S†", Phase(0, true).Label())
	assert.Equal(t, "T†", TGate(0, true).Label())
	assert.Equal(t, "crz", ControlledBy(1, RZ(1, 0)).QASMName())
	assert.Equal(t, []int{1, 0}, CNOT(1, 0).Qubits())
	assert.Equal(t, "controlled", CNOT(1, 0).Kind.String())
}
