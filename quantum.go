package main

import (
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"strings"
)

// DefaultTolerance is the normalization tolerance used by the evaluator.
const DefaultTolerance = 1e-9

// StateVector holds the 2^n complex amplitudes of an n-qubit register.
// Bit q of an index is the value of qubit q.
type StateVector struct {
	amplitudes []complex128
	numQubits  int
}

// NewStateVector returns |0…0⟩ over numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{amplitudes: amps, numQubits: numQubits}
}

// Clone returns a deep copy.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{amplitudes: s.Amplitudes(), numQubits: s.numQubits}
}

// NumQubits returns the register size.
func (s *StateVector) NumQubits() int { return s.numQubits }

// Len returns the number of amplitudes, 2^NumQubits.
func (s *StateVector) Len() int { return len(s.amplitudes) }

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amplitudes[i] }

// Amplitudes returns a copy of the amplitudes.
func (s *StateVector) Amplitudes() []complex128 {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return amps
}

// Norm returns the sum of squared magnitudes.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, a := range s.amplitudes {
		total += real(a * cmplx.Conj(a))
	}
	return total
}

// Probabilities returns |a_i|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// BasisLabel renders index i as a ket with qubit n-1 leftmost, e.g. |01⟩.
func (s *StateVector) BasisLabel(i int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for q := s.numQubits - 1; q >= 0; q-- {
		if i&(1<<q) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteString("⟩")
	return sb.String()
}

// EqualUpToPhase reports whether o equals s times a global phase, within tol
// per amplitude.
func (s *StateVector) EqualUpToPhase(o *StateVector, tol float64) bool {
	if s.numQubits != o.numQubits {
		return false
	}
	pivot := 0
	for i, a := range s.amplitudes {
		if cmplx.Abs(a) > cmplx.Abs(s.amplitudes[pivot]) {
			pivot = i
		}
	}
	if cmplx.Abs(o.amplitudes[pivot]) < tol {
		return cmplx.Abs(s.amplitudes[pivot]) < tol
	}
	ratio := o.amplitudes[pivot] / s.amplitudes[pivot]
	phase := ratio / complex(cmplx.Abs(ratio), 0)
	for i, a := range s.amplitudes {
		if cmplx.Abs(a*phase-o.amplitudes[i]) > tol {
			return false
		}
	}
	return true
}

func (s *StateVector) apply(g Gate) {
	switch g.Kind {
	case SingleQubit:
		s.applyMatrix(g.Target, g.Matrix)
	case Controlled:
		s.applyControlled(g.Control, g.Target, g.Matrix)
	}
}

// applyMatrix applies m to every amplitude pair that differs only in the
// target bit.
func (s *StateVector) applyMatrix(target int, m Matrix) {
	bit := 1 << target
	for i := range s.amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// applyControlled is applyMatrix restricted to indices with the control bit set.
func (s *StateVector) applyControlled(control, target int, m Matrix) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.amplitudes {
		if i&cBit == 0 || i&tBit != 0 {
			continue
		}
		j := i | tBit
		a0, a1 := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns P(0) and P(1) for every qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, a := range s.amplitudes {
		prob := real(a * cmplx.Conj(a))
		for q := range s.numQubits {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// Evaluator runs circuits on a fresh state vector. It holds no state between
// calls and is safe to reuse.
type Evaluator struct {
	logger    *slog.Logger
	tolerance float64
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets the logger used for per-gate tracing and norm warnings.
func WithLogger(l *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTolerance sets the normalization tolerance.
func WithTolerance(tol float64) EvaluatorOption {
	return func(e *Evaluator) {
		if tol > 0 {
			e.tolerance = tol
		}
	}
}

// NewEvaluator returns an evaluator with DefaultTolerance and a discarding logger.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate applies every gate of c to |0…0⟩ and returns the final state.
func (e *Evaluator) Evaluate(c *Circuit) *StateVector {
	return e.EvaluateUpTo(c, c.Len())
}

// EvaluateUpTo applies only the first k gates of c. k is clamped to
// [0, c.Len()].
func (e *Evaluator) EvaluateUpTo(c *Circuit, k int) *StateVector {
	k = min(max(k, 0), c.Len())
	state := NewStateVector(c.NumQubits())
	for i := range k {
		g := c.ops[i]
		state.apply(g)
		norm := state.Norm()
		e.logger.Debug("applied gate", "index", i, "gate", g.String(), "norm", norm)
		if !(math.Abs(norm-1) <= e.tolerance) {
			e.logger.Warn("state vector norm drifted", "index", i, "gate", g.String(), "norm", norm)
		}
	}
	return state
}
