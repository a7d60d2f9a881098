package main

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Matrix is a 2x2 complex matrix in row-major order.
type Matrix [2][2]complex128

// Standard single-qubit unitaries.
var (
	matI = Matrix{{1, 0}, {0, 1}}
	matH = Matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	matX = Matrix{{0, 1}, {1, 0}}
	matY = Matrix{{0, -1i}, {1i, 0}}
	matZ = Matrix{{1, 0}, {0, -1}}
	matS = Matrix{{1, 0}, {0, 1i}}
	matT = Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
)

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := range 2 {
		for j := range 2 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose of m.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// ApproxEqual reports whether every entry of m is within tol of o. NaN
// entries never compare equal.
func (m Matrix) ApproxEqual(o Matrix, tol float64) bool {
	for i := range 2 {
		for j := range 2 {
			if !(cmplx.Abs(m[i][j]-o[i][j]) <= tol) {
				return false
			}
		}
	}
	return true
}

// IsUnitary reports whether m·m† is the identity within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	return m.Mul(m.Dagger()).ApproxEqual(matI, tol)
}

func rxMatrix(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Matrix{{c, js}, {js, c}}
}

func ryMatrix(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{{c, -s}, {s, c}}
}

func rzMatrix(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// GateKind tags the two shapes a gate operation can take.
type GateKind int

const (
	// SingleQubit gates apply Matrix to Target.
	SingleQubit GateKind = iota
	// Controlled gates apply Matrix to Target where the Control bit is 1.
	Controlled
)

func (k GateKind) String() string {
	switch k {
	case SingleQubit:
		return "single"
	case Controlled:
		return "controlled"
	default:
		return fmt.Sprintf("GateKind(%d)", int(k))
	}
}

// Gate is one operation in a circuit. Gates are values; build them with the
// constructors below and never modify them afterwards.
type Gate struct {
	Kind    GateKind
	Name    string // lower-case name of the base gate: "h", "x", "rx", ...
	Target  int
	Control int // -1 for single-qubit gates
	Matrix  Matrix
	params  []float64
}

func single(name string, target int, m Matrix, params ...float64) Gate {
	return Gate{
		Kind:    SingleQubit,
		Name:    name,
		Target:  target,
		Control: -1,
		Matrix:  m,
		params:  params,
	}
}

// Identity returns the no-op gate on qubit q.
func Identity(q int) Gate { return single("id", q, matI) }

// Hadamard returns H on qubit q.
func Hadamard(q int) Gate { return single("h", q, matH) }

// PauliX returns X (NOT) on qubit q.
func PauliX(q int) Gate { return single("x", q, matX) }

// PauliY returns Y on qubit q.
func PauliY(q int) Gate { return single("y", q, matY) }

// PauliZ returns Z on qubit q.
func PauliZ(q int) Gate { return single("z", q, matZ) }

// Phase returns S on qubit q, or S† when dagger is set.
func Phase(q int, dagger bool) Gate {
	if dagger {
		return single("sdg", q, matS.Dagger())
	}
	return single("s", q, matS)
}

// TGate returns T on qubit q, or T† when dagger is set.
func TGate(q int, dagger bool) Gate {
	if dagger {
		return single("tdg", q, matT.Dagger())
	}
	return single("t", q, matT)
}

// RX returns a rotation by theta about the X axis on qubit q.
func RX(theta float64, q int) Gate { return single("rx", q, rxMatrix(theta), theta) }

// RY returns a rotation by theta about the Y axis on qubit q.
func RY(theta float64, q int) Gate { return single("ry", q, ryMatrix(theta), theta) }

// RZ returns a rotation by theta about the Z axis on qubit q.
func RZ(theta float64, q int) Gate { return single("rz", q, rzMatrix(theta), theta) }

// ControlledBy turns a single-qubit gate into its controlled version.
// Controlling an already controlled gate replaces its control qubit.
func ControlledBy(control int, base Gate) Gate {
	base.Kind = Controlled
	base.Control = control
	base.params = base.Params()
	return base
}

// CNOT returns a controlled-X with the given control and target.
func CNOT(control, target int) Gate { return ControlledBy(control, PauliX(target)) }

// CY returns a controlled-Y.
func CY(control, target int) Gate { return ControlledBy(control, PauliY(target)) }

// CZ returns a controlled-Z.
func CZ(control, target int) Gate { return ControlledBy(control, PauliZ(target)) }

// Params returns a copy of the gate's rotation parameters.
func (g Gate) Params() []float64 {
	if len(g.params) == 0 {
		return nil
	}
	out := make([]float64, len(g.params))
	copy(out, g.params)
	return out
}

// Qubits returns the qubits the gate acts on, control first.
func (g Gate) Qubits() []int {
	if g.Kind == Controlled {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// QASMName returns the OpenQASM 2.0 mnemonic, e.g. "h", "cx", "crz".
func (g Gate) QASMName() string {
	if g.Kind == Controlled {
		return "c" + g.Name
	}
	return g.Name
}

// Label is the short upper-case name drawn in circuit diagrams.
func (g Gate) Label() string {
	switch g.Name {
	case "sdg":
		return "S†"
	case "tdg":
		return "T†"
	}
	return strings.ToUpper(g.Name)
}

// String renders the gate as a QASM statement without the trailing semicolon.
func (g Gate) String() string {
	name := g.QASMName()
	if len(g.params) > 0 {
		name = fmt.Sprintf("%s(%s)", name, FormatAngle(g.params[0]))
	}
	if g.Kind == Controlled {
		return fmt.Sprintf("%s q[%d], q[%d]", name, g.Control, g.Target)
	}
	return fmt.Sprintf("%s q[%d]", name, g.Target)
}
