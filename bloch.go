package main

import (
	"math"
	"math/cmplx"
)

// BlochVector is the Bloch-sphere point of one qubit's reduced state.
// Pure single-qubit states sit on the sphere (length 1); entanglement pulls
// the point inside.
type BlochVector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Length returns the Euclidean length of b.
func (b BlochVector) Length() float64 {
	return math.Sqrt(b.X*b.X + b.Y*b.Y + b.Z*b.Z)
}

// Spherical returns the polar angle theta from +Z and the azimuth phi from +X.
func (b BlochVector) Spherical() (theta, phi float64) {
	r := b.Length()
	if r == 0 {
		return 0, 0
	}
	theta = math.Acos(math.Max(-1, math.Min(1, b.Z/r)))
	phi = math.Atan2(b.Y, b.X)
	return theta, phi
}

// BlochVector traces out every qubit but q and returns the resulting point.
// With ρ = (I + xX + yY + zZ)/2 we have ρ00-ρ11 = z and ρ01 = (x - iy)/2.
func (s *StateVector) BlochVector(q int) BlochVector {
	bit := 1 << q
	var rho00, rho11 float64
	var rho01 complex128
	for i, a := range s.amplitudes {
		if i&bit != 0 {
			continue
		}
		b := s.amplitudes[i|bit]
		rho00 += real(a * cmplx.Conj(a))
		rho11 += real(b * cmplx.Conj(b))
		rho01 += a * cmplx.Conj(b)
	}
	return BlochVector{
		X: 2 * real(rho01),
		Y: -2 * imag(rho01),
		Z: rho00 - rho11,
	}
}

// BlochVectors returns the Bloch vector of every qubit, qubit 0 first.
func (s *StateVector) BlochVectors() []BlochVector {
	out := make([]BlochVector, s.numQubits)
	for q := range s.numQubits {
		out[q] = s.BlochVector(q)
	}
	return out
}
