package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
)

// AmplitudeEntry is one basis state of a rendered result.
type AmplitudeEntry struct {
	Index       int     `json:"index" yaml:"index"`
	Basis       string  `json:"basis" yaml:"basis"`
	Real        float64 `json:"real" yaml:"real"`
	Imag        float64 `json:"imag" yaml:"imag"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Result is everything a renderer needs to show an evaluated circuit.
type Result struct {
	Program    string           `json:"program,omitempty" yaml:"program,omitempty"`
	NumQubits  int              `json:"num_qubits" yaml:"num_qubits"`
	Depth      int              `json:"depth" yaml:"depth"`
	Gates      []string         `json:"gates" yaml:"gates"`
	Layers     [][]string       `json:"layers" yaml:"layers"`
	Amplitudes []AmplitudeEntry `json:"amplitudes" yaml:"amplitudes"`
	Bloch      []BlochVector    `json:"bloch" yaml:"bloch"`
	QubitP1    []float64        `json:"qubit_p1" yaml:"qubit_p1"`
	Diagram    string           `json:"-" yaml:"-"`
}

// NewResult bundles the circuit and its final state.
func NewResult(c *Circuit, s *StateVector) Result {
	dag := NewCircuitDAG(c)
	r := Result{
		Program:   c.Name,
		NumQubits: c.NumQubits(),
		Depth:     dag.Depth(),
		Gates:     make([]string, 0, c.Len()),
		Layers:    make([][]string, 0, dag.Depth()),
		Bloch:     s.BlochVectors(),
		Diagram:   DrawCircuit(c, DiagramOptions{Highlight: -1}),
	}
	for _, g := range c.ops {
		r.Gates = append(r.Gates, g.String())
	}
	for _, layer := range dag.Layers() {
		names := make([]string, len(layer))
		for i, node := range layer {
			names[i] = node.Gate.String()
		}
		r.Layers = append(r.Layers, names)
	}
	for _, qp := range s.QubitProbabilities() {
		r.QubitP1 = append(r.QubitP1, qp.Prob1)
	}
	probs := s.Probabilities()
	for i, a := range s.amplitudes {
		r.Amplitudes = append(r.Amplitudes, AmplitudeEntry{
			Index:       i,
			Basis:       s.BasisLabel(i),
			Real:        real(a),
			Imag:        imag(a),
			Probability: probs[i],
		})
	}
	return r
}

// Rounded returns a copy with every float rounded to digits decimals.
func (r Result) Rounded(digits int) Result {
	round := func(v float64) float64 {
		p := math.Pow(10, float64(digits))
		v = math.Round(v*p) / p
		if v == 0 {
			return 0 // drop negative zero
		}
		return v
	}
	out := r
	out.Amplitudes = make([]AmplitudeEntry, len(r.Amplitudes))
	for i, a := range r.Amplitudes {
		a.Real, a.Imag, a.Probability = round(a.Real), round(a.Imag), round(a.Probability)
		out.Amplitudes[i] = a
	}
	out.Bloch = make([]BlochVector, len(r.Bloch))
	for i, b := range r.Bloch {
		out.Bloch[i] = BlochVector{X: round(b.X), Y: round(b.Y), Z: round(b.Z)}
	}
	out.QubitP1 = make([]float64, len(r.QubitP1))
	for i, p := range r.QubitP1 {
		out.QubitP1[i] = round(p)
	}
	return out
}

// StateRenderer presents an evaluated circuit.
type StateRenderer interface {
	Render(w io.Writer, r Result) error
}

// Output formats accepted by RendererFor.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RendererFor returns the renderer for a format name.
func RendererFor(format string, precision int) (StateRenderer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return textRenderer{precision: precision}, nil
	case FormatJSON:
		return jsonRenderer{precision: precision}, nil
	case FormatYAML, "yml":
		return yamlRenderer{precision: precision}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

type textRenderer struct {
	precision int
}

// barWidth is the width of a probability bar at p = 1.
const barWidth = 20

// barLen scales p to a bar of at most width cells. NaN and negative
// probabilities give an empty bar.
func barLen(p float64, width int) int {
	if !(p > 0) {
		return 0
	}
	return int(math.Round(min(p, 1) * float64(width)))
}

func (t textRenderer) Render(w io.Writer, r Result) error {
	var sb strings.Builder
	name := r.Program
	if name == "" {
		name = "circuit"
	}
	fmt.Fprintf(&sb, "Circuit: %s (%d qubits, %d gates, depth %d)\n", name, r.NumQubits, len(r.Gates), r.Depth)
	if r.Diagram != "" {
		sb.WriteString(r.Diagram)
		sb.WriteString("\n")
	}

	rounded := r.Rounded(t.precision)
	parts := make([]string, len(rounded.Amplitudes))
	for i, a := range rounded.Amplitudes {
		parts[i] = t.complex(a.Real, a.Imag)
	}
	fmt.Fprintf(&sb, "Statevector: [%s]\n\n", strings.Join(parts, ", "))

	sb.WriteString("Probabilities:\n")
	for _, a := range rounded.Amplitudes {
		bar := strings.Repeat("█", barLen(a.Probability, barWidth))
		fmt.Fprintf(&sb, "  %s  %s  %s\n", a.Basis, t.float(a.Probability), bar)
	}

	sb.WriteString("\nBloch vectors:\n")
	for q, b := range rounded.Bloch {
		fmt.Fprintf(&sb, "  q[%d]  x=%s y=%s z=%s  |r|=%s", q,
			t.signed(b.X), t.signed(b.Y), t.signed(b.Z), t.float(r.Bloch[q].Length()))
		if q < len(rounded.QubitP1) {
			fmt.Fprintf(&sb, "  P(1)=%s", t.float(rounded.QubitP1[q]))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t textRenderer) float(v float64) string {
	return fmt.Sprintf("%.*f", t.precision, v)
}

func (t textRenderer) signed(v float64) string {
	return fmt.Sprintf("%+.*f", t.precision, v)
}

func (t textRenderer) complex(re, im float64) string {
	return fmt.Sprintf("%.*f%+.*fj", t.precision, re, t.precision, im)
}

type jsonRenderer struct {
	precision int
}

func (j jsonRenderer) Render(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Rounded(j.precision)); err != nil {
		return fmt.Errorf("failed to encode result JSON: %w", err)
	}
	return nil
}

type yamlRenderer struct {
	precision int
}

func (y yamlRenderer) Render(w io.Writer, r Result) error {
	if err := yaml.NewEncoder(w).Encode(r.Rounded(y.precision)); err != nil {
		return fmt.Errorf("failed to encode result YAML: %w", err)
	}
	return nil
}
