package main

import (
	"testing"
)

func TestDAGParallelGates(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";
qreg q[4];
creg c[1];

h q[0];
h q[1];
cx q[0], q[1];
x q[2];
`

	c, err := ParseQASM(qasm)
	if err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	dag := NewCircuitDAG(c)

	if len(dag.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(dag.Nodes))
	}
	wantLayers := []int{0, 0, 1, 0}
	for i, want := range wantLayers {
		if got := dag.Nodes[i].Layer; got != want {
			t.Errorf("node %d (%s): layer %d, want %d", i, dag.Nodes[i].Gate, got, want)
		}
	}
	if deps := dag.Nodes[2].Dependencies; len(deps) != 2 || deps[0] != 0 || deps[1] != 1 {
		t.Errorf("cx dependencies: got %v, want [0 1]", deps)
	}
	if len(dag.Nodes[3].Dependencies) != 0 {
		t.Errorf("x q[2] should have no dependencies, got %v", dag.Nodes[3].Dependencies)
	}
	if d := dag.Depth(); d != 2 {
		t.Errorf("depth: got %d, want 2", d)
	}
}

func TestDAGLayers(t *testing.T) {
	c, err := NewCircuit(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddAll(Hadamard(0), Hadamard(1), CNOT(0, 1), PauliX(2), CNOT(1, 2)); err != nil {
		t.Fatal(err)
	}
	dag := NewCircuitDAG(c)

	layers := dag.Layers()
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}
	wantSizes := []int{3, 1, 1}
	for i, want := range wantSizes {
		if len(layers[i]) != want {
			t.Errorf("layer %d: %d nodes, want %d", i, len(layers[i]), want)
		}
	}

	var order []int
	for _, layer := range layers {
		for _, node := range layer {
			order = append(order, node.Index)
		}
	}
	want := []int{0, 1, 3, 2, 4}
	if len(order) != len(want) {
		t.Fatalf("layer order: got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("layer order: got %v, want %v", order, want)
		}
	}

	for _, node := range dag.Nodes {
		for _, dep := range node.Dependencies {
			if dag.Nodes[dep].Layer >= node.Layer {
				t.Errorf("node %d is not layered after its dependency %d", node.Index, dep)
			}
		}
	}
}

func TestDAGNodesOnQubit(t *testing.T) {
	c, err := NewCircuit(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddAll(Hadamard(0), CNOT(0, 1), PauliX(2), CZ(2, 1)); err != nil {
		t.Fatal(err)
	}
	dag := NewCircuitDAG(c)

	var got []int
	for _, node := range dag.GetNodesOnQubit(1) {
		got = append(got, node.Index)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("nodes on q[1]: got %v, want [1 3]", got)
	}
	if nodes := dag.GetNodesOnQubit(0); len(nodes) != 2 {
		t.Errorf("nodes on q[0]: got %d, want 2", len(nodes))
	}
}

func TestDAGEmptyCircuit(t *testing.T) {
	c, err := NewCircuit(2)
	if err != nil {
		t.Fatal(err)
	}
	dag := NewCircuitDAG(c)
	if dag.Depth() != 0 || len(dag.Layers()) != 0 {
		t.Errorf("empty circuit should have no layers")
	}
}
