package main

import "slices"

// DAGNode is one gate of a circuit in its dependency graph. A node depends
// on the previous gate that touched each of its qubits.
type DAGNode struct {
	Index        int   // position in the circuit's gate sequence
	Gate         Gate  // the gate itself
	Dependencies []int // indices of the nodes that must run first
	Layer        int   // ASAP layer; gates in one layer commute trivially
}

// CircuitDAG is the dependency view of a circuit. The circuit's own order is
// always a valid topological order; the DAG adds layering for depth
// reporting and compact diagrams.
type CircuitDAG struct {
	Nodes     []*DAGNode
	NumQubits int
}

// NewCircuitDAG builds the dependency graph of c.
func NewCircuitDAG(c *Circuit) *CircuitDAG {
	dag := &CircuitDAG{
		Nodes:     make([]*DAGNode, 0, c.Len()),
		NumQubits: c.NumQubits(),
	}
	lastOnQubit := make(map[int]int)
	for i, g := range c.ops {
		node := &DAGNode{Index: i, Gate: g}
		for _, q := range g.Qubits() {
			prev, ok := lastOnQubit[q]
			if !ok {
				continue
			}
			if !slices.Contains(node.Dependencies, prev) {
				node.Dependencies = append(node.Dependencies, prev)
			}
			node.Layer = max(node.Layer, dag.Nodes[prev].Layer+1)
		}
		for _, q := range g.Qubits() {
			lastOnQubit[q] = i
		}
		dag.Nodes = append(dag.Nodes, node)
	}
	return dag
}

// Depth returns the number of layers.
func (dag *CircuitDAG) Depth() int {
	depth := 0
	for _, node := range dag.Nodes {
		depth = max(depth, node.Layer+1)
	}
	return depth
}

// Layers groups nodes by layer, preserving circuit order inside each layer.
func (dag *CircuitDAG) Layers() [][]*DAGNode {
	layers := make([][]*DAGNode, dag.Depth())
	for _, node := range dag.Nodes {
		layers[node.Layer] = append(layers[node.Layer], node)
	}
	return layers
}

// GetNodesOnQubit returns the nodes touching qubit, in circuit order.
func (dag *CircuitDAG) GetNodesOnQubit(qubit int) []*DAGNode {
	var result []*DAGNode
	for _, node := range dag.Nodes {
		if slices.Contains(node.Gate.Qubits(), qubit) {
			result = append(result, node)
		}
	}
	return result
}
