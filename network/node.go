package network

import "fmt"

// NodeID identifies a node within one NodeNetwork. It is a caller- or
// file-chosen string, not a positional index, so a node authored as
// "outer" or "atoms" in a saved network stays addressable by that name
// across any number of edit/query round-trips (spec §3 data model: a
// node's identifier is a stable, user-visible string).
type NodeID string

// Wire connects one node's output pin to another node's input pin.
type Wire struct {
	FromNode NodeID
	FromPin  string
	ToNode   NodeID
	ToPin    string
}

// Node is one instance of a NodeType within a network: its type name,
// literal parameter values (used when a pin has no incoming wire), and
// (for the custom-node and expression node kinds) an embedded
// sub-network or expression source.
type Node struct {
	ID     NodeID
	Type   string
	Params map[string]Value

	// Visible marks a node whose value is surfaced by GenerateScene
	// (spec §4.C "Visibility & scene generation").
	Visible bool

	// Sub is set for custom nodes: evaluating this node evaluates Sub as
	// a closure over its own parameter nodes (spec §4.C "custom nodes").
	Sub *NodeNetwork

	// ExprSource is set for expression nodes: Params plus ExprSource's
	// free variables determine the node's dynamic input pins.
	ExprSource string
}

// NodeNetwork is a DAG of nodes connected by wires, with a declared set
// of output nodes (the nodes whose values the network as a whole
// produces).
type NodeNetwork struct {
	Nodes   map[NodeID]*Node
	Wires   []Wire
	Outputs []NodeID
	next    int
}

// NewNetwork returns an empty network.
func NewNetwork() *NodeNetwork {
	return &NodeNetwork{Nodes: make(map[NodeID]*Node)}
}

// allocID returns a fresh "nNN" identifier not already in use, for
// programmatic callers that don't care about a specific node name.
func (n *NodeNetwork) allocID() NodeID {
	for {
		id := NodeID(fmt.Sprintf("n%d", n.next))
		n.next++
		if _, exists := n.Nodes[id]; !exists {
			return id
		}
	}
}

// AddNode inserts a node of the given type with the given literal
// parameters under an automatically allocated ID and returns it.
func (n *NodeNetwork) AddNode(typeName string, params map[string]Value) NodeID {
	id := n.allocID()
	if params == nil {
		params = map[string]Value{}
	}
	n.Nodes[id] = &Node{ID: id, Type: typeName, Params: params}
	return id
}

// AddNodeWithID inserts a node under a caller-chosen ID, preserving the
// name a saved network's author gave it. It errors if id is already in
// use.
func (n *NodeNetwork) AddNodeWithID(id NodeID, typeName string, params map[string]Value) error {
	if _, exists := n.Nodes[id]; exists {
		return fmt.Errorf("network: duplicate node id %q", id)
	}
	if params == nil {
		params = map[string]Value{}
	}
	n.Nodes[id] = &Node{ID: id, Type: typeName, Params: params}
	return nil
}

// AddCustomNode inserts a custom node wrapping sub as a sub-network.
func (n *NodeNetwork) AddCustomNode(sub *NodeNetwork) NodeID {
	id := n.allocID()
	n.Nodes[id] = &Node{ID: id, Type: "__custom__", Sub: sub, Params: map[string]Value{}}
	return id
}

// AddExpressionNode inserts an expression node with the given source.
func (n *NodeNetwork) AddExpressionNode(source string) NodeID {
	id := n.allocID()
	n.Nodes[id] = &Node{ID: id, Type: "__expr__", ExprSource: source, Params: map[string]Value{}}
	return id
}

// AddExpressionNodeWithID inserts an expression node under a
// caller-chosen ID; see AddNodeWithID.
func (n *NodeNetwork) AddExpressionNodeWithID(id NodeID, source string) error {
	if _, exists := n.Nodes[id]; exists {
		return fmt.Errorf("network: duplicate node id %q", id)
	}
	n.Nodes[id] = &Node{ID: id, Type: "__expr__", ExprSource: source, Params: map[string]Value{}}
	return nil
}

// Connect wires an output pin to an input pin.
func (n *NodeNetwork) Connect(from NodeID, fromPin string, to NodeID, toPin string) error {
	if _, ok := n.Nodes[from]; !ok {
		return fmt.Errorf("network: no such node %q", from)
	}
	if _, ok := n.Nodes[to]; !ok {
		return fmt.Errorf("network: no such node %q", to)
	}
	n.Wires = append(n.Wires, Wire{FromNode: from, FromPin: fromPin, ToNode: to, ToPin: toPin})
	return nil
}

// incoming returns the wire feeding (toNode, toPin), if any.
func (n *NodeNetwork) incoming(toNode NodeID, toPin string) (Wire, bool) {
	for _, w := range n.Wires {
		if w.ToNode == toNode && w.ToPin == toPin {
			return w, true
		}
	}
	return Wire{}, false
}

// incomingExtra returns every wire targeting toNode whose pin name is
// not in known, used by node types (e.g. "map") that accept additional,
// dynamically named input pins beyond their declared signature.
func (n *NodeNetwork) incomingExtra(toNode NodeID, known map[string]bool) []Wire {
	var out []Wire
	for _, w := range n.Wires {
		if w.ToNode == toNode && !known[w.ToPin] {
			out = append(out, w)
		}
	}
	return out
}
