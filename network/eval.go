package network

import (
	"context"
	"fmt"
	"sort"
)

// paramNodeType is the pseudo node type a custom sub-network's pin
// declarations use: a "__param__" node has no inputs and its single
// output ("value") is supplied by the enclosing evaluation rather than
// computed, unless used as a top-level network input with a literal
// default.
const paramNodeType = "__param__"

func init() {
	Register(NodeType{
		Name:     paramNodeType,
		Category: "internal",
		Doc:      "a custom node's formal parameter; its value is bound by the caller",
		Outputs:  []PinSpec{{Name: "value", Kind: KindInvalid}},
		Eval: func(ctx context.Context, inputs map[string]Value, params map[string]Value) (map[string]Value, error) {
			if v, ok := params["default"]; ok {
				return map[string]Value{"value": v}, nil
			}
			return nil, fmt.Errorf("network: unbound parameter node evaluated with no default")
		},
	})
}

// Warning is a non-fatal problem recorded during evaluation: spec
// §4.C's wiring contract rejects a type-incompatible wire rather than
// aborting the evaluation, falling back to the pin's literal or default
// value instead and recording why (spec §7 "domain warnings").
type Warning struct {
	Node    NodeID
	Pin     string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("node %q pin %q: %s", w.Node, w.Pin, w.Message)
}

// Evaluator runs a memoizing depth-first evaluation of a NodeNetwork.
// A fresh Evaluator should be used per top-level evaluation request;
// memoization is scoped to one Evaluator so repeated calls to Evaluate
// for different output nodes of the same network reuse shared subgraph
// results (spec §4.C "memoizing depth-first evaluation").
type Evaluator struct {
	net      *NodeNetwork
	memo     map[NodeID]map[string]Value
	visiting map[NodeID]bool
	bindings map[NodeID]Value // parameter-node overrides for closures/map

	Warnings []Warning
}

// NewEvaluator returns an Evaluator for net.
func NewEvaluator(net *NodeNetwork) *Evaluator {
	return &Evaluator{
		net:      net,
		memo:     make(map[NodeID]map[string]Value),
		visiting: make(map[NodeID]bool),
		bindings: make(map[NodeID]Value),
	}
}

// Bind overrides a "__param__" node's value for the lifetime of this
// Evaluator, used when evaluating a custom node's sub-network or a
// closure produced by the map node.
func (e *Evaluator) Bind(param NodeID, v Value) {
	e.bindings[param] = v
}

// warn records a non-fatal problem found while evaluating id's pin.
func (e *Evaluator) warn(id NodeID, pin, format string, args ...any) {
	e.Warnings = append(e.Warnings, Warning{Node: id, Pin: pin, Message: fmt.Sprintf(format, args...)})
}

// Evaluate computes every output pin of the node with the given ID,
// returning the value of outputPin.
func (e *Evaluator) Evaluate(ctx context.Context, id NodeID, outputPin string) (Value, error) {
	outs, err := e.evalNode(ctx, id)
	if err != nil {
		return Value{}, err
	}
	v, ok := outs[outputPin]
	if !ok {
		return Value{}, fmt.Errorf("network: node %q has no output pin %q", id, outputPin)
	}
	return v, nil
}

func (e *Evaluator) evalNode(ctx context.Context, id NodeID) (map[string]Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if out, ok := e.memo[id]; ok {
		return out, nil
	}
	if e.visiting[id] {
		return nil, fmt.Errorf("network: cycle detected at node %q", id)
	}
	e.visiting[id] = true
	defer delete(e.visiting, id)

	node, ok := e.net.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("network: no such node %q", id)
	}

	if node.Type == paramNodeType {
		if bound, ok := e.bindings[id]; ok {
			out := map[string]Value{"value": bound}
			e.memo[id] = out
			return out, nil
		}
	}

	if node.Type == "__custom__" {
		out, err := e.evalCustom(ctx, id, node)
		if err != nil {
			return nil, err
		}
		e.memo[id] = out
		return out, nil
	}
	if node.Type == "__expr__" {
		out, err := e.evalExpression(ctx, node)
		if err != nil {
			return nil, err
		}
		e.memo[id] = out
		return out, nil
	}

	nodeType, ok := Lookup(node.Type)
	if !ok {
		return nil, fmt.Errorf("network: unknown node type %q", node.Type)
	}

	known := make(map[string]bool, len(nodeType.Inputs))
	inputs := make(map[string]Value, len(nodeType.Inputs))
	for _, pin := range nodeType.Inputs {
		known[pin.Name] = true
		v, err := e.resolveInput(ctx, id, pin)
		if err != nil {
			return nil, err
		}
		inputs[pin.Name] = v
	}
	// Node types that accept extra, dynamically-named pins beyond their
	// declared signature (e.g. "map"'s wire-time partial application)
	// pick these up here, mirroring how expression nodes resolve their
	// free variables outside the static Inputs declaration.
	if nodeType.DynamicPins {
		for _, w := range e.net.incomingExtra(id, known) {
			v, err := e.Evaluate(ctx, w.FromNode, w.FromPin)
			if err != nil {
				return nil, err
			}
			inputs[w.ToPin] = v
		}
	}

	out, err := nodeType.Eval(ctx, inputs, node.Params)
	if err != nil {
		return nil, fmt.Errorf("network: node %q (%s): %w", id, node.Type, err)
	}
	e.memo[id] = out
	return out, nil
}

// resolveInput returns the value feeding pin: the wired source's
// output if a wire exists, otherwise the node's literal parameter. With
// neither, a typed pin gets its kind's zero value plus a warning, and an
// untyped (KindInvalid) pin is an error. A wire whose value can't be coerced to pin's
// declared kind is rejected with a warning rather than aborting the
// evaluation; it falls back to the pin's literal/default value instead
// (spec §4.C "Wiring contract").
func (e *Evaluator) resolveInput(ctx context.Context, id NodeID, pin PinSpec) (Value, error) {
	if w, ok := e.net.incoming(id, pin.Name); ok {
		v, err := e.Evaluate(ctx, w.FromNode, w.FromPin)
		if err != nil {
			return Value{}, err
		}
		if pin.Kind != KindInvalid && v.Kind != pin.Kind {
			coerced, err := Coerce(v, pin.Kind)
			if err != nil {
				e.warn(id, pin.Name, "wire from %q.%s produced %s, want %s: %v; falling back to default", w.FromNode, w.FromPin, v.Kind, pin.Kind, err)
				return e.fallbackInput(id, pin)
			}
			return coerced, nil
		}
		return v, nil
	}
	return e.fallbackInput(id, pin)
}

// fallbackInput returns a node's literal parameter for pin, or a zero
// value of pin's declared kind with a warning if no literal was given
// either.
func (e *Evaluator) fallbackInput(id NodeID, pin PinSpec) (Value, error) {
	node := e.net.Nodes[id]
	if v, ok := node.Params[pin.Name]; ok {
		return v, nil
	}
	if pin.Kind == KindInvalid {
		return Value{}, fmt.Errorf("network: node %q pin %q has no wire or default", id, pin.Name)
	}
	e.warn(id, pin.Name, "no wire or default; using zero value of %s", pin.Kind)
	return zeroValue(pin.Kind), nil
}

func zeroValue(k Kind) Value {
	switch k {
	case KindList:
		return ListValue(KindInvalid, nil)
	default:
		return Value{Kind: k}
	}
}

// evalCustom runs a custom node's sub-network: its "__param__" nodes
// are bound to values resolved from id's own incoming wires (matched by
// parameter name, falling back to the param node's literal default)
// before the sub-network's declared outputs are evaluated.
func (e *Evaluator) evalCustom(ctx context.Context, id NodeID, node *Node) (map[string]Value, error) {
	sub := NewEvaluator(node.Sub)
	for pid, p := range node.Sub.Nodes {
		if p.Type != paramNodeType {
			continue
		}
		name := paramNameOf(p)
		v, err := e.resolveInput(ctx, id, PinSpec{Name: name, Kind: KindInvalid})
		if err != nil {
			if dflt, ok := p.Params["default"]; ok {
				v = dflt
			} else {
				return nil, fmt.Errorf("network: custom node %q: parameter %q has no wire or default", id, name)
			}
		}
		sub.Bind(pid, v)
	}
	out := make(map[string]Value, len(node.Sub.Outputs))
	for i, oid := range node.Sub.Outputs {
		v, err := sub.Evaluate(ctx, oid, "value")
		if err != nil {
			return nil, err
		}
		out[fmt.Sprintf("out%d", i)] = v
	}
	e.Warnings = append(e.Warnings, sub.Warnings...)
	return out, nil
}

func paramNameOf(p *Node) string {
	if v, ok := p.Params["name"]; ok {
		return v.String
	}
	return ""
}

// outputPinsOf returns the output pin names a node exposes, used by
// GenerateScene to evaluate every pin of a visible node.
func outputPinsOf(node *Node) []string {
	switch node.Type {
	case "__expr__", paramNodeType:
		return []string{"value"}
	case "__custom__":
		names := make([]string, len(node.Sub.Outputs))
		for i := range node.Sub.Outputs {
			names[i] = fmt.Sprintf("out%d", i)
		}
		return names
	default:
		nt, ok := Lookup(node.Type)
		if !ok {
			return nil
		}
		names := make([]string, len(nt.Outputs))
		for i, p := range nt.Outputs {
			names[i] = p.Name
		}
		return names
	}
}

// NodeOutput is one visible node's evaluated output, or the error it
// failed with (spec §4.C "Visibility & scene generation", spec §7 item
// 3: a visible node that errors surfaces its error in the scene rather
// than aborting generation).
type NodeOutput struct {
	Node  NodeID
	Pin   string
	Value Value
	Err   error
}

// GenerateScene evaluates every node marked Visible in net and returns
// one NodeOutput per output pin, plus any warnings accumulated along
// the way. A visible node whose evaluation fails contributes a
// NodeOutput carrying Err instead of aborting the rest of the scene.
func GenerateScene(ctx context.Context, net *NodeNetwork) ([]NodeOutput, []Warning) {
	eval := NewEvaluator(net)

	ids := make([]NodeID, 0, len(net.Nodes))
	for id := range net.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var scene []NodeOutput
	for _, id := range ids {
		node := net.Nodes[id]
		if !node.Visible {
			continue
		}
		for _, pin := range outputPinsOf(node) {
			v, err := eval.Evaluate(ctx, id, pin)
			scene = append(scene, NodeOutput{Node: id, Pin: pin, Value: v, Err: err})
		}
	}
	return scene, eval.Warnings
}
