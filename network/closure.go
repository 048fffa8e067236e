package network

import (
	"context"
	"fmt"
	"sort"
)

// Function is a callable value: a custom node's sub-network plus any
// parameters already bound by partial application (spec §4.C "Function/
// closure values" and "map node with wire-time partial application").
type Function struct {
	Net     *NodeNetwork
	ParamIDs []NodeID // the sub-network's "__param__" nodes, sorted by node ID
	Bound   map[NodeID]Value
}

// NewFunction captures net as a closure with no parameters yet bound.
func NewFunction(net *NodeNetwork) *Function {
	var params []NodeID
	for id, n := range net.Nodes {
		if n.Type == paramNodeType {
			params = append(params, id)
		}
	}
	sort.Slice(params, func(i, j int) bool { return params[i] < params[j] })
	return &Function{Net: net, ParamIDs: params, Bound: map[NodeID]Value{}}
}

// Apply returns a new Function with one more parameter bound, leaving f
// unmodified (partial application, spec's "map" node semantics: wiring
// a value into one of a function's pins before it's called produces a
// function of the remaining pins).
func (f *Function) Apply(param NodeID, v Value) *Function {
	out := &Function{Net: f.Net, ParamIDs: f.ParamIDs, Bound: make(map[NodeID]Value, len(f.Bound)+1)}
	for k, bv := range f.Bound {
		out.Bound[k] = bv
	}
	out.Bound[param] = v
	return out
}

// Unbound returns the parameter IDs not yet bound by partial application.
func (f *Function) Unbound() []NodeID {
	var out []NodeID
	for _, id := range f.ParamIDs {
		if _, ok := f.Bound[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// ApplyNamed binds v onto the unbound parameter named name, matching by
// the parameter node's "name" param first and falling back to
// positionally binding the next unbound parameter if no name matches
// (spec §4.C: "any extra inputs on the map node beyond the closure's
// bound arity become additional bound arguments").
func (f *Function) ApplyNamed(name string, v Value) *Function {
	for _, id := range f.Unbound() {
		if p, ok := f.Net.Nodes[id]; ok && paramNameOf(p) == name {
			return f.Apply(id, v)
		}
	}
	if unbound := f.Unbound(); len(unbound) > 0 {
		return f.Apply(unbound[0], v)
	}
	return f
}

// Call fully applies f, binding any remaining unbound parameters
// positionally from args, and evaluates every declared output.
func (f *Function) Call(ctx context.Context, args []Value) ([]Value, error) {
	unbound := f.Unbound()
	if len(args) != len(unbound) {
		return nil, fmt.Errorf("network: function expects %d more argument(s), got %d", len(unbound), len(args))
	}
	eval := NewEvaluator(f.Net)
	for id, v := range f.Bound {
		eval.Bind(id, v)
	}
	for i, id := range unbound {
		eval.Bind(id, args[i])
	}
	out := make([]Value, len(f.Net.Outputs))
	for i, oid := range f.Net.Outputs {
		v, err := eval.Evaluate(ctx, oid, "value")
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func init() {
	Register(NodeType{
		Name:        "map",
		Category:    "function",
		Doc:         "applies a function to every element of a list, partially applying any extra wired inputs onto the closure first",
		Inputs:      []PinSpec{{Name: "function", Kind: KindFunction}, {Name: "list", Kind: KindList}},
		Outputs:     []PinSpec{{Name: "result", Kind: KindList}},
		DynamicPins: true,
		Eval: func(ctx context.Context, inputs map[string]Value, params map[string]Value) (map[string]Value, error) {
			fnVal := inputs["function"]
			if fnVal.Kind != KindFunction {
				return nil, fmt.Errorf("network: map: function input is not a function")
			}
			listVal := inputs["list"]
			if listVal.Kind != KindList {
				return nil, fmt.Errorf("network: map: list input is not a list")
			}
			fn := fnVal.Function
			var extra []string
			for k := range inputs {
				if k == "function" || k == "list" {
					continue
				}
				extra = append(extra, k)
			}
			sort.Strings(extra)
			for _, k := range extra {
				fn = fn.ApplyNamed(k, inputs[k])
			}
			unbound := fn.Unbound()
			if len(unbound) == 0 {
				return nil, fmt.Errorf("network: map: function has no unbound parameters to map over")
			}
			results := make([]Value, 0, len(listVal.List))
			for _, item := range listVal.List {
				out, err := fn.Call(ctx, []Value{item})
				if err != nil {
					return nil, err
				}
				if len(out) == 1 {
					results = append(results, out[0])
				} else {
					results = append(results, ListValue(KindInvalid, out))
				}
			}
			elem := KindInvalid
			if len(results) > 0 {
				elem = results[0].Kind
			}
			return map[string]Value{"result": ListValue(elem, results)}, nil
		},
	})
}
