package network

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// PinSpec describes one input or output pin of a node type: its name
// and expected/produced kind.
type PinSpec struct {
	Name string
	Kind Kind
}

// EvalFunc computes a node type's outputs from its resolved inputs.
// ctx carries cancellation for long-running evaluations (e.g. a dense
// SDF sampling node).
type EvalFunc func(ctx context.Context, inputs map[string]Value, params map[string]Value) (map[string]Value, error)

// NodeType is a registered, process-wide-immutable node descriptor: its
// category, pin signature, and evaluation function.
type NodeType struct {
	Name     string
	Category string
	Doc      string
	Inputs   []PinSpec
	Outputs  []PinSpec
	Params   []PinSpec
	Eval     EvalFunc

	// DynamicPins marks a node type that accepts extra input wires
	// beyond its declared Inputs (e.g. "map"'s wire-time partial
	// application onto a closure's unbound parameters).
	DynamicPins bool
}

var (
	registryMu sync.RWMutex
	registry   = map[string]NodeType{}
)

// Register adds a node type to the process-wide registry. Register is
// meant to be called from package init() only: the registry is treated
// as immutable once evaluation begins (spec §4.C "node registry").
func Register(t NodeType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t.Name]; exists {
		panic(fmt.Sprintf("network: node type %q already registered", t.Name))
	}
	registry[t.Name] = t
}

// Lookup returns the registered node type with the given name.
func Lookup(name string) (NodeType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// List returns every registered node type, optionally filtered by
// category, sorted by name (spec §6 "nodes [--category]").
func List(category string) []NodeType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]NodeType, 0, len(registry))
	for _, t := range registry {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
