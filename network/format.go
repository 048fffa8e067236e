package network

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse reads the text network format (spec §6 "text network format"):
// tolerant of blank lines and "#" comments, one statement per line.
//
//	node <id> <type> [param=value ...]
//	expr <id> "<source>"
//	wire <fromID>.<fromPin> -> <toID>.<toPin>
//	output <id>
//
// A node's <id> is the node's permanent identifier: it is stored
// verbatim, not renumbered, so Serialize's output re-parses to a
// network whose nodes keep the names their author gave them. A
// "visible=true" param on a node statement sets Node.Visible rather
// than becoming a literal pin default.
//
// Custom nodes (sub-networks used as a single node) are a
// programmatic-only construct built with NodeNetwork.AddCustomNode;
// the text format has no statement for them.
//
// Parsing is tolerant: unknown trailing tokens on a recognized
// statement are ignored rather than rejected, so older saved networks
// stay loadable across additive format changes.
func Parse(text string) (*NodeNetwork, error) {
	net := NewNetwork()
	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "node":
			if len(fields) < 3 {
				return nil, fmt.Errorf("network: line %d: malformed node statement", lineNo)
			}
			id := NodeID(fields[1])
			params := map[string]Value{}
			for _, kv := range fields[3:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					continue
				}
				params[k] = parseLiteral(v)
			}
			visible := false
			if v, ok := params["visible"]; ok {
				visible = v.Kind == KindBool && v.Bool
				delete(params, "visible")
			}
			if err := net.AddNodeWithID(id, fields[2], params); err != nil {
				return nil, fmt.Errorf("network: line %d: %w", lineNo, err)
			}
			net.Nodes[id].Visible = visible
		case "expr":
			if len(fields) < 3 {
				return nil, fmt.Errorf("network: line %d: malformed expr statement", lineNo)
			}
			id := NodeID(fields[1])
			src := strings.TrimSpace(strings.TrimPrefix(line, "expr "+fields[1]))
			src = strings.Trim(src, "\"")
			if err := net.AddExpressionNodeWithID(id, src); err != nil {
				return nil, fmt.Errorf("network: line %d: %w", lineNo, err)
			}
		case "wire":
			if len(fields) < 3 || fields[2] != "->" {
				return nil, fmt.Errorf("network: line %d: malformed wire statement", lineNo)
			}
			from, fromPin, err := splitPin(fields[1])
			if err != nil {
				return nil, fmt.Errorf("network: line %d: %w", lineNo, err)
			}
			to, toPin, err := splitPin(fields[3])
			if err != nil {
				return nil, fmt.Errorf("network: line %d: %w", lineNo, err)
			}
			if _, ok := net.Nodes[NodeID(from)]; !ok {
				return nil, fmt.Errorf("network: line %d: unknown node id %q", lineNo, from)
			}
			if _, ok := net.Nodes[NodeID(to)]; !ok {
				return nil, fmt.Errorf("network: line %d: unknown node id %q", lineNo, to)
			}
			if err := net.Connect(NodeID(from), fromPin, NodeID(to), toPin); err != nil {
				return nil, fmt.Errorf("network: line %d: %w", lineNo, err)
			}
		case "output":
			if len(fields) < 2 {
				return nil, fmt.Errorf("network: line %d: malformed output statement", lineNo)
			}
			id := NodeID(fields[1])
			if _, ok := net.Nodes[id]; !ok {
				return nil, fmt.Errorf("network: line %d: unknown node id %q", lineNo, fields[1])
			}
			net.Outputs = append(net.Outputs, id)
		default:
			// Unknown statement kind: tolerated, ignored.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := checkCycles(net); err != nil {
		return nil, err
	}
	return net, nil
}

func splitPin(s string) (node, pin string, err error) {
	node, pin, ok := strings.Cut(s, ".")
	if !ok {
		return "", "", fmt.Errorf("malformed pin reference %q", s)
	}
	return node, pin, nil
}

func parseLiteral(s string) Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	if s == "true" || s == "false" {
		return BoolValue(s == "true")
	}
	return StringValue(strings.Trim(s, "\""))
}

// checkCycles reports an error if the network's wires form a cycle
// (spec §6 "cycle detection").
func checkCycles(net *NodeNetwork) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[NodeID]int{}
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("network: cycle detected at node %q", id)
		}
		color[id] = gray
		for _, w := range net.Wires {
			if w.ToNode == id {
				if err := visit(w.FromNode); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	for id := range net.Nodes {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Serialize writes net back out in the text network format, with nodes
// emitted in a topological order (spec §6 "topological-sort
// serialization") so a re-parse never forward-references a wire
// source. Each node's original ID survives the round-trip, and so does
// the Visible flag of every non-expression node; expression lines are
// written without a visible flag.
func Serialize(net *NodeNetwork) (string, error) {
	order, err := topoSort(net)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, id := range order {
		n := net.Nodes[id]
		switch n.Type {
		case "__expr__":
			fmt.Fprintf(&b, "expr %s \"%s\"\n", id, n.ExprSource)
		default:
			fmt.Fprintf(&b, "node %s %s", id, n.Type)
			keys := make([]string, 0, len(n.Params))
			for k := range n.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, " %s=%s", k, formatLiteral(n.Params[k]))
			}
			if n.Visible {
				fmt.Fprintf(&b, " visible=true")
			}
			b.WriteByte('\n')
		}
	}
	for _, w := range net.Wires {
		fmt.Fprintf(&b, "wire %s.%s -> %s.%s\n", w.FromNode, w.FromPin, w.ToNode, w.ToPin)
	}
	for _, o := range net.Outputs {
		fmt.Fprintf(&b, "output %s\n", o)
	}
	return b.String(), nil
}

func formatLiteral(v Value) string {
	switch v.Kind {
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return "\"" + v.String + "\""
	default:
		return "\"\""
	}
}

func topoSort(net *NodeNetwork) ([]NodeID, error) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[NodeID]int{}
	var order []NodeID
	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("network: cycle detected at node %q", id)
		}
		color[id] = gray
		for _, w := range net.Wires {
			if w.ToNode == id {
				if err := visit(w.FromNode); err != nil {
					return err
				}
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}
	ids := make([]NodeID, 0, len(net.Nodes))
	for id := range net.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
