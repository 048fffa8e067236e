package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticecad/latticecad/network"
)

func TestEvaluateSphereUnion(t *testing.T) {
	net := network.NewNetwork()
	s1 := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})
	u := net.AddNode("union", map[string]network.Value{})

	require.NoError(t, net.Connect(s1, "out", u, "shapes"))

	eval := network.NewEvaluator(net)
	_, err := eval.Evaluate(context.Background(), u, "out")
	// union's "shapes" pin expects a list; a wire from a bare sdf3
	// output is coerced to a one-element list by Coerce, so this
	// should succeed.
	require.NoError(t, err)
}

func TestEvaluatorMemoizesSharedSubgraph(t *testing.T) {
	net := network.NewNetwork()
	calls := 0
	network.Register(network.NodeType{
		Name:     "eval_test_counter",
		Category: "internal",
		Outputs:  []network.PinSpec{{Name: "out", Kind: network.KindInt}},
		Eval: func(ctx context.Context, in map[string]network.Value, p map[string]network.Value) (map[string]network.Value, error) {
			calls++
			return map[string]network.Value{"out": network.IntValue(calls)}, nil
		},
	})
	src := net.AddNode("eval_test_counter", nil)
	a := net.AddExpressionNode("x")
	b := net.AddExpressionNode("x")
	require.NoError(t, net.Connect(src, "out", a, "x"))
	require.NoError(t, net.Connect(src, "out", b, "x"))

	eval := network.NewEvaluator(net)
	va, err := eval.Evaluate(context.Background(), a, "value")
	require.NoError(t, err)
	vb, err := eval.Evaluate(context.Background(), b, "value")
	require.NoError(t, err)

	require.Equal(t, va.Float, vb.Float)
	require.Equal(t, 1, calls, "the shared source node should be evaluated exactly once")
}

func TestExpressionFreeVariables(t *testing.T) {
	vars, err := network.FreeVariables("a + b * sin(c)")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, vars)
}

func TestExpressionIfThenElse(t *testing.T) {
	net := network.NewNetwork()
	n := net.AddExpressionNode("if x > 0 then 1 else -1")
	net.Nodes[n].Params["x"] = network.FloatValue(5)

	eval := network.NewEvaluator(net)
	v, err := eval.Evaluate(context.Background(), n, "value")
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Float)
}

func TestCustomNodeClosure(t *testing.T) {
	sub := network.NewNetwork()
	p := sub.AddNode("__param__", map[string]network.Value{"name": network.StringValue("x"), "default": network.FloatValue(0)})
	e := sub.AddExpressionNode("x * 2")
	require.NoError(t, sub.Connect(p, "value", e, "x"))
	sub.Outputs = []network.NodeID{e}

	outer := network.NewNetwork()
	custom := outer.AddCustomNode(sub)
	outer.Nodes[custom].Params["x"] = network.FloatValue(21)

	eval := network.NewEvaluator(outer)
	v, err := eval.Evaluate(context.Background(), custom, "out0")
	require.NoError(t, err)
	require.Equal(t, 42.0, v.Float)
}

func TestParseSerializeRoundTrip(t *testing.T) {
	src := `
node n0 sphere radius=1
output n0
`
	net, err := network.Parse(src)
	require.NoError(t, err)
	require.Len(t, net.Nodes, 1)
	require.Len(t, net.Outputs, 1)

	out, err := network.Serialize(net)
	require.NoError(t, err)

	net2, err := network.Parse(out)
	require.NoError(t, err)
	require.Len(t, net2.Nodes, len(net.Nodes))
}

func TestParseSerializePreservesUserChosenNodeNames(t *testing.T) {
	src := `
node my_sphere sphere radius=2 visible=true
node the_union union
wire my_sphere.out -> the_union.shapes
output the_union
`
	net, err := network.Parse(src)
	require.NoError(t, err)
	require.Contains(t, net.Nodes, network.NodeID("my_sphere"))
	require.Contains(t, net.Nodes, network.NodeID("the_union"))
	require.True(t, net.Nodes[network.NodeID("my_sphere")].Visible)

	out, err := network.Serialize(net)
	require.NoError(t, err)
	require.Contains(t, out, "node my_sphere sphere")
	require.Contains(t, out, "my_sphere.out -> the_union.shapes")

	net2, err := network.Parse(out)
	require.NoError(t, err)
	require.Contains(t, net2.Nodes, network.NodeID("my_sphere"))
	require.Contains(t, net2.Nodes, network.NodeID("the_union"))
	require.True(t, net2.Nodes[network.NodeID("my_sphere")].Visible)
}

func TestGenerateSceneSkipsHiddenAndCapturesErrors(t *testing.T) {
	net := network.NewNetwork()
	visible := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})
	net.Nodes[visible].Visible = true

	hidden := net.AddNode("sphere", map[string]network.Value{"radius": network.FloatValue(1)})
	net.Nodes[hidden].Visible = false

	broken := net.AddNode("text", map[string]network.Value{})
	net.Nodes[broken].Visible = true

	outputs, _ := network.GenerateScene(context.Background(), net)

	seen := make(map[network.NodeID][]network.NodeOutput)
	for _, o := range outputs {
		seen[o.Node] = append(seen[o.Node], o)
	}
	require.Contains(t, seen, visible)
	require.NotContains(t, seen, hidden)
	require.Contains(t, seen, broken)
	require.Error(t, seen[broken][0].Err)
}

func TestParseDetectsCycle(t *testing.T) {
	src := `
node n0 union
node n1 union
wire n0.out -> n1.shapes
wire n1.out -> n0.shapes
`
	_, err := network.Parse(src)
	require.Error(t, err)
}
