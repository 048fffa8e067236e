//-----------------------------------------------------------------------------
/*

latticecad command line interface: query, edit, nodes, describe,
evaluate, and batch (spec §6 "external interfaces").

*/
//-----------------------------------------------------------------------------

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/latticecad/latticecad/atom"
	"github.com/latticecad/latticecad/network"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "nodes":
		err = cmdNodes(os.Args[2:])
	case "describe":
		err = cmdDescribe(os.Args[2:])
	case "query":
		err = cmdQuery(os.Args[2:])
	case "evaluate":
		err = cmdEvaluate(os.Args[2:])
	case "scene":
		err = cmdScene(os.Args[2:])
	case "edit":
		err = cmdEdit(os.Args[2:])
	case "batch":
		err = cmdBatch(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("latticecad: %s", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: latticecad <command> [arguments]

commands:
  nodes [--category=x] [--verbose]     list registered node types
  describe <type>                      print one node type's pin signature
  query <network-file>                 summarize a saved network
  evaluate <network-file> <node-id>    evaluate one node and print its outputs
  scene <network-file>                 evaluate every visible node and print the scene
  edit [--code=text] <network-file>    apply a text-format edit, print the result
  batch <config.json>                  run a batch pipeline`)
}

//-----------------------------------------------------------------------------

func cmdNodes(args []string) error {
	fs := flag.NewFlagSet("nodes", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	verbose := fs.Bool("verbose", false, "print pin signatures")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, t := range network.List(*category) {
		fmt.Printf("%-24s %s\n", t.Name, t.Category)
		if *verbose {
			printSignature(t)
		}
	}
	return nil
}

func cmdDescribe(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("describe requires a node type name")
	}
	t, ok := network.Lookup(args[0])
	if !ok {
		return fmt.Errorf("no such node type %q", args[0])
	}
	fmt.Printf("%s (%s)\n", t.Name, t.Category)
	if t.Doc != "" {
		fmt.Println("  " + t.Doc)
	}
	printSignature(t)
	return nil
}

func printSignature(t network.NodeType) {
	for _, p := range t.Inputs {
		fmt.Printf("  in  %-16s %s\n", p.Name, p.Kind)
	}
	for _, p := range t.Params {
		fmt.Printf("  param %-14s %s\n", p.Name, p.Kind)
	}
	for _, p := range t.Outputs {
		fmt.Printf("  out %-16s %s\n", p.Name, p.Kind)
	}
}

//-----------------------------------------------------------------------------

func cmdQuery(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("query requires a network file")
	}
	net, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("nodes:   %d\n", len(net.Nodes))
	fmt.Printf("wires:   %d\n", len(net.Wires))
	fmt.Printf("outputs: %d\n", len(net.Outputs))
	return nil
}

func cmdEvaluate(args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	pin := fs.String("output", "out", "output pin to read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return fmt.Errorf("evaluate requires a network file and a node id")
	}
	net, err := loadNetwork(rest[0])
	if err != nil {
		return err
	}
	eval := network.NewEvaluator(net)
	v, err := eval.Evaluate(context.Background(), network.NodeID(rest[1]), *pin)
	if err != nil {
		return err
	}
	fmt.Println(formatValue(v))
	printWarnings(eval.Warnings)
	return nil
}

// printWarnings prints accumulated non-fatal evaluation warnings to
// stderr (spec §7 "domain warnings... collected and returned alongside
// successful results").
func printWarnings(warnings []network.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// cmdScene evaluates every visible node in a saved network and prints
// one line per output pin (spec §4.C "Visibility & scene generation").
// A visible node that errors prints its error instead of aborting the
// rest of the scene.
func cmdScene(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("scene requires a network file")
	}
	net, err := loadNetwork(args[0])
	if err != nil {
		return err
	}
	scene, warnings := network.GenerateScene(context.Background(), net)
	for _, out := range scene {
		if out.Err != nil {
			fmt.Printf("%s.%s: error: %s\n", out.Node, out.Pin, out.Err)
			continue
		}
		fmt.Printf("%s.%s = %s\n", out.Node, out.Pin, formatValue(out.Value))
	}
	printWarnings(warnings)
	return nil
}

func formatValue(v network.Value) string {
	switch v.Kind {
	case network.KindStructure:
		return fmt.Sprintf("structure: %d atoms, %d bonds", v.Structure.Len(), len(v.Structure.Bonds()))
	case network.KindSDF3, network.KindSDF2:
		return v.Kind.String()
	case network.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case network.KindInt:
		return strconv.Itoa(v.Int)
	case network.KindBool:
		return strconv.FormatBool(v.Bool)
	case network.KindString:
		return v.String
	default:
		return v.Kind.String()
	}
}

//-----------------------------------------------------------------------------

func cmdEdit(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	code := fs.String("code", "", "text-format statements to append")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("edit requires a network file")
	}
	net, err := loadNetwork(rest[0])
	if err != nil {
		return err
	}

	patch := *code
	if patch == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		patch = string(data)
	}
	if patch != "" {
		existing, err := network.Serialize(net)
		if err != nil {
			return err
		}
		net, err = network.Parse(existing + "\n" + patch)
		if err != nil {
			return err
		}
	}
	out, err := network.Serialize(net)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func loadNetwork(path string) (*network.NodeNetwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return network.Parse(string(data))
}

//-----------------------------------------------------------------------------
// batch runs a JSON-described pipeline: load a network, evaluate a list
// of (node, pin) requests, and optionally write each result's structure
// to an XYZ file (spec §6 "batch <config>"). The JSON shape is resolved
// as an open question in DESIGN.md; it deliberately mirrors the
// network file's node-id/pin addressing so a batch config can be
// generated from the same tooling that writes network files.

type batchConfig struct {
	Network string `json:"network"`
	Jobs    []struct {
		Node   string `json:"node"`
		Pin    string `json:"pin"`
		Export string `json:"export,omitempty"`
	} `json:"jobs"`
}

func cmdBatch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("batch requires a config file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var cfg batchConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("batch: malformed config: %w", err)
	}
	net, err := loadNetwork(cfg.Network)
	if err != nil {
		return err
	}
	eval := network.NewEvaluator(net)
	for _, job := range cfg.Jobs {
		v, err := eval.Evaluate(context.Background(), network.NodeID(job.Node), job.Pin)
		if err != nil {
			return fmt.Errorf("batch: node %s.%s: %w", job.Node, job.Pin, err)
		}
		if job.Export == "" {
			fmt.Printf("%s.%s = %s\n", job.Node, job.Pin, formatValue(v))
			continue
		}
		if v.Kind != network.KindStructure {
			return fmt.Errorf("batch: node %s.%s: export requested but value is not a structure", job.Node, job.Pin)
		}
		if err := writeXYZ(v.Structure, job.Export); err != nil {
			return err
		}
	}
	printWarnings(eval.Warnings)
	return nil
}

// writeXYZ writes s to path in the plain XYZ format (spec §6's
// documented, non-core export boundary).
func writeXYZ(s *atom.Structure, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.WriteXYZ(f, "latticecad batch export")
}
