// netlint-facts dumps the raw analysis results for a netlist as JSON,
// before any severity policy is applied. External rule engines can consume
// this instead of the rendered lint output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/netlist-tools/netlint/internal/diag"
	"github.com/netlist-tools/netlint/internal/netlist"
	"github.com/netlist-tools/netlint/internal/undriven"
)

type facts struct {
	Modules     int               `json:"modules"`
	Signals     int               `json:"signals"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func main() {
	output := flag.String("output", "", "write facts JSON to file (default: stdout)")
	flag.StringVar(output, "o", "", "write facts JSON to file (shorthand)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: netlint-facts [--output file] <netlist.json>")
		os.Exit(1)
	}

	design, err := netlist.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	modules, signals := netlist.Count(design)
	diags := undriven.Check(design)
	if diags == nil {
		diags = []diag.Diagnostic{}
	}

	out := facts{Modules: modules, Signals: signals, Diagnostics: diags}

	if *output != "" {
		if err := writeJSON(*output, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing facts: %v\n", err)
			os.Exit(1)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding facts: %v\n", err)
		os.Exit(1)
	}
}

func writeJSON(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
