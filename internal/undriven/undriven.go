// Package undriven checks an elaborated design for unused and undriven
// signals.
//
// The pass makes a single pass over the tree:
//
//	Sel(VarRef, Const) marks only the selected bits as used/driven
//	any other VarRef marks all bits as used/driven
//	then every tracked signal reports its unused/undriven verdict
//
// Coverage and trace constructs are not sinks: a signal read only by
// instrumentation is still reported as unused.
package undriven

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/netlist-tools/netlint/internal/ast"
	"github.com/netlist-tools/netlint/internal/diag"
)

// maxTreeDepth bounds recursion. A well-formed design tree is nowhere near
// this deep; exceeding it means a cycle or a broken elaborator, which is not
// recoverable.
const maxTreeDepth = 1 << 16

type visitor struct {
	// entries maps each signal declaration to its tracking entry. The map
	// lives only for one Check invocation; nothing is ever stored on the
	// tree itself, so repeated runs over the same design are independent.
	entries map[*ast.Var]*varEntry
	// order preserves first-reference order for deterministic reporting.
	order []*varEntry

	sink  diag.Sink
	depth int
}

// Check runs the unused/undriven analysis over root and returns the
// diagnostics for every signal declared in the tree. Running it twice on an
// unmodified tree yields identical results.
func Check(root ast.Node) []diag.Diagnostic {
	v := &visitor{entries: make(map[*ast.Var]*varEntry)}
	v.visit(root)
	// The traversal must finish before any entry reports: a signal's last
	// reference may appear anywhere in the tree and flags are only ever
	// added, so finalizing early would under-report usage.
	for _, entry := range v.order {
		entry.reportViolations(&v.sink)
	}
	return v.sink.Diagnostics()
}

// entry returns the tracking entry for varp, creating it on first reference.
func (v *visitor) entry(varp *ast.Var) *varEntry {
	if varp == nil {
		panic("undriven: reference to a declaration missing from the tree")
	}
	if e, ok := v.entries[varp]; ok {
		return e
	}
	Logger().Debug("create", zap.String("signal", varp.Name))
	e := newVarEntry(varp)
	v.entries[varp] = e
	v.order = append(v.order, e)
	return e
}

func (v *visitor) visit(n ast.Node) {
	if n == nil {
		return
	}
	v.depth++
	if v.depth > maxTreeDepth {
		panic(fmt.Sprintf("undriven: tree deeper than %d nodes, cycle suspected", maxTreeDepth))
	}
	defer func() { v.depth-- }()

	switch n := n.(type) {
	case *ast.Var:
		entry := v.entry(n)
		if n.Input || n.Public || n.RWPublic {
			entry.markDrivenWhole()
		}
		if n.Output || n.Public || n.RWPublic || n.RdPublic {
			entry.markUsedWhole()
		}
		// Discover signals used in range bounds, initial values, etc.
		v.visitChildren(n)

	case *ast.ArraySel:
		// Array indices are rarely compile-time constants here, so no
		// per-element precision is attempted: any reference inside falls
		// through to the whole-signal VarRef rule.
		v.visitChildren(n)

	case *ast.Sel:
		ref, refOK := n.From.(*ast.VarRef)
		low, lowOK := n.Low.(*ast.Const)
		if refOK && lowOK && !low.FourState {
			entry := v.entry(ref.Target)
			lsb := int(low.Value)
			if ref.LValue {
				entry.markDrivenBits(lsb, n.Width)
			} else {
				entry.markUsedBits(lsb, n.Width)
			}
			// The subtree is fully explained; do not recurse.
		} else {
			// Dynamic or partially-unknown select index: fall back to
			// whole-signal tracking via the VarRef rule below.
			v.visitChildren(n)
		}

	case *ast.VarRef:
		entry := v.entry(n.Target)
		if n.LValue {
			entry.markDrivenWhole()
		} else {
			entry.markUsedWhole()
		}

	// Coverage and trace artifacts shouldn't count as a sink.
	case *ast.CoverDecl:
	case *ast.CoverInc:
	case *ast.CoverToggle:
	case *ast.TraceDecl:
	case *ast.TraceInc:

	case *ast.Const:

	default:
		v.visitChildren(n)
	}
}

func (v *visitor) visitChildren(n ast.Node) {
	for _, child := range n.Children() {
		v.visit(child)
	}
}
