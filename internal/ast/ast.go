// Package ast defines the elaborated design tree consumed by the lint passes.
//
// The tree arrives from the upstream elaborator (via internal/netlist) and is
// read-only as far as the passes are concerned: nodes expose their kind
// through Go's type system and their children through Children(). Passes
// dispatch with a type switch and recurse explicitly, so a pass can decide
// per kind whether a subtree is visited at all.
package ast

// Node is implemented by every design tree node.
type Node interface {
	Children() []Node
}

// Design is the tree root produced by elaboration.
type Design struct {
	Modules []*Module
}

func (d *Design) Children() []Node {
	out := make([]Node, len(d.Modules))
	for i, m := range d.Modules {
		out[i] = m
	}
	return out
}

// Module is one elaborated module instance.
type Module struct {
	Name  string
	Stmts []Node
}

func (m *Module) Children() []Node { return m.Stmts }

// Block is a generic statement container (process body, generate body, ...).
type Block struct {
	Stmts []Node
}

func (b *Block) Children() []Node { return b.Stmts }

// Assign is a continuous or procedural assignment. Lvalue context is carried
// on the VarRef nodes inside Lhs, not on the assignment itself.
type Assign struct {
	Lhs Node
	Rhs Node
}

func (a *Assign) Children() []Node { return []Node{a.Lhs, a.Rhs} }

// Var is a signal declaration. Its pointer identity is the stable identity
// referenced by VarRef nodes; a declaration appears exactly once in the tree.
type Var struct {
	Name string

	// Width is the bit width of the vector, at least 1.
	Width int
	// Lsb is the declared index of the least-significant bit.
	Lsb int
	// Ascending is true when declared bit indices increase from the
	// least-significant bit upward ([0:7] style declarations).
	Ascending bool

	Input    bool // input port
	Output   bool // output port
	Public   bool // publicly readable and writable
	RWPublic bool // publicly writable (forced from outside)
	RdPublic bool // publicly readable only
	Param    bool // compile-time parameter, not a real signal
	GenVar   bool // generate loop variable, not a real signal

	// Attrs holds sub-expressions inside the declaration (range bounds,
	// initial values) which may themselves reference other signals.
	Attrs []Node
}

func (v *Var) Children() []Node { return v.Attrs }

// VarRef is a reference to a declared signal. LValue is true when the
// reference sits in assignment-target position.
type VarRef struct {
	Target *Var
	LValue bool
}

func (r *VarRef) Children() []Node { return nil }

// Sel extracts Width contiguous bits of From, starting at the bit selected
// by Low. Low is an arbitrary expression; only a fully-known constant allows
// bit-precise tracking.
type Sel struct {
	From  Node
	Low   Node
	Width int
}

func (s *Sel) Children() []Node { return []Node{s.From, s.Low} }

// ArraySel selects one element of an array by index.
type ArraySel struct {
	From  Node
	Index Node
}

func (s *ArraySel) Children() []Node { return []Node{s.From, s.Index} }

// Const is a literal value. FourState marks values carrying X/Z bits, which
// cannot be treated as compile-time-known indices.
type Const struct {
	Value     uint64
	FourState bool
}

func (c *Const) Children() []Node { return nil }

// Instrumentation constructs. Their bodies read signals purely for
// observability, so lint passes must not treat those reads as genuine use.

// CoverDecl declares a coverage point.
type CoverDecl struct {
	Body []Node
}

func (c *CoverDecl) Children() []Node { return c.Body }

// CoverInc increments a coverage point.
type CoverInc struct {
	Body []Node
}

func (c *CoverInc) Children() []Node { return c.Body }

// CoverToggle tracks toggle coverage of a signal.
type CoverToggle struct {
	Body []Node
}

func (c *CoverToggle) Children() []Node { return c.Body }

// TraceDecl declares an execution-trace point.
type TraceDecl struct {
	Body []Node
}

func (t *TraceDecl) Children() []Node { return t.Body }

// TraceInc records a value into the execution trace.
type TraceInc struct {
	Body []Node
}

func (t *TraceInc) Children() []Node { return t.Body }
