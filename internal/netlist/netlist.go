// Package netlist loads serialized netlist documents produced by the
// upstream elaborator and builds the design tree the lint passes walk.
//
// A document is a JSON tree of tagged node objects. Signal declarations
// appear inline exactly once, carry a document-unique id, and later
// references point back at that id. The document is validated against the
// CUE contract before any node is built, so the builder only has to deal
// with structurally sound input.
package netlist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/netlist-tools/netlint/internal/ast"
	"github.com/netlist-tools/netlint/internal/validator"
)

type document struct {
	Modules []rawModule `json:"modules"`
}

type rawModule struct {
	Name  string    `json:"name"`
	Stmts []rawNode `json:"stmts"`
}

// rawNode is the union of all node encodings; Kind selects which fields
// are meaningful.
type rawNode struct {
	Kind string `json:"kind"`

	// kind == "var"
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Width     int       `json:"width,omitempty"`
	Lsb       int       `json:"lsb,omitempty"`
	Ascending bool      `json:"ascending,omitempty"`
	Input     bool      `json:"input,omitempty"`
	Output    bool      `json:"output,omitempty"`
	Public    bool      `json:"public,omitempty"`
	RWPublic  bool      `json:"rwPublic,omitempty"`
	RdPublic  bool      `json:"rdPublic,omitempty"`
	Param     bool      `json:"param,omitempty"`
	GenVar    bool      `json:"genvar,omitempty"`
	Attrs     []rawNode `json:"attrs,omitempty"`

	// kind == "varref"
	Var    string `json:"var,omitempty"`
	LValue bool   `json:"lvalue,omitempty"`

	// kind == "sel" / "arraysel"
	From  *rawNode `json:"from,omitempty"`
	Low   *rawNode `json:"low,omitempty"`
	Index *rawNode `json:"index,omitempty"`

	// kind == "const"
	Value     uint64 `json:"value,omitempty"`
	FourState bool   `json:"fourstate,omitempty"`

	// kind == "assign"
	Lhs *rawNode `json:"lhs,omitempty"`
	Rhs *rawNode `json:"rhs,omitempty"`

	// kind == "block" and instrumentation kinds
	Stmts []rawNode `json:"stmts,omitempty"`
	Body  []rawNode `json:"body,omitempty"`
}

// Load validates and decodes a serialized netlist into a design tree.
func Load(data []byte) (*ast.Design, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("netlist contract: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing netlist: %w", err)
	}

	b := &builder{vars: make(map[string]*ast.Var)}
	design := &ast.Design{}
	for _, m := range doc.Modules {
		mod := &ast.Module{Name: m.Name}
		for i := range m.Stmts {
			node, err := b.build(&m.Stmts[i])
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
			mod.Stmts = append(mod.Stmts, node)
		}
		design.Modules = append(design.Modules, mod)
	}
	return design, nil
}

// LoadFile loads a serialized netlist from disk.
func LoadFile(path string) (*ast.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading netlist file: %w", err)
	}
	design, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return design, nil
}

type builder struct {
	vars map[string]*ast.Var
}

func (b *builder) build(raw *rawNode) (ast.Node, error) {
	switch raw.Kind {
	case "var":
		if _, ok := b.vars[raw.ID]; ok {
			return nil, fmt.Errorf("duplicate var id %q", raw.ID)
		}
		if raw.Width < 1 {
			return nil, fmt.Errorf("var %q: width %d is not positive", raw.Name, raw.Width)
		}
		varp := &ast.Var{
			Name:      raw.Name,
			Width:     raw.Width,
			Lsb:       raw.Lsb,
			Ascending: raw.Ascending,
			Input:     raw.Input,
			Output:    raw.Output,
			Public:    raw.Public,
			RWPublic:  raw.RWPublic,
			RdPublic:  raw.RdPublic,
			Param:     raw.Param,
			GenVar:    raw.GenVar,
		}
		// Register before building attrs: range bounds may not self-refer,
		// but a broken document that does should fail on its merits, not
		// with a spurious dangling-id error.
		b.vars[raw.ID] = varp
		attrs, err := b.buildList(raw.Attrs)
		if err != nil {
			return nil, fmt.Errorf("var %q attrs: %w", raw.Name, err)
		}
		varp.Attrs = attrs
		return varp, nil

	case "varref":
		target, ok := b.vars[raw.Var]
		if !ok {
			return nil, fmt.Errorf("reference to undeclared var id %q", raw.Var)
		}
		return &ast.VarRef{Target: target, LValue: raw.LValue}, nil

	case "sel":
		from, err := b.buildChild("sel.from", raw.From)
		if err != nil {
			return nil, err
		}
		low, err := b.buildChild("sel.low", raw.Low)
		if err != nil {
			return nil, err
		}
		if raw.Width < 1 {
			return nil, fmt.Errorf("sel: width %d is not positive", raw.Width)
		}
		return &ast.Sel{From: from, Low: low, Width: raw.Width}, nil

	case "arraysel":
		from, err := b.buildChild("arraysel.from", raw.From)
		if err != nil {
			return nil, err
		}
		index, err := b.buildChild("arraysel.index", raw.Index)
		if err != nil {
			return nil, err
		}
		return &ast.ArraySel{From: from, Index: index}, nil

	case "const":
		return &ast.Const{Value: raw.Value, FourState: raw.FourState}, nil

	case "assign":
		lhs, err := b.buildChild("assign.lhs", raw.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := b.buildChild("assign.rhs", raw.Rhs)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Lhs: lhs, Rhs: rhs}, nil

	case "block":
		stmts, err := b.buildList(raw.Stmts)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Stmts: stmts}, nil

	case "coverdecl":
		body, err := b.buildList(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.CoverDecl{Body: body}, nil

	case "coverinc":
		body, err := b.buildList(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.CoverInc{Body: body}, nil

	case "covertoggle":
		body, err := b.buildList(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.CoverToggle{Body: body}, nil

	case "tracedecl":
		body, err := b.buildList(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.TraceDecl{Body: body}, nil

	case "traceinc":
		body, err := b.buildList(raw.Body)
		if err != nil {
			return nil, err
		}
		return &ast.TraceInc{Body: body}, nil

	default:
		return nil, fmt.Errorf("unknown node kind %q", raw.Kind)
	}
}

func (b *builder) buildChild(field string, raw *rawNode) (ast.Node, error) {
	if raw == nil {
		return nil, fmt.Errorf("%s: missing node", field)
	}
	return b.build(raw)
}

func (b *builder) buildList(raws []rawNode) ([]ast.Node, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]ast.Node, 0, len(raws))
	for i := range raws {
		node, err := b.build(&raws[i])
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// Count walks a design and tallies modules and signal declarations; the
// runner reports these alongside violations.
func Count(design *ast.Design) (modules, signals int) {
	modules = len(design.Modules)
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if _, ok := n.(*ast.Var); ok {
			signals++
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, m := range design.Modules {
		walk(m)
	}
	return modules, signals
}
