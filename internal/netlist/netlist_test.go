package netlist

import (
	"strings"
	"testing"

	"github.com/netlist-tools/netlint/internal/ast"
)

const smallDoc = `{
  "modules": [
    {
      "name": "top",
      "stmts": [
        {"kind": "var", "id": "clk", "name": "clk", "width": 1, "input": true},
        {"kind": "var", "id": "count", "name": "count", "width": 8},
        {
          "kind": "assign",
          "lhs": {
            "kind": "sel",
            "from": {"kind": "varref", "var": "count", "lvalue": true},
            "low": {"kind": "const", "value": 0},
            "width": 4
          },
          "rhs": {"kind": "varref", "var": "clk"}
        },
        {"kind": "coverinc", "body": [{"kind": "varref", "var": "count"}]}
      ]
    }
  ]
}`

func TestLoadSmallDocument(t *testing.T) {
	design, err := Load([]byte(smallDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(design.Modules) != 1 || design.Modules[0].Name != "top" {
		t.Fatalf("unexpected modules: %+v", design.Modules)
	}

	stmts := design.Modules[0].Stmts
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}

	clk, ok := stmts[0].(*ast.Var)
	if !ok || clk.Name != "clk" || !clk.Input || clk.Width != 1 {
		t.Fatalf("unexpected clk decl: %+v", stmts[0])
	}

	assign, ok := stmts[2].(*ast.Assign)
	if !ok {
		t.Fatalf("expected assign, got %T", stmts[2])
	}
	sel, ok := assign.Lhs.(*ast.Sel)
	if !ok || sel.Width != 4 {
		t.Fatalf("unexpected lhs: %+v", assign.Lhs)
	}
	ref, ok := sel.From.(*ast.VarRef)
	if !ok || !ref.LValue {
		t.Fatalf("expected lvalue varref, got %+v", sel.From)
	}
	count, _ := stmts[1].(*ast.Var)
	if ref.Target != count {
		t.Fatalf("sel base should reference the count declaration")
	}

	cover, ok := stmts[3].(*ast.CoverInc)
	if !ok || len(cover.Body) != 1 {
		t.Fatalf("unexpected coverinc: %+v", stmts[3])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown_kind",
			doc:     `{"modules": [{"name": "m", "stmts": [{"kind": "frob"}]}]}`,
			wantErr: "contract",
		},
		{
			name:    "nonpositive_width",
			doc:     `{"modules": [{"name": "m", "stmts": [{"kind": "var", "id": "a", "name": "a", "width": 0}]}]}`,
			wantErr: "contract",
		},
		{
			name:    "dangling_reference",
			doc:     `{"modules": [{"name": "m", "stmts": [{"kind": "varref", "var": "ghost"}]}]}`,
			wantErr: "undeclared var id",
		},
		{
			name: "duplicate_id",
			doc: `{"modules": [{"name": "m", "stmts": [
				{"kind": "var", "id": "a", "name": "a", "width": 1},
				{"kind": "var", "id": "a", "name": "b", "width": 1}
			]}]}`,
			wantErr: "duplicate var id",
		},
		{
			name:    "not_json",
			doc:     `]`,
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestReferenceBeforeDeclarationFails(t *testing.T) {
	// Declarations appear at their first occurrence; a forward reference is
	// a malformed document, not something to fix up silently.
	doc := `{"modules": [{"name": "m", "stmts": [
		{"kind": "varref", "var": "late"},
		{"kind": "var", "id": "late", "name": "late", "width": 1}
	]}]}`
	if _, err := Load([]byte(doc)); err == nil {
		t.Fatalf("expected error for forward reference")
	}
}

func TestCount(t *testing.T) {
	design, err := Load([]byte(smallDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	modules, signals := Count(design)
	if modules != 1 || signals != 2 {
		t.Fatalf("expected 1 module / 2 signals, got %d / %d", modules, signals)
	}
}
