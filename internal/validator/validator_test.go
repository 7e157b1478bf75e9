package validator

import (
	"testing"
)

// TestNetlistContractEnforcement exercises the CUE contract validation.
// A document the elaborator garbles must fail here, before any pass walks it.
func TestNetlistContractEnforcement(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	varNode := func(width interface{}) map[string]interface{} {
		return map[string]interface{}{
			"kind":  "var",
			"id":    "v0",
			"name":  "sig",
			"width": width,
		}
	}
	module := func(stmts ...interface{}) map[string]interface{} {
		return map[string]interface{}{
			"modules": []interface{}{
				map[string]interface{}{"name": "top", "stmts": stmts},
			},
		}
	}

	tests := []struct {
		name    string
		data    map[string]interface{}
		wantErr bool
	}{
		{
			name:    "empty_design",
			data:    map[string]interface{}{"modules": []interface{}{}},
			wantErr: false,
		},
		{
			name:    "valid_var",
			data:    module(varNode(8)),
			wantErr: false,
		},
		{
			name: "valid_nested_sel",
			data: module(
				varNode(8),
				map[string]interface{}{
					"kind":  "sel",
					"from":  map[string]interface{}{"kind": "varref", "var": "v0"},
					"low":   map[string]interface{}{"kind": "const", "value": 2},
					"width": 3,
				},
			),
			wantErr: false,
		},
		{
			name:    "zero_width_var",
			data:    module(varNode(0)),
			wantErr: true, // width must be >= 1
		},
		{
			name:    "string_width",
			data:    module(varNode("8")),
			wantErr: true,
		},
		{
			name: "unknown_node_kind",
			data: module(map[string]interface{}{"kind": "banana"}),
			// Not in the kind enum!
			wantErr: true,
		},
		{
			name: "unnamed_module",
			data: map[string]interface{}{
				"modules": []interface{}{
					map[string]interface{}{"name": "", "stmts": []interface{}{}},
				},
			},
			wantErr: true,
		},
		{
			name: "varref_without_target",
			data: module(map[string]interface{}{"kind": "varref", "var": ""}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorsAreDetailed(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	bad := map[string]interface{}{
		"modules": []interface{}{
			map[string]interface{}{
				"name": "top",
				"stmts": []interface{}{
					map[string]interface{}{"kind": "var", "id": "a", "name": "a", "width": -1},
				},
			},
		},
	}

	errs := v.ValidationErrors(bad)
	if len(errs) == 0 {
		t.Fatalf("expected validation errors for negative width")
	}
}
