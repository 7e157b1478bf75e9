package validator

// The CUE validator is the contract guard between the upstream elaborator
// and the lint passes. Elaborated designs arrive as JSON; if a field name
// changes or a node kind is misspelled, the passes would silently see an
// empty or garbled tree and report nothing. Validation turns that into an
// immediate, explicit failure before any analysis runs.

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed netlist_schema.cue
var schemaFS embed.FS

// Validator validates serialized netlist documents against the CUE schema
// contract. If the document doesn't match the schema, we fail immediately
// with a clear error rather than letting the passes walk bad data.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a new Validator with the embedded CUE schema
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("netlist_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks that the input data conforms to the netlist schema.
// Returns nil if valid, or a detailed error explaining what failed.
func (v *Validator) Validate(data interface{}) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling data to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates JSON bytes directly against the schema
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", dataValue.Err())
	}

	netlistDef := v.schema.LookupPath(cue.ParsePath("#Netlist"))
	if netlistDef.Err() != nil {
		return fmt.Errorf("looking up #Netlist definition: %w", netlistDef.Err())
	}

	// Unify the data with the schema (this is CUE's type checking)
	unified := netlistDef.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidationErrors returns detailed information about all validation errors
func (v *Validator) ValidationErrors(data interface{}) []string {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return []string{fmt.Sprintf("compile error: %v", dataValue.Err())}
	}

	netlistDef := v.schema.LookupPath(cue.ParsePath("#Netlist"))
	if netlistDef.Err() != nil {
		return []string{fmt.Sprintf("schema lookup error: %v", netlistDef.Err())}
	}

	unified := netlistDef.Unify(dataValue)
	err = unified.Validate()
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}
