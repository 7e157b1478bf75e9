// Package lint wires the pipeline together: load and validate the netlist,
// run the analysis passes, evaluate the severity policy, and render the
// result.
package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/netlist-tools/netlint/internal/config"
	"github.com/netlist-tools/netlint/internal/diag"
	"github.com/netlist-tools/netlint/internal/netlist"
	"github.com/netlist-tools/netlint/internal/policy"
	"github.com/netlist-tools/netlint/internal/undriven"
)

// Runner runs the lint pipeline over one netlist file
type Runner struct {
	Config *config.Config

	// Verbose enables mark-transition tracing
	Verbose bool

	// JSONOutput switches Report to structured output
	JSONOutput bool
}

// NewWithConfig creates a Runner with the given configuration
func NewWithConfig(cfg *config.Config) *Runner {
	return &Runner{Config: cfg, Verbose: cfg.Verbose}
}

// LintResult is the structured result of running the linter
// This can be serialized to JSON for programmatic consumption
type LintResult struct {
	// Violations found by policy evaluation
	Violations []policy.Violation `json:"violations"`

	// Summary counts
	Summary policy.Summary `json:"summary"`

	// Netlist statistics
	Stats Stats `json:"stats"`
}

// Stats provides counts of analyzed elements
type Stats struct {
	Modules     int `json:"modules"`
	Signals     int `json:"signals"`
	Diagnostics int `json:"diagnostics"`
}

// HasErrors reports whether any violation carries error severity
func (r *LintResult) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Run loads path, runs the analysis, and applies the severity policy.
func (r *Runner) Run(path string) (*LintResult, error) {
	if r.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			undriven.SetLogger(l)
		}
	}

	design, err := netlist.LoadFile(path)
	if err != nil {
		return nil, err
	}
	modules, signals := netlist.Count(design)

	diags := undriven.Check(design)
	if diags == nil {
		diags = []diag.Diagnostic{}
	}

	engine, err := r.engine()
	if err != nil {
		return nil, err
	}

	cfg := r.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	input := policy.Input{
		Diagnostics: diags,
		Config: policy.RuleConfig{
			Rules:         cfg.Rules,
			IgnoreSignals: cfg.IgnoreSignals,
		},
	}
	if input.Config.Rules == nil {
		input.Config.Rules = map[string]string{}
	}
	if input.Config.IgnoreSignals == nil {
		input.Config.IgnoreSignals = []string{}
	}

	evaluated, err := engine.Evaluate(input)
	if err != nil {
		return nil, fmt.Errorf("policy evaluation: %w", err)
	}

	result := &LintResult{
		Violations: evaluated.Violations,
		Summary:    evaluated.Summary,
		Stats: Stats{
			Modules:     modules,
			Signals:     signals,
			Diagnostics: len(diags),
		},
	}
	if result.Violations == nil {
		result.Violations = []policy.Violation{}
	}
	return result, nil
}

func (r *Runner) engine() (*policy.Engine, error) {
	if r.Config != nil && r.Config.PolicyDir != "" {
		return policy.NewFromDir(r.Config.PolicyDir)
	}
	return policy.New()
}

// Report writes the result as text or JSON depending on r.JSONOutput.
func (r *Runner) Report(w io.Writer, result *LintResult) error {
	if r.JSONOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, v := range result.Violations {
		fmt.Fprintf(w, "%%%s-%s: %s\n", severityTag(v.Severity), strings.ToUpper(v.Rule), v.Message)
	}

	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "  Modules:  %d\n", result.Stats.Modules)
	fmt.Fprintf(w, "  Signals:  %d\n", result.Stats.Signals)
	fmt.Fprintf(w, "  Errors:   %d\n", result.Summary.Errors)
	fmt.Fprintf(w, "  Warnings: %d\n", result.Summary.Warnings)
	fmt.Fprintf(w, "  Info:     %d\n", result.Summary.Info)
	return nil
}

func severityTag(severity string) string {
	switch severity {
	case "error":
		return "Error"
	case "warning":
		return "Warning"
	default:
		return "Info"
	}
}
