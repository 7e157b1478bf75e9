// Package diag is the diagnostic sink shared by the lint passes. Diagnostics
// are advisory: collecting any number of them never stops a pass, and
// severity is assigned later by the policy layer.
package diag

// Category classifies a diagnostic.
type Category string

const (
	// Unused flags a signal (or bits of it) that is never read.
	Unused Category = "UNUSED"
	// Undriven flags a signal (or bits of it) that is never assigned.
	Undriven Category = "UNDRIVEN"
)

// Diagnostic is one finding for one signal.
type Diagnostic struct {
	Category Category `json:"category"`
	Signal   string   `json:"signal"`
	Message  string   `json:"message"`

	// Bits is the rendered bit-range text for partial violations
	// (e.g. "[7:4]" or "[9,3:1]"), empty for whole-signal findings.
	Bits string `json:"bits,omitempty"`
}

// Sink accumulates diagnostics from a pass run.
type Sink struct {
	diags []Diagnostic
}

// Add records a diagnostic.
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Diagnostics returns everything collected so far, in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Count returns the number of collected diagnostics.
func (s *Sink) Count() int {
	return len(s.diags)
}
