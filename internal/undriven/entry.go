package undriven

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/netlist-tools/netlint/internal/ast"
	"github.com/netlist-tools/netlint/internal/diag"
)

// flag selectors for the per-bit pair.
const (
	flagUsed = iota
	flagDriven
)

type bitFlags struct {
	used   bool
	driven bool
}

// varEntry tracks used/driven state for one signal declaration. Flags only
// ever transition false to true; the whole-vector flags and the per-bit flags
// are merged at report time.
type varEntry struct {
	varp        *ast.Var
	usedWhole   bool
	drivenWhole bool
	bits        []bitFlags // index 0 = least-significant declared bit
	log         *zap.Logger
}

func newVarEntry(varp *ast.Var) *varEntry {
	return &varEntry{
		varp: varp,
		bits: make([]bitFlags, varp.Width),
		log:  Logger(),
	}
}

// bitNumOk bounds-checks a bit index. Out-of-range contributions come from
// malformed or speculative ranges and are dropped, never an error.
func (e *varEntry) bitNumOk(bit int) bool {
	return bit >= 0 && bit < len(e.bits)
}

func (e *varEntry) flagAt(bit, which int) bool {
	if which == flagUsed {
		return e.bits[bit].used
	}
	return e.bits[bit].driven
}

func (e *varEntry) markUsedWhole() {
	e.log.Debug("set u[*]", zap.String("signal", e.varp.Name))
	e.usedWhole = true
}

func (e *varEntry) markDrivenWhole() {
	e.log.Debug("set d[*]", zap.String("signal", e.varp.Name))
	e.drivenWhole = true
}

func (e *varEntry) markUsedBits(lsb, width int) {
	e.log.Debug("set u[n]", zap.String("signal", e.varp.Name),
		zap.Int("lsb", lsb), zap.Int("width", width))
	for i := 0; i < width; i++ {
		if e.bitNumOk(lsb + i) {
			e.bits[lsb+i].used = true
		}
	}
}

func (e *varEntry) markDrivenBits(lsb, width int) {
	e.log.Debug("set d[n]", zap.String("signal", e.varp.Name),
		zap.Int("lsb", lsb), zap.Int("width", width))
	for i := 0; i < width; i++ {
		if e.bitNumOk(lsb + i) {
			e.bits[lsb+i].driven = true
		}
	}
}

// bitNames renders the bit positions whose selected flag is still false, as
// comma-separated maximal runs inside brackets. Runs are discovered scanning
// from the most-significant bit down, and each run's two endpoints are
// printed in declaration order: ascending-numbered declarations as "lo:hi",
// descending-numbered as "hi:lo", single bits as one index. Indices are
// declared indices (local index plus declared lsb offset).
func (e *varEntry) bitNames(which int) string {
	var bits strings.Builder
	prev := false
	msb := 0
	// bit==-1 is one extra iteration so the scan always ends with prev=false
	for bit := len(e.bits) - 1; bit >= -1; bit-- {
		if bit >= 0 && !e.flagAt(bit, which) {
			if !prev {
				prev = true
				msb = bit
			}
		} else if prev {
			lsb := bit + 1
			if bits.Len() > 0 {
				bits.WriteString(",")
			}
			lo := lsb + e.varp.Lsb
			hi := msb + e.varp.Lsb
			switch {
			case lsb == msb:
				bits.WriteString(strconv.Itoa(lo))
			case e.varp.Ascending:
				bits.WriteString(strconv.Itoa(lo) + ":" + strconv.Itoa(hi))
			default:
				bits.WriteString(strconv.Itoa(hi) + ":" + strconv.Itoa(lo))
			}
			prev = false
		}
	}
	return "[" + bits.String() + "]"
}

// reportViolations merges the per-bit observations into the whole-vector
// flags and emits the final verdict for this signal. Parameters and generate
// variables are not real signals and are skipped entirely.
func (e *varEntry) reportViolations(sink *diag.Sink) {
	varp := e.varp
	if varp.Param || varp.GenVar {
		return
	}
	allU := true
	allD := true
	anyU := e.usedWhole
	anyD := e.drivenWhole
	for _, f := range e.bits {
		allU = allU && f.used
		anyU = anyU || f.used
		allD = allD && f.driven
		anyD = anyD || f.driven
	}
	if allU {
		e.usedWhole = true
	}
	if allD {
		e.drivenWhole = true
	}

	switch {
	case e.usedWhole && e.drivenWhole:
		// Fully covered, nothing to report.
	case !anyU && !anyD:
		sink.Add(diag.Diagnostic{
			Category: diag.Undriven,
			Signal:   varp.Name,
			Message:  "Signal is not driven, nor used: " + varp.Name,
		})
	default:
		if !e.usedWhole && !anyU {
			sink.Add(diag.Diagnostic{
				Category: diag.Unused,
				Signal:   varp.Name,
				Message:  "Signal is not used: " + varp.Name,
			})
		} else if !e.usedWhole {
			names := e.bitNames(flagUsed)
			sink.Add(diag.Diagnostic{
				Category: diag.Unused,
				Signal:   varp.Name,
				Message:  "Bits of signal are not used: " + varp.Name + names,
				Bits:     names,
			})
		}
		if !e.drivenWhole && !anyD {
			sink.Add(diag.Diagnostic{
				Category: diag.Undriven,
				Signal:   varp.Name,
				Message:  "Signal is not driven: " + varp.Name,
			})
		} else if !e.drivenWhole {
			names := e.bitNames(flagDriven)
			sink.Add(diag.Diagnostic{
				Category: diag.Undriven,
				Signal:   varp.Name,
				Message:  "Bits of signal are not driven: " + varp.Name + names,
				Bits:     names,
			})
		}
	}
}
