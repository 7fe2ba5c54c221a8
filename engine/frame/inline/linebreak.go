package inline

import (
	"fmt"

	"github.com/npillmayer/xtl/core"
	"github.com/npillmayer/xtl/core/config"
	"github.com/npillmayer/xtl/core/dimen"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/khipu"
)

// Breakpoint is a position in a khipu where a line ends.
type Breakpoint struct {
	Position int   // index of the penalty or discretionary knot
	Line     int   // number of the line ending here, starting at 0
	Demerits int64 // total demerits up to here, optimal breaking only
	Overflow bool  // line cannot be made to fit
}

// Breakpoints is the result of breaking a paragraph into lines. It holds one
// breakpoint per line.
type Breakpoints []Breakpoint

func (bps Breakpoints) String() string {
	s := "["
	for i, bp := range bps {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", bp.Position)
	}
	return s + "]"
}

// BreakOptions control line breaking.
type BreakOptions struct {
	Mode      config.JustifyMode
	Justified bool // lines may shrink to fit
	Registers *params.TypesettingRegisters
}

// BreakLines breaks a khipu into lines fitting into a paragraph shape.
// Lines are broken at penalties and discretionaries only. A forced penalty
// always ends a line. If an item is wider than its line and there is no way
// to break it, it is set on a line of its own, which will overflow; this is
// reported as an Overflow diagnostic.
//
// In optimal mode, the total demerits over all lines are minimized. If
// optimal breaking finds no feasible solution, the paragraph is broken with
// the first-fit breaker.
func BreakLines(k *khipu.Khipu, shape ParShape, opts BreakOptions) (Breakpoints, core.Diagnostics) {
	if opts.Registers == nil {
		opts.Registers = params.NewTypesettingRegisters()
	}
	if k == nil || k.Length() == 0 {
		return Breakpoints{}, nil
	}
	if opts.Mode == config.JustifyOptimal {
		if bps, ok := breakOptimal(k, shape, opts); ok {
			return bps, overflowDiagnostics(k, bps)
		}
		tracer().Infof("no feasible breaks found, falling back to first fit")
	}
	bps := breakFirstFit(k, shape, opts)
	return bps, overflowDiagnostics(k, bps)
}

func overflowDiagnostics(k *khipu.Khipu, bps Breakpoints) core.Diagnostics {
	var diags core.Diagnostics
	start := 0
	for _, bp := range bps {
		if bp.Overflow {
			diags.Warnf(core.Overflow, core.Location{Offset: textPosition(k, start)},
				"line %d overflows: %q", bp.Line+1, k.Text(start, bp.Position))
		}
		start = lineStart(k, bp.Position)
	}
	return diags
}

// lineStart returns the index of the first knot of the line following a
// break at position pos. Discardable items after a break vanish.
func lineStart(k *khipu.Khipu, pos int) int {
	i := pos + 1
	for i < k.Length() && khipu.IsDiscardable(k.At(i)) {
		if p, ok := k.At(i).(*khipu.Penalty); ok && p.IsForced() {
			break
		}
		i++
	}
	return i
}

func textPosition(k *khipu.Khipu, i int) int {
	if i >= k.Length() {
		return 0
	}
	switch kn := k.At(i).(type) {
	case *khipu.TextBox:
		return kn.Position
	case *khipu.Glue:
		return kn.Position
	case *khipu.Penalty:
		return kn.Position
	}
	return 0
}

// penaltyOf returns the penalty of a breakpoint knot.
func penaltyOf(kn khipu.Knot) (int, bool) {
	switch p := kn.(type) {
	case *khipu.Penalty:
		return p.Value, p.IsForced()
	case *khipu.Discretionary:
		return p.Penalty, false
	}
	return khipu.InfinityPenalty, false
}

func preWidth(kn khipu.Knot) dimen.Dimen {
	if d, ok := kn.(*khipu.Discretionary); ok {
		return d.PreWidth()
	}
	return 0
}

// --- Measuring -------------------------------------------------------------

// measure holds accumulated widths of a segment of a khipu.
type measure struct {
	w       dimen.Dimen // natural width
	stretch dimen.Dimen
	shrink  dimen.Dimen
	fil     int // number of infinitely stretchable glues
}

func (m *measure) add(kn khipu.Knot) {
	m.w += kn.W()
	m.shrink += kn.W() - kn.MinW()
	if g, ok := kn.(*khipu.Glue); ok && g.Fill {
		m.fil++
		return
	}
	m.stretch += kn.MaxW() - kn.W()
}

func (m measure) sub(o measure) measure {
	return measure{
		w:       m.w - o.w,
		stretch: m.stretch - o.stretch,
		shrink:  m.shrink - o.shrink,
		fil:     m.fil - o.fil,
	}
}

// prefixSums returns the accumulated measures of all knots before index i,
// for 0 ≤ i ≤ k.Length().
func prefixSums(k *khipu.Khipu) []measure {
	sums := make([]measure, k.Length()+1)
	var m measure
	for i := 0; i < k.Length(); i++ {
		sums[i] = m
		m.add(k.At(i))
	}
	sums[k.Length()] = m
	return sums
}

// --- First fit -------------------------------------------------------------

// breakFirstFit breaks lines greedily: a line is filled until the next
// breakpoint would not fit any more, then it is broken at the last feasible
// breakpoint.
func breakFirstFit(k *khipu.Khipu, shape ParShape, opts BreakOptions) Breakpoints {
	tolerance := opts.Registers.D(params.P_OVERFLOWTOLERANCE)
	var bps Breakpoints
	n := k.Length()
	for start, line := 0, 0; start < n; line++ {
		target := shape.LineLength(line) + tolerance
		var m measure
		best, bestW := n-1, dimen.Dimen(0)
		found := false
		for i := start; i < n; i++ {
			kn := k.At(i)
			_, forced := penaltyOf(kn)
			if khipu.IsBreakpoint(kn) && (i > start || forced) {
				w := m.w + preWidth(kn)
				if opts.Justified {
					w -= m.shrink
				}
				if w <= target || !found {
					best, bestW, found = i, w, true
				}
				if w > target || forced {
					break
				}
			}
			m.add(kn)
		}
		bps = append(bps, Breakpoint{Position: best, Line: line, Overflow: bestW > target})
		tracer().Debugf("line %d: %q", line, k.Text(start, best))
		start = lineStart(k, best)
	}
	return bps
}
