package inline

import (
	"math"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/npillmayer/xtl/core/dimen"
	params "github.com/npillmayer/xtl/core/parameters"
	"github.com/npillmayer/xtl/engine/khipu"
)

// Fitness classes of lines, from tight to very loose.
const (
	fitTight = iota
	fitDecent
	fitLoose
	fitVeryLoose
)

const (
	infBadness    = 10000
	lastLineBad   = 100000 // demerits for a last line shorter than 1/3 of the target
	infiniteRatio = 1e6
)

// A feasible breakpoint, with the best path of breakpoints leading to it.
type kpNode struct {
	pos     int // index of the breakpoint knot, -1 for the start of the paragraph
	line    int // number of lines up to here
	fitness int
	total   int64 // total demerits
	hyphen  bool  // line ends with a discretionary hyphen
	prev    *kpNode
}

// breakOptimal breaks a paragraph with minimal total demerits.
// It returns false if no feasible set of breakpoints exists.
func breakOptimal(k *khipu.Khipu, shape ParShape, opts BreakOptions) (Breakpoints, bool) {
	regs := opts.Registers
	tolerance := regs.N(params.P_TOLERANCE)
	sums := prefixSums(k)
	n := k.Length()
	active := doublylinkedlist.New()
	active.Add(&kpNode{pos: -1, fitness: fitDecent})
	for b := 0; b < n; b++ {
		kn := k.At(b)
		if !khipu.IsBreakpoint(kn) {
			continue
		}
		penalty, forced := penaltyOf(kn)
		_, isHyphen := kn.(*khipu.Discretionary)
		var best [fitVeryLoose + 1]*kpNode
		var deactivate []int
		it := active.Iterator()
		for it.Next() {
			a := it.Value().(*kpNode)
			start := 0
			if a.pos >= 0 {
				start = lineStart(k, a.pos)
			}
			if start > b || a.pos == b {
				continue
			}
			m := sums[b].sub(sums[start])
			w := m.w + preWidth(kn)
			target := shape.LineLength(a.line)
			r := adjustmentRatio(w, target, m, opts.Justified)
			if r < -1 || forced {
				deactivate = append(deactivate, it.Index())
			}
			if r < -1 {
				continue
			}
			bad := badness(r)
			if bad > tolerance && !forced {
				continue
			}
			var d int64
			if b == n-1 {
				if m.w*3 < target {
					d = lastLineBad
				}
			} else {
				d = demerits(regs, bad, penalty)
			}
			fc := fitness(r)
			if a.pos >= 0 {
				if diff := fc - a.fitness; diff > 1 || diff < -1 {
					d += int64(regs.N(params.P_ADJDEMERITS))
				} else if diff != 0 {
					d += int64(regs.N(params.P_FITNESSDEMERITS))
				}
			}
			if isHyphen && a.hyphen {
				d += int64(regs.N(params.P_DOUBLEHYPHENDEMERITS))
			}
			total := a.total + d
			// active nodes are ordered by position: on ties the later one wins
			if best[fc] == nil || total <= best[fc].total {
				best[fc] = &kpNode{
					pos:     b,
					line:    a.line + 1,
					fitness: fc,
					total:   total,
					hyphen:  isHyphen,
					prev:    a,
				}
			}
		}
		for i := len(deactivate) - 1; i >= 0; i-- {
			active.Remove(deactivate[i])
		}
		for _, node := range best {
			if node != nil {
				active.Add(node)
			}
		}
		if active.Empty() {
			return nil, false
		}
	}
	var final *kpNode
	it := active.Iterator()
	for it.Next() {
		a := it.Value().(*kpNode)
		if a.pos == n-1 && (final == nil || a.total <= final.total) {
			final = a
		}
	}
	if final == nil {
		return nil, false
	}
	bps := make(Breakpoints, final.line)
	for node := final; node.pos >= 0; node = node.prev {
		bps[node.line-1] = Breakpoint{
			Position: node.pos,
			Line:     node.line - 1,
			Demerits: node.total,
		}
	}
	tracer().Debugf("optimal breakpoints = %s, demerits = %d", bps, final.total)
	return bps, true
}

// adjustmentRatio returns the ratio of the slack of a line to its
// stretchability, or to its shrinkability for lines which are too long.
func adjustmentRatio(w, target dimen.Dimen, m measure, justified bool) float64 {
	switch {
	case w == target:
		return 0
	case w < target:
		if m.fil > 0 {
			return 0
		}
		if m.stretch > 0 {
			return float64(target-w) / float64(m.stretch)
		}
		return infiniteRatio
	}
	if m.shrink > 0 && justified {
		return -float64(w-target) / float64(m.shrink)
	}
	return -infiniteRatio
}

// badness is 100·|r|³, capped at 10000.
func badness(r float64) int {
	b := 100 * math.Pow(math.Abs(r), 3)
	if b >= infBadness {
		return infBadness
	}
	return int(math.Floor(b))
}

func fitness(r float64) int {
	switch {
	case r < -0.5:
		return fitTight
	case r <= 0.5:
		return fitDecent
	case r <= 1:
		return fitLoose
	}
	return fitVeryLoose
}

func demerits(regs *params.TypesettingRegisters, bad int, penalty int) int64 {
	l := int64(regs.N(params.P_LINEPENALTY) + bad)
	d := l * l
	p := int64(penalty)
	if penalty >= 0 {
		d += p * p
	} else if penalty > khipu.ForcedBreak {
		d -= p * p
	}
	return d
}
