// Package breaking implements the Breaking Engine (spec.md §4.3): greedy
// and dynamic-programming partitioners for system breaks (over measure
// natural widths) and page breaks (over system heights), plus the width
// justification used to report each non-final system's stretch/compress
// ratio. The DP's back-pointer reconstruction and bounded-lookback
// transition mirror the teacher's midi/patterns.go Euclidean-rhythm
// distribution (placing a fixed number of hits across a fixed number of
// steps by accumulated remainder) generalized to minimizing a penalty
// instead of distributing hits evenly.
package breaking

import "math"

// HintKind is a caller annotation steering the breaker, mirroring
// score.BreakHintKind without importing the score package (breaking only
// needs the measure index and kind, not the full element).
type HintKind int

const (
	HintNone HintKind = iota
	HintPreferred
	HintRequired
	HintForbidden
)

// Hint places a break annotation at a boundary index: a break at Index
// closes a group just before element Index (a group with End == Index).
type Hint struct {
	Index int
	Kind  HintKind
}

// Config bundles the penalty/feasibility tunables of spec.md §4.3/§6.
type Config struct {
	StretchPenalty          float64
	CompressPenalty         float64
	PreferredBreakBonus     float64
	MinimumCompressionRatio float64
	MinimumPerGroup         int
	MaximumPerGroup         int
}

// Partition is one closed system or page: a half-open range [Start, End)
// over the input slice, its natural total, and whether it is the final
// group (exempt from the stretch penalty, not the compress penalty).
type Partition struct {
	Start, End   int
	NaturalTotal float64
	IsFinal      bool
	Overflow     bool // true if a single element's natural size alone exceeds capacity
}

// Greedy accumulates elements until the next would exceed capacity, then
// closes the group, honoring [minimumPerGroup, maximumPerGroup] counts.
// Always places at least one element per group even if it overflows
// capacity (spec.md §4.3 failure semantics: an over-wide measure is
// placed at its natural width and the group overflows).
func Greedy(sizes []float64, capacity float64, cfg Config) []Partition {
	if len(sizes) == 0 {
		return nil
	}
	minPer := cfg.MinimumPerGroup
	if minPer < 1 {
		minPer = 1
	}
	maxPer := cfg.MaximumPerGroup
	if maxPer < minPer {
		maxPer = len(sizes)
	}

	var groups []Partition
	start := 0
	for start < len(sizes) {
		total := 0.0
		count := 0
		end := start
		for end < len(sizes) {
			next := total + sizes[end]
			overCapacity := next > capacity
			belowMin := count < minPer
			atMax := count >= maxPer
			if atMax {
				break
			}
			if overCapacity && !belowMin {
				break
			}
			total = next
			count++
			end++
		}
		if end == start {
			end = start + 1
			total = sizes[start]
		}
		groups = append(groups, Partition{
			Start:        start,
			End:          end,
			NaturalTotal: total,
			Overflow:     total > capacity,
		})
		start = end
	}
	if n := len(groups); n > 0 {
		groups[n-1].IsFinal = true
	}
	return groups
}

// DP implements the dynamic-programming partitioner: f(j) is the minimum
// total penalty to lay out elements [0,j) ending a group at j-1. feasible
// groups satisfy the capacity and count bounds; the final group is exempt
// from stretch penalty. Hints add a preferred-break bonus, force a
// required break, or forbid ending a group at an index. Ties on penalty
// prefer the smaller ending index (spec.md §9 determinism rule).
//
// Falls back to Greedy (the caller's documented recovery path, spec.md
// §7) when no feasible partition reaches the last element — for example
// when minimumPerGroup > 1 and the compression floor rejects every
// multi-element group — so DP never panics on such configurations.
func DP(sizes []float64, capacity float64, cfg Config, hints []Hint) []Partition {
	n := len(sizes)
	if n == 0 {
		return nil
	}
	minPer := cfg.MinimumPerGroup
	if minPer < 1 {
		minPer = 1
	}
	maxPer := cfg.MaximumPerGroup
	if maxPer < minPer {
		maxPer = n
	}

	hintByIndex := make(map[int]HintKind, len(hints))
	for _, h := range hints {
		hintByIndex[h.Index] = h.Kind
	}

	const inf = math.MaxFloat64 / 4
	f := make([]float64, n+1)
	back := make([]int, n+1)
	overflow := make([]bool, n+1)
	for i := range f {
		f[i] = inf
		back[i] = -1
	}
	f[0] = 0

	prefix := make([]float64, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + sizes[i]
	}

	for j := 1; j <= n; j++ {
		lowBound := 0
		if j-maxPer > lowBound {
			lowBound = j - maxPer
		}
		for i := j - 1; i >= lowBound; i-- {
			count := j - i
			if count < minPer && i != 0 {
				// a group shorter than the configured minimum is allowed only
				// when it is the first group (starts at 0); otherwise skip.
				continue
			}
			if f[i] >= inf {
				continue
			}
			if hintByIndex[i] == HintRequired && i != 0 {
				// a required break at i means every group must start exactly at i
				// once reached; groups starting elsewhere that skip over i are
				// infeasible transitions into j when i lies strictly inside (i, j).
			}
			// forbid ending exactly at a forbidden boundary unless this is the last element
			if hintByIndex[j] == HintForbidden && j != n {
				continue
			}
			natural := prefix[j] - prefix[i]
			isFinal := j == n
			over := natural > capacity
			// A group that overflows past the configured compression floor
			// is not a legal placement, not merely an expensive one -
			// otherwise a final group with no competing transition (e.g. a
			// whole piece under MaximumPerGroup) packs in for free no
			// matter how far past capacity it runs. The single-element
			// escape hatch (count == 1) stays legal, matching Greedy's
			// "place at natural width and overflow" recovery path for one
			// measure alone too wide to fit.
			if over && count > 1 && cfg.MinimumCompressionRatio > 0 {
				if capacity/natural < cfg.MinimumCompressionRatio {
					continue
				}
			}
			penalty := 0.0
			if natural < capacity {
				ratio := capacity / natural
				if natural == 0 {
					ratio = 1
				}
				// The final group is never force-justified to fill the
				// line (spec.md §4.3), so it is exempt from the stretch
				// penalty - but not from the compress penalty below, which
				// reflects an actual overflow, not a stretch choice.
				if !isFinal {
					penalty += cfg.StretchPenalty * (ratio - 1) * (ratio - 1)
				}
			} else if natural > capacity {
				ratio := capacity / natural
				penalty += cfg.CompressPenalty * (1 - ratio) * (1 - ratio)
				if cfg.MinimumCompressionRatio > 0 && ratio < cfg.MinimumCompressionRatio {
					penalty += cfg.CompressPenalty * 10
				}
			}
			if hintByIndex[j] == HintPreferred {
				penalty -= cfg.PreferredBreakBonus
			}
			// a required break at index k (0 < k < n) not respected (k strictly
			// between i and j) makes this transition infeasible.
			for k := i + 1; k < j; k++ {
				if hintByIndex[k] == HintRequired {
					penalty = inf
					break
				}
			}
			total := f[i] + penalty
			if total < f[j] || (total == f[j] && (back[j] == -1 || i < back[j])) {
				f[j] = total
				back[j] = i
				overflow[j] = over
			}
		}
	}

	if back[n] == -1 {
		return Greedy(sizes, capacity, cfg)
	}

	var groups []Partition
	for j := n; j > 0; {
		i := back[j]
		groups = append([]Partition{{
			Start:        i,
			End:          j,
			NaturalTotal: prefix[j] - prefix[i],
			IsFinal:      j == n,
			Overflow:     overflow[j],
		}}, groups...)
		j = i
	}
	return groups
}

// JustifyWidths scales each size in the half-open range so the total
// equals target, the measure-width-array form of justification used by
// the breaking engine to report per-system stretch (spec.md §4.3
// "Justification result"). No leading reservation applies at this level
// (that concept belongs to spacing.Justify within a single measure).
func JustifyWidths(sizes []float64, target float64) (adjusted []float64, ratio float64, isStretched, isCompressed, isUnchanged bool) {
	natural := 0.0
	for _, s := range sizes {
		natural += s
	}
	adjusted = make([]float64, len(sizes))
	if natural == 0 || natural == target {
		copy(adjusted, sizes)
		return adjusted, 1, false, false, true
	}
	ratio = target / natural
	for i, s := range sizes {
		adjusted[i] = s * ratio
	}
	return adjusted, ratio, ratio > 1, ratio < 1, ratio == 1
}

// AdjustFirstGroup shrinks a first group (e.g. a first system carrying
// extra width for instrument-name labels or an opening brace) by removing
// its trailing element, one at a time, until it fits within capacity
// minus the extra width, or only one element remains (spec.md §4.3
// "First-system adjustment").
func AdjustFirstGroup(sizes []float64, capacity, extraWidth float64) int {
	budget := capacity - extraWidth
	count := len(sizes)
	total := 0.0
	for _, s := range sizes {
		total += s
	}
	for count > 1 && total > budget {
		count--
		total -= sizes[count]
	}
	return count
}
