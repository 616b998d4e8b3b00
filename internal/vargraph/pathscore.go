package vargraph

import "github.com/grailbio/bio-svgt/internal/metrics"

// Target is a haplotype (or one of its partial combinations) scored
// against candidate paths.
type Target struct {
	Size  int64
	Kfeat []float32
}

// PathScore is a candidate subset-of-variants interpretation of a
// haplotype.
type PathScore struct {
	Path       []NodeIndex
	SizeSim    float64
	SeqSim     float64
	Coverage   uint64
	FullTarget bool
	IsRef      bool
}

// Less implements the PathScore ordering: first by FullTarget, then by the
// mean of (SizeSim, SeqSim).
func (p PathScore) Less(o PathScore) bool {
	if p.FullTarget != o.FullTarget {
		return !p.FullTarget && o.FullTarget
	}
	pm := (p.SizeSim + p.SeqSim) / 2
	om := (o.SizeSim + o.SeqSim) / 2
	return pm < om
}

// ScoreParams bounds what counts as an acceptable path score.
type ScoreParams struct {
	SizeSimMin float64
	SeqSimMin  float64
	MinKFreq   float32
}

// NewPathScore evaluates path against each of targets in order, returning
// the first that passes the size-sign, size-similarity, and
// sequence-similarity thresholds, with FullTarget true iff it matched
// targets[0] (the full, non-partial target).
func NewPathScore(g *Graph, path []NodeIndex, pathSize int64, targets []Target, p ScoreParams) (PathScore, bool) {
	pathKfeat := sumKfeat(g, path)
	for i, t := range targets {
		if (pathSize < 0) != (t.Size < 0) {
			continue
		}
		sizesim := metrics.SizeSim(pathSize, t.Size)
		if sizesim < p.SizeSimMin {
			continue
		}
		seqsim := metrics.SeqSim(pathKfeat, t.Kfeat, p.MinKFreq)
		if seqsim < p.SeqSimMin {
			continue
		}
		return PathScore{
			Path:       path,
			SizeSim:    sizesim,
			SeqSim:     seqsim,
			FullTarget: i == 0,
		}, true
	}
	return PathScore{}, false
}

func sumKfeat(g *Graph, path []NodeIndex) []float32 {
	if len(path) == 0 {
		return nil
	}
	out := make([]float32, len(g.Nodes[path[0]].Kfeat))
	for _, idx := range path {
		k := g.Nodes[idx].Kfeat
		for i := range k {
			out[i] += k[i]
		}
	}
	return out
}

// Partials returns the target's partial-haplotype combinations: for i in
// [max(1,m-fnmax), m], every combination of i of the target's m components,
// each as its own Target. If m >= pileupmax, only the full target (the one
// matching targets[0] semantics) is returned.
func Partials(full Target, parts []Part, fnmax, pileupmax int) []Target {
	m := len(parts)
	out := []Target{full}
	if m >= pileupmax || m == 0 {
		return out
	}
	lo := m - fnmax
	if lo < 1 {
		lo = 1
	}
	for i := lo; i < m; i++ {
		for _, combo := range combinations(m, i) {
			var size int64
			var kfeat []float32
			for _, idx := range combo {
				size += parts[idx].Size
				if kfeat == nil {
					kfeat = make([]float32, len(parts[idx].Kfeat))
				}
				for k := range parts[idx].Kfeat {
					kfeat[k] += parts[idx].Kfeat[k]
				}
			}
			out = append(out, Target{Size: size, Kfeat: kfeat})
		}
	}
	return out
}

// Part mirrors haplotype.Part to avoid vargraph depending on the haplotype
// package for this single shape.
type Part struct {
	Size  int64
	Kfeat []float32
}

// combinations returns all i-subsets of {0,...,n-1} as index lists.
func combinations(n, i int) [][]int {
	var out [][]int
	combo := make([]int, i)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == i {
			cp := make([]int, i)
			copy(cp, combo)
			out = append(out, cp)
			return
		}
		for v := start; v < n; v++ {
			combo[depth] = v
			rec(v+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
