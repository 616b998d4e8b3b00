// Package cluster reduces a set of read-derived haplotypes to at most
// ploidy representative sample-haplotypes, via a deterministic k-medoids
// pass plus merge/split rules driven by size and coverage similarity.
package cluster

import (
	"github.com/grailbio/bio-svgt/internal/annotate"
	"github.com/grailbio/bio-svgt/internal/haplotype"
	"github.com/grailbio/bio-svgt/internal/metrics"
)

// Params configures clustering thresholds.
type Params struct {
	MinKFreq  float32
	HapSim    float64
	HPWeight  float64
}

// medoidSeed is the fixed seed FasterPAM is initialized from, so clustering
// is reproducible across runs at a given thread count.
const medoidSeed = 1469598103934665603

// Cluster reduces haps to at most 2 representative haplotypes, branching
// on the site's resolved ploidy: a Haploid site always reduces via
// Haploid (most-frequent, coverage=total), regardless of how many
// distinct read-haplotypes were assembled; any other ploidy (Diploid,
// Polyploid, and Unset, which is treated as diploid per annotate.Annotate)
// runs the K=2 k-medoids reduction. An empty input returns an empty
// slice, signaling every site is "./.".
func Cluster(haps []*haplotype.Haplotype, coverage uint64, ploidy annotate.Ploidy, p Params) []*haplotype.Haplotype {
	if len(haps) == 0 {
		return nil
	}
	if len(haps) == 1 || ploidy == annotate.Haploid {
		return Haploid(haps, coverage)
	}
	return Diploid(haps, coverage, p)
}

// Haploid returns the single most frequent haplotype, with coverage set to
// the total read count across all inputs.
func Haploid(haps []*haplotype.Haplotype, coverage uint64) []*haplotype.Haplotype {
	if len(haps) == 0 {
		return nil
	}
	best := haps[0]
	for _, h := range haps[1:] {
		if h.Coverage > best.Coverage || (h.Coverage == best.Coverage && best.Less(h)) {
			best = h
		}
	}
	merged := *best
	merged.Coverage = coverage
	return []*haplotype.Haplotype{&merged}
}

// distance is the pairwise dissimilarity used for k-medoids clustering:
// 1-seqsim plus a haplotag-mismatch penalty.
func distance(a, b *haplotype.Haplotype, p Params) float64 {
	d := 1 - metrics.SeqSim(a.Kfeat, b.Kfeat, p.MinKFreq)
	if a.Haplotag != nil && b.Haplotag != nil && *a.Haplotag != *b.Haplotag {
		d += p.HPWeight
	}
	return d
}

// Diploid runs K=2 k-medoids over haps, merges each cluster's members, and
// applies the hom/het collapse rules from the size- and coverage-based
// merge/split decision.
func Diploid(haps []*haplotype.Haplotype, totalCoverage uint64, p Params) []*haplotype.Haplotype {
	n := len(haps)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = distance(haps[i], haps[j], p)
			}
		}
	}

	m1, m2 := pam2(dist, medoidSeed)
	assign := assignToMedoids(dist, m1, m2)

	c1 := mergeCluster(haps, assign, 0)
	c2 := mergeCluster(haps, assign, 1)
	if c1 == nil {
		return []*haplotype.Haplotype{c2}
	}
	if c2 == nil {
		return []*haplotype.Haplotype{c1}
	}

	hap1, hap2 := c1, c2
	if hap1.Coverage > hap2.Coverage {
		hap1, hap2 = hap2, hap1
	}

	if sameSign(hap1.Size, hap2.Size) && metrics.SizeSim(abs64(hap1.Size), abs64(hap2.Size)) > p.HapSim {
		merged := *hap2
		merged.Coverage = hap1.Coverage + hap2.Coverage
		return []*haplotype.Haplotype{&merged}
	}

	c1cov, c2cov := hap1.Coverage, hap2.Coverage
	remaining := totalCoverage - (c1cov + c2cov)
	switch metrics.Genotype(remaining, c1cov+c2cov) {
	case metrics.Ref, metrics.Het:
		merged := *hap2
		merged.Coverage += hap1.Coverage
		return []*haplotype.Haplotype{&merged}
	default: // Hom
		return []*haplotype.Haplotype{hap1, hap2}
	}
}

func sameSign(a, b int64) bool {
	return (a < 0) == (b < 0)
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// mergeCluster merges all haplotypes assigned to cluster idx into a copy of
// the highest-ordered member: coverage is summed, PhaseSet is taken from the
// last member that carries one, and HP is set to the majority.
func mergeCluster(haps []*haplotype.Haplotype, assign []int, idx int) *haplotype.Haplotype {
	var members []*haplotype.Haplotype
	for i, a := range assign {
		if a == idx {
			members = append(members, haps[i])
		}
	}
	if len(members) == 0 {
		return nil
	}
	best := members[0]
	var coverage uint64
	hpCount := map[uint8]uint64{}
	var ps *uint16
	for _, m := range members {
		coverage += m.Coverage
		if best.Less(m) {
			best = m
		}
		if m.PhaseSet != nil {
			ps = m.PhaseSet
		}
		if m.Haplotag != nil {
			hpCount[*m.Haplotag] += m.Coverage
		}
	}
	merged := *best
	merged.Coverage = coverage
	merged.PhaseSet = ps
	merged.Haplotag = majorityHP(hpCount)
	return &merged
}

// majorityHP picks the HP tag with the highest coverage, breaking ties by
// the lower HP value so the result is deterministic regardless of Go's
// randomized map iteration order.
func majorityHP(counts map[uint8]uint64) *uint8 {
	if len(counts) == 0 {
		return nil
	}
	var bestHP uint8
	var bestCount uint64
	first := true
	for hp, c := range counts {
		if first || c > bestCount || (c == bestCount && hp < bestHP) {
			bestHP, bestCount, first = hp, c, false
		}
	}
	v := bestHP
	return &v
}
