// Package metrics implements the similarity and genotype-likelihood
// scalars used to compare haplotypes and to call genotypes from allele
// coverage counts.
package metrics

import "math"

// GTState is the discrete genotype call for a single site given two allele
// coverages.
type GTState int

const (
	Ref GTState = iota
	Het
	Hom
	Non
)

func (s GTState) String() string {
	switch s {
	case Ref:
		return "Ref"
	case Het:
		return "Het"
	case Hom:
		return "Hom"
	default:
		return "Non"
	}
}

// SizeSim returns the size-ratio similarity of a and b, floored at 1 for the
// denominator/numerator so that zero-length alleles never divide by zero.
func SizeSim(a, b int64) float64 {
	if a == b {
		return 1.0
	}
	fa, fb := math.Abs(float64(a)), math.Abs(float64(b))
	if fa < 1 {
		fa = 1
	}
	if fb < 1 {
		fb = 1
	}
	lo, hi := fa, fb
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo / hi
}

// SeqSim returns the Canberra-style k-mer similarity between a and b,
// restricted to indices where |a_i|+|b_i| exceeds mink.
func SeqSim(a, b []float32, mink float32) float64 {
	var num, den float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		d := math.Abs(ai) + math.Abs(bi)
		if float32(d) <= mink {
			continue
		}
		den += d
		num += math.Abs(ai - bi)
	}
	if den == 0 {
		return 0
	}
	if num == 0 {
		return 1
	}
	return 1 - num/den
}

// logFactorial is precomputed up to n=100, the regime where the exact
// log-gamma form is cheap and numerically clean; beyond that LogChoose
// falls back to a running-product accumulation in log space.
var logFactorial [101]float64

func init() {
	logFactorial[0] = 0
	for i := 1; i <= 100; i++ {
		logFactorial[i] = logFactorial[i-1] + math.Log10(float64(i))
	}
}

// LogChoose returns log10(C(n,k)), or 0 if k is out of [0,n].
func LogChoose(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if n <= 100 {
		return logFactorial[n] - logFactorial[k] - logFactorial[n-k]
	}
	var acc float64
	for i := 0; i < k; i++ {
		acc += math.Log10(float64(n-i)) - math.Log10(float64(i+1))
	}
	return acc
}

// priorsLowCov and priorsHighCov are the three genotype allele-frequency
// priors {Ref, Het, Hom} used depending on whether total coverage is below
// the low-coverage threshold of 10 reads.
var (
	priorsLowCov  = [3]float64{1e-3, 0.55, 0.95}
	priorsHighCov = [3]float64{1e-3, 0.50, 0.90}
)

// Genotype scores the three genotype hypotheses from ref/alt coverage and
// returns the argmax as a GTState.
func Genotype(refCov, altCov uint64) GTState {
	total := refCov + altCov
	if total == 0 {
		return Non
	}
	priors := priorsHighCov
	if total < 10 {
		priors = priorsLowCov
	}
	scores := genotypeScores(int(refCov), int(altCov), priors)
	best := 0
	for i := 1; i < 3; i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return [3]GTState{Ref, Het, Hom}[best]
}

func genotypeScores(refCov, altCov int, priors [3]float64) [3]float64 {
	total := refCov + altCov
	var scores [3]float64
	lc := LogChoose(total, altCov)
	for i, p := range priors {
		scores[i] = lc + float64(altCov)*math.Log10(p) + float64(refCov)*math.Log10(1-p)
	}
	return scores
}

// GenotypeQuals returns (GQ, SQ) phred-like scores from ref/alt coverage,
// each clamped to [0,100].
func GenotypeQuals(refCov, altCov uint64) (gq, sq float64) {
	total := refCov + altCov
	priors := priorsHighCov
	if total < 10 {
		priors = priorsLowCov
	}
	scores := genotypeScores(int(refCov), int(altCov), priors)
	sorted := scores
	// descending insertion sort over 3 elements
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && sorted[j] > sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	gq = clamp100(-10 * (sorted[1] - sorted[0]))

	var sumPow float64
	for _, s := range scores {
		sumPow += math.Pow(10, s)
	}
	logSum := math.Log10(sumPow)
	sq = clamp100(math.Abs(-10 * (scores[0] - logSum)))
	return gq, sq
}

func clamp100(v float64) float64 {
	if v < 0 {
		v = -v
	}
	if v > 100 {
		return 100
	}
	return v
}
