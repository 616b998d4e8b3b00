// Package params defines the genotyper's CLI-level parameter structs and
// their validation rules.
package params

import (
	"github.com/pkg/errors"

	"github.com/grailbio/bio-svgt/internal/annotate"
)

// IOParams groups the file-path and run-shape flags.
type IOParams struct {
	Input     string
	Reads     string
	Reference string
	Out       string
	Bed       string
	PloidyBed string
	Sample    string
	Threads   int
}

// KDParams groups the tuning knobs that drive the genotyping algorithm.
type KDParams struct {
	Kmer        int
	NeighDist   uint64
	ChunkSize   uint64
	PassOnly    bool
	SizeMin     int64
	SizeMax     int64
	MaxPaths    int
	SeqSim      float64
	SizeSim     float64
	MinKFreq    float32
	HapSim      float64
	GPenalty    float64
	FPenalty    float64
	FnMax       int
	PileupMax   int
	HPSWeight   float64
	MapQ        byte
	MapFlag     uint16
	OneToOne    bool
	MaxNodes    int
	MaxHom      int
}

// Default returns the documented default tuning parameters.
func Default() KDParams {
	return KDParams{
		Kmer:      4,
		NeighDist: 100,
		ChunkSize: 1000,
		SizeMin:   50,
		SizeMax:   10000,
		MaxPaths:  10000,
		SeqSim:    0.90,
		SizeSim:   0.90,
		MinKFreq:  0.25,
		HapSim:    0.90,
		GPenalty:  0.02,
		FPenalty:  0.10,
		FnMax:     4,
		PileupMax: 10,
		HPSWeight: 0.1,
		MapQ:      5,
		MapFlag:   3840, // secondary | qcfail | dup | supplementary
		MaxNodes:  2000,
		MaxHom:    0,
	}
}

// Validate applies spec's validation rules: similarity thresholds in
// [0,1], kmer >= 1; sizemin<20 and kmer>=8 are warnings, returned
// separately so the caller can log.Warn them rather than treat them as
// fatal configuration errors.
func (p KDParams) Validate() (warnings []string, err error) {
	for _, sim := range []struct {
		name string
		val  float64
	}{{"seqsim", p.SeqSim}, {"sizesim", p.SizeSim}, {"hapsim", p.HapSim}} {
		if sim.val < 0 || sim.val > 1 {
			return nil, errors.Errorf("params: %s must be in [0,1], got %v", sim.name, sim.val)
		}
	}
	if p.Kmer < 1 {
		return nil, errors.Errorf("params: kmer must be >= 1, got %d", p.Kmer)
	}
	if p.SizeMin < 20 {
		warnings = append(warnings, "sizemin < 20 may genotype point-like variants poorly")
	}
	if p.Kmer >= 8 {
		warnings = append(warnings, "kmer >= 8 uses a very large feature vector (4^kmer floats)")
	}
	if p.SizeMin > p.SizeMax {
		return nil, errors.Errorf("params: sizemin (%d) must be <= sizemax (%d)", p.SizeMin, p.SizeMax)
	}
	return warnings, nil
}

// Ploidy re-exports annotate.Ploidy so callers needn't import both packages
// when only setting up defaults.
type Ploidy = annotate.Ploidy
