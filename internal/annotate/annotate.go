// Package annotate maps path-search results back onto catalog entries,
// computing genotype, quality, and filter fields.
package annotate

import (
	"github.com/grailbio/bio-svgt/internal/metrics"
)

// Ploidy is the effective ploidy at a site.
type Ploidy int

const (
	Zero Ploidy = iota
	Haploid
	Diploid
	Polyploid
	Unset
)

// FilterFlags is a bitset of diagnostic filters; the zero value is PASS.
type FilterFlags uint16

const (
	FlagGTMismatch FilterFlags = 1 << iota
	FlagLowGQ
	FlagLowCov
	FlagLowSQ
	FlagLowAlt
	FlagPartial
)

// String renders the flags as the FT field value: "PASS" if none set,
// otherwise a comma-joined list of flag names.
func (f FilterFlags) String() string {
	if f == 0 {
		return "PASS"
	}
	names := []struct {
		flag FilterFlags
		name string
	}{
		{FlagGTMismatch, "GTMISMATCH"},
		{FlagLowGQ, "LOWGQ"},
		{FlagLowCov, "LOWCOV"},
		{FlagLowSQ, "LOWSQ"},
		{FlagLowAlt, "LOWALT"},
		{FlagPartial, "PARTIAL"},
	}
	out := ""
	for _, n := range names {
		if f&n.flag != 0 {
			if out != "" {
				out += ","
			}
			out += n.name
		}
	}
	return out
}

// PathApplication is the subset of vargraph.PathScore this package needs:
// whether the path contains the variant being annotated, its HP tag if
// known, and whether it was scored against a full (non-partial) target.
type PathApplication struct {
	ContainsVariant bool
	Haplotag        *uint8
	FullTarget      bool
	SizeSim         float64
	SeqSim          float64
	Coverage        uint64
}

// Call is the fully annotated per-sample result for one catalog entry.
type Call struct {
	GT    string
	FT    FilterFlags
	SQ    float64
	GQ    float64
	PS    *uint16
	PG    int
	DP    uint64
	AD    [2]uint64
	ZS    []float64
	SS    []float64
}

// Annotate computes the Call for one catalog entry given 0, 1, or 2 applied
// paths (sample haplotypes' best matches), the region's read coverage, the
// site's ploidy, and the chunk's phase group.
func Annotate(paths []PathApplication, coverage uint64, ploidy Ploidy, phaseGroup int) Call {
	call := Call{PG: phaseGroup, DP: coverage}

	switch ploidy {
	case Zero:
		call.GT = "./."
		return finish(call, 0, 0, nil, nil)
	case Haploid:
		return annotateHaploid(paths, coverage, phaseGroup)
	default: // Diploid and Polyploid treated as diploid per spec scope
		return annotateDiploid(paths, coverage, phaseGroup)
	}
}

func annotateHaploid(paths []PathApplication, coverage uint64, pg int) Call {
	call := Call{PG: pg, DP: coverage}
	switch len(paths) {
	case 0:
		if coverage > 0 {
			call.GT = "0"
		} else {
			call.GT = "."
		}
		return finish(call, coverage, 0, nil, nil)
	default:
		any := false
		var ss, zs []float64
		for _, p := range paths {
			if p.ContainsVariant {
				any = true
				ss = append(ss, p.SeqSim*100)
				zs = append(zs, p.SizeSim*100)
			}
		}
		altCov := uint64(0)
		if any {
			call.GT = "1"
			altCov = coverage
		} else if coverage > 0 {
			call.GT = "0"
		} else {
			call.GT = "."
		}
		return finish(call, coverage-altCov, altCov, zs, ss)
	}
}

func annotateDiploid(paths []PathApplication, coverage uint64, pg int) Call {
	call := Call{PG: pg, DP: coverage}
	switch len(paths) {
	case 0:
		if coverage > 0 {
			call.GT = "0|0"
		} else {
			call.GT = "./."
		}
		return finish(call, coverage, 0, nil, nil)
	case 1:
		p := paths[0]
		if !p.ContainsVariant {
			call.GT = "0|0"
			return finish(call, coverage, 0, nil, nil)
		}
		altCov := p.Coverage
		refCov := coverage - altCov
		state := metrics.Genotype(refCov, altCov)
		switch state {
		case metrics.Hom:
			call.GT = "1|1"
		default: // Ref or Het
			if hpIsOne(p.Haplotag) {
				call.GT = "0|1"
			} else {
				call.GT = "1|0"
			}
		}
		c := finish(call, refCov, altCov, []float64{p.SizeSim * 100}, []float64{p.SeqSim * 100})
		if !p.FullTarget {
			c.FT |= FlagPartial
		}
		return c
	default: // 2 paths
		p1, p2 := paths[0], paths[1]
		var zs, ss []float64
		switch {
		case p1.ContainsVariant && p2.ContainsVariant:
			call.GT = "1|1"
		case p1.ContainsVariant && !p2.ContainsVariant:
			call.GT = "1|0"
		case !p1.ContainsVariant && p2.ContainsVariant:
			call.GT = "0|1"
		default:
			if coverage > 0 {
				call.GT = "0|0"
			} else {
				call.GT = "./."
			}
		}
		altCov := uint64(0)
		if p1.ContainsVariant {
			altCov += p1.Coverage
			zs = append(zs, p1.SizeSim*100)
			ss = append(ss, p1.SeqSim*100)
		}
		if p2.ContainsVariant {
			altCov += p2.Coverage
			zs = append(zs, p2.SizeSim*100)
			ss = append(ss, p2.SeqSim*100)
		}
		refCov := coverage - altCov
		c := finish(call, refCov, altCov, zs, ss)
		if (!p1.FullTarget && p1.ContainsVariant) || (!p2.FullTarget && p2.ContainsVariant) {
			c.FT |= FlagPartial
		}
		return c
	}
}

// impliedState maps a genotype string back to the Ref/Het/Hom bucket it
// represents, for the GTMISMATCH check.
func impliedState(gt string) metrics.GTState {
	switch gt {
	case "0|0", "0", ".", "./.":
		return metrics.Ref
	case "1|1", "1":
		return metrics.Hom
	default:
		return metrics.Het
	}
}

// hpIsOne implements the documented HP tie-break convention: HP=1 or unset
// maps to 0|1, HP=2 maps to 1|0 (see DESIGN.md Open Question decision).
func hpIsOne(hp *uint8) bool {
	return hp == nil || *hp == 1
}

func finish(call Call, refCov, altCov uint64, zs, ss []float64) Call {
	call.AD = [2]uint64{refCov, altCov}
	call.ZS, call.SS = zs, ss
	gq, sq := metrics.GenotypeQuals(refCov, altCov)
	call.GQ, call.SQ = gq, sq

	var flags FilterFlags
	if call.GT != "./." && call.GT != "." && metrics.Genotype(refCov, altCov) != impliedState(call.GT) {
		flags |= FlagGTMismatch
	}
	if gq < 5 {
		flags |= FlagLowGQ
	}
	if call.DP < 5 {
		flags |= FlagLowCov
	}
	isRefCall := call.GT == "0|0" || call.GT == "0" || call.GT == "./." || call.GT == "."
	if !isRefCall {
		if sq < 5 {
			flags |= FlagLowSQ
		}
		if altCov < 5 {
			flags |= FlagLowAlt
		}
	}
	call.FT = flags
	return call
}
