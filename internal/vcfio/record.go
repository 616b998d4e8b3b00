// Package vcfio wraps github.com/brentp/vcfgo with the typed accessors the
// genotyping pipeline needs (boundaries, signed size, k-mer featurization,
// filter/ALT-shape checks) and an annotated-record writer.
package vcfio

import (
	"strings"

	"github.com/brentp/vcfgo"

	"github.com/grailbio/bio-svgt/internal/kmer"
)

// Record wraps one input VCF variant, giving it the accessors the rest of
// the pipeline needs without leaking vcfgo's API further than this package.
type Record struct {
	v *vcfgo.Variant
}

// NewRecord wraps a vcfgo.Variant.
func NewRecord(v *vcfgo.Variant) *Record { return &Record{v: v} }

// Raw returns the underlying vcfgo.Variant, for the writer.
func (r *Record) Raw() *vcfgo.Variant { return r.v }

// Chrom returns the chromosome name.
func (r *Record) Chrom() string { return r.v.Chromosome }

// Pos returns the 1-based VCF position.
func (r *Record) Pos() uint64 { return r.v.Pos }

// Filter returns the raw FILTER field.
func (r *Record) Filter() string { return r.v.Filter }

// IsFiltered reports whether the record should be dropped given passonly:
// FILTER must be "." or "PASS" when passonly is set.
func (r *Record) IsFiltered(passonly bool) bool {
	if !passonly {
		return false
	}
	f := r.Filter()
	return f != "." && f != "PASS" && f != ""
}

// firstAlt returns the first ALT allele, or "" if none.
func (r *Record) firstAlt() string {
	alts := r.v.Alt()
	if len(alts) == 0 {
		return ""
	}
	return alts[0]
}

// ValidAlt reports whether ALT is sequence-resolved: not ".", "*", a
// symbolic "<...>" allele, or a breakend ("[" / "]" present).
func (r *Record) ValidAlt() bool {
	alt := r.firstAlt()
	if alt == "" || alt == "." || alt == "*" {
		return false
	}
	if strings.HasPrefix(alt, "<") {
		return false
	}
	if strings.ContainsAny(alt, "[]") {
		return false
	}
	return true
}

// Boundaries returns the 0-based half-open [start,end) span of the
// variant's reference allele.
func (r *Record) Boundaries() (start, end uint64) {
	start = r.Pos() - 1
	return start, start + uint64(len(r.v.Ref()))
}

// Size returns the signed length: positive for insertions (ALT longer than
// REF), negative for deletions.
func (r *Record) Size() int64 {
	return int64(len(r.firstAlt())) - int64(len(r.v.Ref()))
}

// HasIUPACRef reports whether REF contains a non-ACGT IUPAC ambiguity code
// (N, R, Y, and so on), case-insensitive.
func (r *Record) HasIUPACRef() bool {
	for _, c := range r.v.Ref() {
		switch c {
		case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		default:
			return true
		}
	}
	return false
}

// ToKfeat returns the k-mer feature vector for this variant's edit: the ALT
// allele's k-mer vector, minus the REF allele's, matching
// "ref_kfeat + del_kfeat ~ post-deletion sequence" from the featurizer.
func (r *Record) ToKfeat(k int) []float32 {
	altVec := kmer.Encode([]byte(r.firstAlt()), k, false, 0)
	refVec := kmer.Encode([]byte(r.v.Ref()), k, true, 0)
	out := make([]float32, len(altVec))
	for i := range altVec {
		out[i] = altVec[i] + refVec[i]
	}
	return out
}
