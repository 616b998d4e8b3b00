package chunker

import (
	"testing"

	"github.com/brentp/vcfgo"

	"github.com/grailbio/bio-svgt/internal/regions"
	"github.com/grailbio/bio-svgt/internal/vcfio"
)

func mkRecord(chrom string, pos uint64, ref, alt, filter string) *vcfio.Record {
	v := &vcfgo.Variant{
		Chromosome: chrom,
		Pos:        pos,
		Ref_:       ref,
		Alt_:       []string{alt},
		Filter:     filter,
	}
	return vcfio.NewRecord(v)
}

func TestAcceptRejectsSymbolicAlt(t *testing.T) {
	c := &Chunker{tree: regions.NewTree(), params: Params{SizeMin: 50, SizeMax: 10000, PassOnly: false}}
	r := mkRecord("chr1", 100, "A", "<INS>", ".")
	if c.accept(r) {
		t.Fatal("expected symbolic ALT to be rejected")
	}
}

func TestAcceptRejectsTooSmall(t *testing.T) {
	c := &Chunker{tree: regions.NewTree(), params: Params{SizeMin: 50, SizeMax: 10000}}
	r := mkRecord("chr1", 100, "A", "ACGT", ".")
	if c.accept(r) {
		t.Fatal("expected small indel to be rejected")
	}
}

func TestAcceptPassesValidInsertion(t *testing.T) {
	c := &Chunker{tree: regions.NewTree(), params: Params{SizeMin: 10, SizeMax: 10000}}
	r := mkRecord("chr1", 100, "A", "ACGTACGTACGTACG", ".")
	if !c.accept(r) {
		t.Fatal("expected valid insertion to be accepted")
	}
}
