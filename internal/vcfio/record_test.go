package vcfio

import (
	"testing"

	"github.com/brentp/vcfgo"
)

func mkVariant(chrom string, pos uint64, ref, alt, filter string) *Record {
	return NewRecord(&vcfgo.Variant{
		Chromosome: chrom,
		Pos:        pos,
		Ref_:       ref,
		Alt_:       []string{alt},
		Filter:     filter,
	})
}

func TestBoundariesAndSize(t *testing.T) {
	r := mkVariant("chr1", 101, "A", "ACGT", ".")
	start, end := r.Boundaries()
	if start != 100 || end != 101 {
		t.Fatalf("got [%d,%d), want [100,101)", start, end)
	}
	if r.Size() != 3 {
		t.Fatalf("got size %d, want 3", r.Size())
	}
}

func TestValidAltRejectsSymbolicAndBreakend(t *testing.T) {
	cases := []struct {
		alt   string
		valid bool
	}{
		{"ACGT", true},
		{"<INS>", false},
		{".", false},
		{"*", false},
		{"A]chr2:100]", false},
	}
	for _, c := range cases {
		r := mkVariant("chr1", 100, "A", c.alt, ".")
		if got := r.ValidAlt(); got != c.valid {
			t.Errorf("ValidAlt(%q) = %v, want %v", c.alt, got, c.valid)
		}
	}
}

func TestIsFiltered(t *testing.T) {
	pass := mkVariant("chr1", 100, "A", "ACGT", "PASS")
	fail := mkVariant("chr1", 100, "A", "ACGT", "LowQual")
	if pass.IsFiltered(true) {
		t.Fatal("PASS record should not be filtered")
	}
	if !fail.IsFiltered(true) {
		t.Fatal("non-PASS record should be filtered when passonly is set")
	}
	if fail.IsFiltered(false) {
		t.Fatal("passonly=false should never filter")
	}
}

func TestHasIUPACRef(t *testing.T) {
	clean := mkVariant("chr1", 100, "ACGT", "A", ".")
	ambiguous := mkVariant("chr1", 100, "ACRT", "A", ".")
	if clean.HasIUPACRef() {
		t.Fatal("ACGT-only REF should not be flagged")
	}
	if !ambiguous.HasIUPACRef() {
		t.Fatal("REF containing R should be flagged")
	}
}
