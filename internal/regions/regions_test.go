package regions

import (
	"strings"
	"testing"

	"github.com/grailbio/bio-svgt/internal/annotate"
)

func TestDequeContainsAdvancesFront(t *testing.T) {
	tree, err := ParseBED(strings.NewReader("chr1\t10\t20\nchr1\t30\t40\n"))
	if err != nil {
		t.Fatal(err)
	}
	d := tree.Deque("chr1")
	if d.Contains(5, 8) {
		t.Fatal("expected no containment before first region")
	}
	if !d.Contains(12, 18) {
		t.Fatal("expected containment inside first region")
	}
	if d.Contains(25, 28) {
		t.Fatal("expected no containment in gap")
	}
	if !d.Contains(32, 38) {
		t.Fatal("expected containment inside second region after advancing")
	}
}

func TestPloidyIndexDefaultsDiploid(t *testing.T) {
	idx, err := ParsePloidyBED(strings.NewReader("chrX\t0\t100\t0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.Lookup("chrX", 50); got != annotate.Zero {
		t.Fatalf("got %v, want Zero", got)
	}
	if got := idx.Lookup("chrX", 200); got != annotate.Diploid {
		t.Fatalf("got %v, want Diploid default", got)
	}
	if got := idx.Lookup("chr1", 1); got != annotate.Diploid {
		t.Fatalf("got %v, want Diploid default for unknown chrom", got)
	}
}
