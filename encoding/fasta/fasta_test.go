package fasta

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFasta(t *testing.T) (fastaPath, faiPath string) {
	t.Helper()
	dir := t.TempDir()
	fastaPath = filepath.Join(dir, "ref.fa")
	faiPath = fastaPath + ".fai"

	// >chr1\nACGTACGT\nACGT\n (two lines, 8 bases then 4 bases)
	content := ">chr1\nACGTACGT\nACGT\n"
	if err := os.WriteFile(fastaPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// name length offset linebases linewidth
	fai := "chr1\t12\t6\t8\t9\n"
	if err := os.WriteFile(faiPath, []byte(fai), 0644); err != nil {
		t.Fatal(err)
	}
	return fastaPath, faiPath
}

func TestIndexedGet(t *testing.T) {
	fastaPath, faiPath := writeTestFasta(t)
	idx, err := NewIndexed(fastaPath, faiPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if n, err := idx.Len("chr1"); err != nil || n != 12 {
		t.Fatalf("Len = %v, %v", n, err)
	}
	got, err := idx.Get("chr1", 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ACGT" {
		t.Fatalf("Get(0,4) = %q", got)
	}
	got, err = idx.Get("chr1", 6, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "GTAC" {
		t.Fatalf("Get(6,10) = %q", got)
	}
}

func TestIndexedUnknownSeq(t *testing.T) {
	fastaPath, faiPath := writeTestFasta(t)
	idx, err := NewIndexed(fastaPath, faiPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	if _, err := idx.Get("chrX", 0, 1); err == nil {
		t.Fatal("expected error for unknown sequence")
	}
}
