package haplotype

import "testing"

func TestAddToBlank(t *testing.T) {
	h := &Haplotype{Size: 10, N: 1, Kfeat: []float32{1, 2, 3, 4}}
	blank := Blank(4)
	got := blank.Add(h)
	for i := range got.Kfeat {
		if got.Kfeat[i] != h.Kfeat[i] {
			t.Fatalf("kfeat mismatch at %d: %v vs %v", i, got.Kfeat[i], h.Kfeat[i])
		}
	}
	if got.Size != h.Size {
		t.Fatalf("size mismatch: %v vs %v", got.Size, h.Size)
	}
	if got.N != 1 {
		t.Fatalf("N = %v, want 1", got.N)
	}
}

func TestLessOrdering(t *testing.T) {
	a := &Haplotype{Coverage: 1, N: 2, Size: 5, Kfeat: []float32{1}}
	b := &Haplotype{Coverage: 2, N: 2, Size: 5, Kfeat: []float32{1}}
	if !a.Less(b) {
		t.Fatal("expected lower coverage to sort first")
	}
}

func TestSortDescending(t *testing.T) {
	a := &Haplotype{Coverage: 1, Kfeat: []float32{0}}
	b := &Haplotype{Coverage: 5, Kfeat: []float32{0}}
	c := &Haplotype{Coverage: 3, Kfeat: []float32{0}}
	haps := []*Haplotype{a, b, c}
	SortDescending(haps)
	if haps[0] != b || haps[1] != c || haps[2] != a {
		t.Fatalf("unexpected order: %+v", haps)
	}
}
