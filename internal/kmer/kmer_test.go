package kmer

import "testing"

func sum(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x)
	}
	return s
}

func TestEncodeSumMatchesKmerCount(t *testing.T) {
	seq := []byte("ACGTACGTAC")
	k := 4
	v := Encode(seq, k, false, 0)
	if len(v) != Size(k) {
		t.Fatalf("expected length %d, got %d", Size(k), len(v))
	}
	want := float64(len(seq) - k + 1)
	if got := sum(v); got != want {
		t.Errorf("sum = %v, want %v", got, want)
	}
}

func TestEncodeShortSequence(t *testing.T) {
	v := Encode([]byte("AC"), 4, false, 0)
	if sum(v) != 0 {
		t.Errorf("expected zero vector for sequence shorter than k")
	}
}

func TestEncodeNegative(t *testing.T) {
	seq := []byte("ACGTACGT")
	pos := Encode(seq, 3, false, 0)
	neg := Encode(seq, 3, true, 0)
	for i := range pos {
		if pos[i] != -neg[i] {
			t.Fatalf("index %d: pos=%v neg=%v", i, pos[i], neg[i])
		}
	}
}

func TestCompressHomopolymer(t *testing.T) {
	seq := []byte("AAAAAAGGTT")
	got := compressHomopolymers(seq, 3)
	want := "AAAGGTT"
	if string(got) != want {
		t.Errorf("compressHomopolymers = %q, want %q", got, want)
	}
}

func TestUnknownBaseMapsToA(t *testing.T) {
	a := Encode([]byte("NNNN"), 2, false, 0)
	b := Encode([]byte("AAAA"), 2, false, 0)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: N-vector=%v A-vector=%v", i, a[i], b[i])
		}
	}
}
