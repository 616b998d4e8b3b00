package metrics

import "testing"

func TestSizeSimIdentity(t *testing.T) {
	if SizeSim(50, 50) != 1.0 {
		t.Fatal("expected identical sizes to yield 1.0")
	}
}

func TestSizeSimSymmetric(t *testing.T) {
	a, b := SizeSim(40, 60), SizeSim(60, 40)
	if a != b {
		t.Fatalf("not symmetric: %v vs %v", a, b)
	}
	if a < 0 || a > 1 {
		t.Fatalf("out of range: %v", a)
	}
}

func TestSeqSimIdentity(t *testing.T) {
	v := []float32{1, 2, 3, 0}
	if got := SeqSim(v, v, 0); got != 1.0 {
		t.Errorf("SeqSim(v,v) = %v, want 1.0", got)
	}
}

func TestSeqSimZero(t *testing.T) {
	z := []float32{0, 0, 0, 0}
	if got := SeqSim(z, z, 0); got != 0 {
		t.Errorf("SeqSim(0,0) = %v, want 0", got)
	}
}

func TestGenotypeEdgeCases(t *testing.T) {
	if g := Genotype(0, 0); g != Non {
		t.Errorf("Genotype(0,0) = %v, want Non", g)
	}
	if g := Genotype(20, 0); g != Ref {
		t.Errorf("Genotype(20,0) = %v, want Ref", g)
	}
	if g := Genotype(0, 20); g != Hom {
		t.Errorf("Genotype(0,20) = %v, want Hom", g)
	}
}

func TestLogChooseOutOfRange(t *testing.T) {
	if LogChoose(10, -1) != 0 {
		t.Error("expected 0 for k<0")
	}
	if LogChoose(10, 11) != 0 {
		t.Error("expected 0 for k>n")
	}
}

func TestGenotypeQualsClamped(t *testing.T) {
	gq, sq := GenotypeQuals(0, 30)
	if gq < 0 || gq > 100 || sq < 0 || sq > 100 {
		t.Fatalf("out of range: gq=%v sq=%v", gq, sq)
	}
}
