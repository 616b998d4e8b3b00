package annotate

import "testing"

func TestAnnotateZeroPloidy(t *testing.T) {
	c := Annotate(nil, 20, Zero, 0)
	if c.GT != "./." {
		t.Fatalf("GT = %q, want ./.", c.GT)
	}
}

func TestAnnotateDiploidNoPaths(t *testing.T) {
	c := Annotate(nil, 0, Diploid, 0)
	if c.GT != "./." {
		t.Fatalf("GT = %q, want ./. for zero coverage", c.GT)
	}
	if c.FT&FlagLowCov == 0 {
		t.Error("expected LOWCOV flag")
	}
}

func TestAnnotateDiploidHomAlt(t *testing.T) {
	paths := []PathApplication{{ContainsVariant: true, FullTarget: true, Coverage: 20, SizeSim: 1, SeqSim: 1}}
	c := Annotate(paths, 20, Diploid, 0)
	if c.GT != "1|1" {
		t.Fatalf("GT = %q, want 1|1", c.GT)
	}
}

func TestAnnotateHaploid(t *testing.T) {
	c := Annotate(nil, 10, Haploid, 0)
	if c.GT != "0" {
		t.Fatalf("GT = %q, want 0", c.GT)
	}
}

func TestFilterFlagsString(t *testing.T) {
	if FilterFlags(0).String() != "PASS" {
		t.Error("expected PASS for zero flags")
	}
	f := FlagLowGQ | FlagLowCov
	if got := f.String(); got != "LOWGQ,LOWCOV" {
		t.Errorf("got %q", got)
	}
}
