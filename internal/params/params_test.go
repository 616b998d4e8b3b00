package params

import "testing"

func TestValidateDefaultsPass(t *testing.T) {
	if _, err := Default().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
}

func TestValidateRejectsOutOfRangeSim(t *testing.T) {
	p := Default()
	p.SeqSim = 1.5
	if _, err := p.Validate(); err == nil {
		t.Fatal("expected error for seqsim > 1")
	}
}

func TestValidateWarnsSmallSizeMin(t *testing.T) {
	p := Default()
	p.SizeMin = 10
	warnings, err := p.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning for sizemin < 20")
	}
}

func TestValidateRejectsKmerZero(t *testing.T) {
	p := Default()
	p.Kmer = 0
	if _, err := p.Validate(); err == nil {
		t.Fatal("expected error for kmer < 1")
	}
}
