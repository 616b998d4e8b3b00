package pileup

import "testing"

func TestEncodeDecodeInsertionRoundTrip(t *testing.T) {
	rp := ReadPileup{
		Start: 100,
		End:   200,
		Pileups: []Variant{
			{Position: 150, End: 150, Kind: Ins, Size: 4, Sequence: []byte("ACGT")},
		},
	}
	line := EncodeLine("chr1", rp)
	chrom, got, err := DecodeLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if chrom != "chr1" {
		t.Fatalf("chrom = %q", chrom)
	}
	if len(got.Pileups) != 1 || string(got.Pileups[0].Sequence) != "ACGT" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Pileups[0].Position != 150 {
		t.Fatalf("position mismatch: %+v", got.Pileups[0])
	}
}

func TestEncodeDecodeDeletionRoundTrip(t *testing.T) {
	rp := ReadPileup{
		Start: 100,
		End:   200,
		Pileups: []Variant{
			{Position: 140, End: 150, Kind: Del, Size: -10},
		},
	}
	line := EncodeLine("chr2", rp)
	_, got, err := DecodeLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pileups[0].Size != -10 || got.Pileups[0].Kind != Del {
		t.Fatalf("deletion size/kind mismatch: %+v", got.Pileups[0])
	}
}

func TestEncodeDecodeEmptyPileups(t *testing.T) {
	rp := ReadPileup{Start: 1, End: 2}
	line := EncodeLine("chrX", rp)
	_, got, err := DecodeLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Pileups) != 0 {
		t.Fatalf("expected no pileups, got %+v", got.Pileups)
	}
}

func TestEncodeDecodePSHP(t *testing.T) {
	ps := uint16(7)
	hp := uint8(2)
	rp := ReadPileup{Start: 1, End: 2, PhaseSet: &ps, Haplotag: &hp}
	line := EncodeLine("chr1", rp)
	_, got, err := DecodeLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if got.PhaseSet == nil || *got.PhaseSet != 7 {
		t.Fatalf("PS mismatch: %+v", got.PhaseSet)
	}
	if got.Haplotag == nil || *got.Haplotag != 2 {
		t.Fatalf("HP mismatch: %+v", got.Haplotag)
	}
}
