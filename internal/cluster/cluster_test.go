package cluster

import (
	"testing"

	"github.com/grailbio/bio-svgt/internal/annotate"
	"github.com/grailbio/bio-svgt/internal/haplotype"
)

func mkHap(size int64, cov uint64, kfeat []float32) *haplotype.Haplotype {
	return &haplotype.Haplotype{Size: size, N: 1, Coverage: cov, Kfeat: kfeat}
}

func TestHaploidReturnsMostFrequent(t *testing.T) {
	a := mkHap(10, 2, []float32{1, 0})
	b := mkHap(10, 8, []float32{1, 0})
	got := Haploid([]*haplotype.Haplotype{a, b}, 10)
	if len(got) != 1 || got[0].Coverage != 10 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestClusterEmptyReturnsEmpty(t *testing.T) {
	if got := Cluster(nil, 0, annotate.Diploid, Params{}); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestClusterHaploidSiteForcesHaploidReduction(t *testing.T) {
	haps := []*haplotype.Haplotype{
		mkHap(50, 3, []float32{10, 0, 0, 0}),
		mkHap(-50, 7, []float32{0, 10, 0, 0}),
	}
	got := Cluster(haps, 10, annotate.Haploid, Params{MinKFreq: 0, HapSim: 0.9, HPWeight: 0})
	if len(got) != 1 {
		t.Fatalf("expected a haploid site to reduce to 1 sample regardless of haplotype count, got %d", len(got))
	}
	if got[0].Coverage != 10 {
		t.Fatalf("expected total coverage 10, got %d", got[0].Coverage)
	}
}

func TestMajorityHPTiesPreferLowerValue(t *testing.T) {
	hp1, hp2 := uint8(1), uint8(2)
	members := []*haplotype.Haplotype{
		{Coverage: 5, Haplotag: &hp2},
		{Coverage: 5, Haplotag: &hp1},
	}
	got := mergeCluster(members, []int{0, 0}, 0)
	if got.Haplotag == nil || *got.Haplotag != 1 {
		t.Fatalf("expected tie to resolve to HP=1 deterministically, got %+v", got.Haplotag)
	}
}

func TestDiploidTwoDistinctClusters(t *testing.T) {
	haps := []*haplotype.Haplotype{
		mkHap(50, 10, []float32{10, 0, 0, 0}),
		mkHap(-50, 10, []float32{0, 10, 0, 0}),
	}
	got := Diploid(haps, 20, Params{MinKFreq: 0, HapSim: 0.9, HPWeight: 0})
	if len(got) != 2 {
		t.Fatalf("expected two clusters, got %d", len(got))
	}
}
