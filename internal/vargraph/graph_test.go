package vargraph

import "testing"

func mkGraph(spans [][2]uint64) *Graph {
	nodes := make([]VarNode, 0, len(spans)+2)
	nodes = append(nodes, VarNode{})
	for _, s := range spans {
		nodes = append(nodes, VarNode{Start: s[0], End: s[1], Kfeat: []float32{0}})
	}
	nodes = append(nodes, VarNode{})
	return &Graph{Nodes: nodes}
}

func TestBuildFullModeNoOverlapEdges(t *testing.T) {
	g := mkGraph([][2]uint64{{0, 10}, {20, 30}, {5, 15}})
	g.Build(true)
	// node 1 ([0,10)) and node 3 ([5,15)) overlap -> no edge
	for _, v := range g.Out(1) {
		if v == 3 {
			t.Fatal("expected no edge between overlapping nodes")
		}
	}
	// node 1 and node 2 ([20,30)) don't overlap -> edge expected
	found := false
	for _, v := range g.Out(1) {
		if v == 2 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected edge between non-overlapping nodes")
	}
}

func TestBuildReducedModeOnlySourceSink(t *testing.T) {
	g := mkGraph([][2]uint64{{0, 10}})
	g.Build(false)
	out := g.Out(g.Source())
	if len(out) != 1 || out[0] != g.Sink() {
		t.Fatalf("expected only source->sink edge, got %v", out)
	}
}

func TestPathScoreOrdering(t *testing.T) {
	a := PathScore{FullTarget: false, SizeSim: 0.9, SeqSim: 0.9}
	b := PathScore{FullTarget: true, SizeSim: 0.1, SeqSim: 0.1}
	if !a.Less(b) {
		t.Fatal("expected non-full-target path to sort before full-target regardless of score")
	}
}
