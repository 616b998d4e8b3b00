package vargraph

import "container/heap"

// SearchParams bounds the guided path search.
type SearchParams struct {
	MaxPaths int
	OneToOne bool
	MaxNodes int
	Score    ScoreParams
}

// searchState is one frontier entry in the guided DFS: the path taken so
// far, its accumulated size, and the current node.
type searchState struct {
	path []NodeIndex
	size int64
	node NodeIndex
}

// frontier is a min-heap over searchStates, prioritized by distance from a
// fixed target size (closer first). targetSize is captured per search call,
// not shared package state, so concurrent searches never interfere.
type frontier struct {
	targetSize int64
	states     []searchState
}

func (f *frontier) Len() int { return len(f.states) }
func (f *frontier) Less(i, j int) bool {
	return absInt64(f.targetSize-f.states[i].size) < absInt64(f.targetSize-f.states[j].size)
}
func (f *frontier) Swap(i, j int) { f.states[i], f.states[j] = f.states[j], f.states[i] }
func (f *frontier) Push(x interface{}) {
	f.states = append(f.states, x.(searchState))
}
func (f *frontier) Pop() interface{} {
	n := len(f.states)
	s := f.states[n-1]
	f.states = f.states[:n-1]
	return s
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FindPath runs the guided DFS (or the one-to-one fallback) and returns the
// best PathScore found against target or any of its partial combinations
// (the one-to-one fallback scores against target alone).
func FindPath(g *Graph, target Target, partialTargets []Target, p SearchParams) PathScore {
	targets := append([]Target{target}, partialTargets...)

	if p.OneToOne || len(g.Nodes) > p.MaxNodes {
		return findOneToOne(g, targets[:1], p.Score)
	}

	f := &frontier{targetSize: target.Size}
	heap.Init(f)
	heap.Push(f, searchState{path: nil, size: 0, node: g.Source()})

	var best PathScore
	haveBest := false
	scored := 0

	for f.Len() > 0 && scored < p.MaxPaths {
		cur := heap.Pop(f).(searchState)
		for _, next := range g.Out(cur.node) {
			if next != g.Sink() {
				nextSize := cur.size + g.Nodes[next].Size
				nextPath := append(append([]NodeIndex{}, cur.path...), next)
				heap.Push(f, searchState{path: nextPath, size: nextSize, node: next})
				continue
			}
			// edge into sink: score the completed path
			score, ok := NewPathScore(g, cur.path, cur.size, targets, p.Score)
			scored++
			if ok && (!haveBest || best.Less(score)) {
				best, haveBest = score, true
			}
		}
	}

	if !haveBest {
		return PathScore{IsRef: true}
	}
	return best
}

// findOneToOne scores every single-node path against the full target,
// returning the best. Used when one_to_one is set or the graph is too
// large for DFS.
func findOneToOne(g *Graph, targets []Target, sp ScoreParams) PathScore {
	var best PathScore
	haveBest := false
	for i := 1; i < len(g.Nodes)-1; i++ {
		idx := NodeIndex(i)
		score, ok := NewPathScore(g, []NodeIndex{idx}, g.Nodes[idx].Size, targets, sp)
		if ok && (!haveBest || best.Less(score)) {
			best, haveBest = score, true
		}
	}
	if !haveBest {
		return PathScore{IsRef: true}
	}
	return best
}
