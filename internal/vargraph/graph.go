// Package vargraph builds the per-neighborhood variant DAG and searches it
// for the subset of catalog variants whose concatenation best matches a
// candidate haplotype.
package vargraph

import "github.com/grailbio/bio-svgt/internal/vcfio"

// NodeIndex indexes into a Graph's Nodes slice. Index 0 is always the
// source anchor and len(Nodes)-1 is always the sink anchor.
type NodeIndex int

// VarNode is one node of the variant graph: either a catalog entry or one
// of the two zero-valued source/sink anchors.
type VarNode struct {
	Start uint64
	End   uint64
	Size  int64
	Kfeat []float32
	Entry *vcfio.Record // nil for anchors, and once taken by annotation
}

// Graph is the DAG of VarNodes for one neighborhood (chunk).
type Graph struct {
	Chrom string
	Start uint64
	End   uint64
	Nodes []VarNode
	edges [][]NodeIndex // edges[u] = sorted list of v such that u->v
}

// Source and Sink return the anchor indices.
func (g *Graph) Source() NodeIndex { return 0 }
func (g *Graph) Sink() NodeIndex   { return NodeIndex(len(g.Nodes) - 1) }

// New builds a Graph's node list (not yet wired with edges) from a chunk of
// catalog records in input order.
func New(chrom string, entries []*vcfio.Record, kmerSize int) *Graph {
	nodes := make([]VarNode, 0, len(entries)+2)
	nodes = append(nodes, VarNode{}) // source
	var start, end uint64
	for i, e := range entries {
		s, en := e.Boundaries()
		if i == 0 || s < start {
			start = s
		}
		if en > end {
			end = en
		}
		nodes = append(nodes, VarNode{
			Start: s,
			End:   en,
			Size:  e.Size(),
			Kfeat: e.ToKfeat(kmerSize),
			Entry: e,
		})
	}
	nodes = append(nodes, VarNode{}) // sink
	return &Graph{Chrom: chrom, Start: start, End: end, Nodes: nodes}
}

// overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd uint64) bool {
	return aStart < bEnd && bStart < aEnd
}

// Build wires edges. In full mode, u->v exists for every i<j whose
// intervals do not overlap (anchors always connect to everything on their
// side). In reduced mode (full=false), only source->sink is added.
func (g *Graph) Build(full bool) {
	n := len(g.Nodes)
	g.edges = make([][]NodeIndex, n)
	if !full {
		g.edges[0] = []NodeIndex{NodeIndex(n - 1)}
		return
	}
	src, snk := g.Source(), g.Sink()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u, v := NodeIndex(i), NodeIndex(j)
			if u == src || v == snk {
				g.edges[i] = append(g.edges[i], v)
				continue
			}
			a, b := g.Nodes[i], g.Nodes[j]
			if !overlaps(a.Start, a.End, b.Start, b.End) {
				g.edges[i] = append(g.edges[i], v)
			}
		}
	}
}

// Out returns the out-neighbors of node u.
func (g *Graph) Out(u NodeIndex) []NodeIndex {
	return g.edges[u]
}
