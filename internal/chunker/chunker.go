// Package chunker streams filtered catalog records into neighborhood
// chunks, emitting skipped records straight through as no-calls so every
// input record appears exactly once in the output.
package chunker

import (
	"github.com/grailbio/bio-svgt/internal/regions"
	"github.com/grailbio/bio-svgt/internal/vcfio"
)

// Params bounds which records are accepted into a chunk.
type Params struct {
	PassOnly  bool
	SizeMin   int64
	SizeMax   int64
	ChunkSize uint64
}

// Skipped is a catalog record that failed the filter/size/region checks and
// must still be written through as a no-call.
type Skipped struct {
	Record *vcfio.Record
}

// Chunk is a maximal run of accepted records within ChunkSize of each other
// on one chromosome.
type Chunk struct {
	Chrom   string
	Records []*vcfio.Record
}

// Chunker wraps a vcfio.Source and a region Tree, implementing the
// filter/skip/chunk-boundary rules.
type Chunker struct {
	src    *vcfio.Source
	tree   *regions.Tree
	params Params

	deques       map[string]*regions.Deque
	pending      *vcfio.Record
	haveCurrent  bool
	curChrom     string
	curEnd       uint64
	curRecords   []*vcfio.Record

	TotalVariants int
	SkippedCount  int
}

// New constructs a Chunker over src, filtered by tree (which may be empty
// to mean "no restriction").
func New(src *vcfio.Source, tree *regions.Tree, params Params) *Chunker {
	return &Chunker{src: src, tree: tree, params: params, deques: map[string]*regions.Deque{}}
}

func (c *Chunker) dequeFor(chrom string) *regions.Deque {
	d, ok := c.deques[chrom]
	if !ok {
		d = c.tree.Deque(chrom)
		c.deques[chrom] = d
	}
	return d
}

func (c *Chunker) accept(r *vcfio.Record) bool {
	if r.IsFiltered(c.params.PassOnly) {
		return false
	}
	if !r.ValidAlt() {
		return false
	}
	size := r.Size()
	abs := size
	if abs < 0 {
		abs = -abs
	}
	if abs < c.params.SizeMin || abs > c.params.SizeMax {
		return false
	}
	if !c.tree.Empty() {
		start, end := r.Boundaries()
		if !c.dequeFor(r.Chrom()).Contains(start, end) {
			return false
		}
	}
	return true
}

// Next pulls accepted records, appending to the open chunk or closing it
// and starting a new one, and appends rejected records to skipped for the
// caller to write through as no-calls. At EOF it returns (nil, skipped,
// false), where skipped holds any records rejected since the last call.
func (c *Chunker) Next() (*Chunk, []Skipped, bool) {
	var skipped []Skipped
	for {
		rec := c.src.Next()
		if rec == nil {
			if len(c.curRecords) > 0 {
				chunk := &Chunk{Chrom: c.curChrom, Records: c.curRecords}
				c.curRecords = nil
				return chunk, skipped, true
			}
			return nil, skipped, false
		}
		c.TotalVariants++
		if !c.accept(rec) {
			c.SkippedCount++
			skipped = append(skipped, Skipped{Record: rec})
			continue
		}

		start, end := rec.Boundaries()
		newChunk := !c.haveCurrent || rec.Chrom() != c.curChrom || start > c.curEnd+c.params.ChunkSize

		if newChunk && len(c.curRecords) > 0 {
			finished := &Chunk{Chrom: c.curChrom, Records: c.curRecords}
			c.curRecords = []*vcfio.Record{rec}
			c.curChrom = rec.Chrom()
			c.curEnd = end
			c.haveCurrent = true
			return finished, skipped, true
		}

		c.curChrom = rec.Chrom()
		c.haveCurrent = true
		if end > c.curEnd {
			c.curEnd = end
		}
		c.curRecords = append(c.curRecords, rec)
	}
}
