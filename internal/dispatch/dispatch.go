// Package dispatch runs the per-chunk genotyping pipeline across a bounded
// worker pool with a single ordered writer, mirroring the reference tool's
// crossbeam_channel/thread::spawn architecture with Go channels and
// goroutines.
package dispatch

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grailbio/bio-svgt/internal/annotate"
	"github.com/grailbio/bio-svgt/internal/chunker"
	"github.com/grailbio/bio-svgt/internal/cluster"
	"github.com/grailbio/bio-svgt/internal/haplotype"
	"github.com/grailbio/bio-svgt/internal/params"
	"github.com/grailbio/bio-svgt/internal/readers"
	"github.com/grailbio/bio-svgt/internal/regions"
	"github.com/grailbio/bio-svgt/internal/vargraph"
	"github.com/grailbio/bio-svgt/internal/vcfio"

	"github.com/grailbio/bio-svgt/encoding/fasta"
)

// ReaderFactory builds a fresh ReadParser for one worker goroutine; each
// worker owns its reader exclusively, matching the per-worker indexed
// reader requirement.
type ReaderFactory func() (readers.ReadParser, error)

// Config bundles everything a dispatch run needs beyond the chunk stream.
type Config struct {
	Threads   int
	KD        params.KDParams
	Ref       fasta.Fasta
	Ploidy    *regions.PloidyIndex
	NewReader ReaderFactory
	Writer    *vcfio.Writer
	Log       *logrus.Entry
}

// result is one worker's output batch: the chunk's chromosome plus the
// annotated (record, call) pairs ready for the writer.
type result struct {
	chrom   string
	entries []annotateJob
}

type annotateJob struct {
	rec  *vcfio.Record
	call annotate.Call
}

// Run drains c, one chunk at a time, fanning work out across Threads
// workers and feeding a single writer goroutine that assigns the
// per-chunk phase group in arrival order.
func Run(c *chunker.Chunker, cfg Config) error {
	type workItem struct {
		chunk *chunker.Chunk
	}

	work := make(chan workItem)
	results := make(chan result)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for i := 0; i < cfg.Threads; i++ {
		go func(workerID int) {
			defer wg.Done()
			rp, err := cfg.NewReader()
			if err != nil {
				cfg.Log.Fatalf("worker %d: open reads: %v", workerID, err)
			}
			defer rp.Close()
			for item := range work {
				res := processChunk(item.chunk, rp, cfg)
				results <- res
			}
		}(i)
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		phaseGroup := 0
		for res := range results {
			for _, job := range res.entries {
				job.call.PG = phaseGroup
				if err := cfg.Writer.AnnoWrite(job.rec, job.call); err != nil {
					cfg.Log.Errorf("write record: %v", err)
				}
			}
			phaseGroup++
		}
	}()

	numChunks := 0
	for {
		chunk, skipped, ok := c.Next()
		for _, s := range skipped {
			start, _ := s.Record.Boundaries()
			ploidy := cfg.Ploidy.Lookup(s.Record.Chrom(), start)
			if err := cfg.Writer.WriteSkipped(s.Record, int(ploidy)); err != nil {
				cfg.Log.Errorf("write skipped record: %v", err)
			}
		}
		if !ok {
			break
		}
		work <- workItem{chunk: chunk}
		numChunks++
	}
	close(work)
	wg.Wait()
	close(results)
	<-writerDone

	cfg.Log.Infof("finished: %d variants, %d chunks, %d skipped",
		c.TotalVariants, numChunks, c.SkippedCount)
	for gt, n := range cfg.Writer.Summary() {
		cfg.Log.Infof("  %s: %d", gt, n)
	}
	if n := cfg.Writer.IUPACFixed(); n > 0 {
		cfg.Log.Warnf("%d records had non-ACGT IUPAC codes in REF, folded to A for k-mer featurization", n)
	}
	return nil
}

func processChunk(chunk *chunker.Chunk, rp readers.ReadParser, cfg Config) result {
	res := result{chrom: chunk.Chrom}

	graph := vargraph.New(chunk.Chrom, chunk.Records, cfg.KD.Kmer)
	ploidy := cfg.Ploidy.Lookup(chunk.Chrom, graph.Start)

	if ploidy == annotate.Zero {
		for _, rec := range chunk.Records {
			res.entries = append(res.entries, annotateJob{rec: rec, call: annotate.Annotate(nil, 0, annotate.Zero, 0)})
		}
		return res
	}

	winStart := uint64(0)
	if graph.Start > cfg.KD.NeighDist {
		winStart = graph.Start - cfg.KD.NeighDist
	}
	winEnd := graph.End + cfg.KD.NeighDist

	rawPileups, err := rp.FindPileups(chunk.Chrom, winStart, winEnd)
	if err != nil {
		cfg.Log.Fatalf("fetch pileups for %s:%d-%d: %v", chunk.Chrom, winStart, winEnd, err)
	}

	haps, coverage, err := haplotype.Assemble(chunk.Chrom, rawPileups, cfg.Ref, winEnd-winStart, haplotype.AssembleParams{
		Kmer: cfg.KD.Kmer, MaxHom: cfg.KD.MaxHom,
	})
	if err != nil {
		cfg.Log.Fatalf("assemble haplotypes: %v", err)
	}

	samples := cluster.Cluster(haps, coverage, ploidy, cluster.Params{
		MinKFreq: cfg.KD.MinKFreq, HapSim: cfg.KD.HapSim, HPWeight: cfg.KD.HPSWeight,
	})

	full := !cfg.KD.OneToOne && len(graph.Nodes) <= cfg.KD.MaxNodes+2
	graph.Build(full)

	sp := vargraph.SearchParams{
		MaxPaths: cfg.KD.MaxPaths,
		OneToOne: cfg.KD.OneToOne,
		MaxNodes: cfg.KD.MaxNodes,
		Score: vargraph.ScoreParams{
			SizeSimMin: cfg.KD.SizeSim,
			SeqSimMin:  cfg.KD.SeqSim,
			MinKFreq:   cfg.KD.MinKFreq,
		},
	}

	var scores []vargraph.PathScore
	for _, h := range samples {
		target := vargraph.Target{Size: h.Size, Kfeat: h.Kfeat}
		var parts []vargraph.Part
		for _, pt := range h.Parts {
			parts = append(parts, vargraph.Part{Size: pt.Size, Kfeat: pt.Kfeat})
		}
		partials := vargraph.Partials(target, parts, cfg.KD.FnMax, cfg.KD.PileupMax)
		score := vargraph.FindPath(graph, target, partials[1:], sp)
		score.Coverage = h.Coverage
		scores = append(scores, score)
	}

	contains := make([]map[vargraph.NodeIndex]bool, len(scores))
	for i, sc := range scores {
		m := map[vargraph.NodeIndex]bool{}
		for _, idx := range sc.Path {
			m[idx] = true
		}
		contains[i] = m
	}

	for i := 1; i < len(graph.Nodes)-1; i++ {
		idx := vargraph.NodeIndex(i)
		node := graph.Nodes[idx]
		if node.Entry == nil {
			continue
		}
		var apps []annotate.PathApplication
		for si, sc := range scores {
			apps = append(apps, annotate.PathApplication{
				ContainsVariant: contains[si][idx],
				Haplotag:        samples[si].Haplotag,
				FullTarget:      sc.FullTarget,
				SizeSim:         sc.SizeSim,
				SeqSim:          sc.SeqSim,
				Coverage:        sc.Coverage,
			})
		}
		call := annotate.Annotate(apps, coverage, ploidy, 0)
		res.entries = append(res.entries, annotateJob{rec: node.Entry, call: call})
		graph.Nodes[idx].Entry = nil
	}
	return res
}
