package main

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf"
	"github.com/biogo/hts/sam"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/bio-svgt/internal/params"
	"github.com/grailbio/bio-svgt/internal/pileup"
)

type pileupIndexFlags struct {
	bam, out          *string
	kmer              *int
	sizemin, sizemax  *int64
	mapq              *int
	mapflag           *int
}

func newCmdPileupIndex() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "pileup-index",
		Short: "precompute a bgzip-compressed indel pileup index from a BAM",
	}
	f := pileupIndexFlags{
		bam:     cmd.Flags.String("bam", "", "Input BAM (required); CRAM is not supported"),
		out:     cmd.Flags.String("out", "", "Output .plup.gz path (required)"),
		kmer:    cmd.Flags.Int("kmer", params.Default().Kmer, "k-mer size recorded in the index header"),
		sizemin: cmd.Flags.Int64("sizemin", params.Default().SizeMin, "minimum indel size to record"),
		sizemax: cmd.Flags.Int64("sizemax", params.Default().SizeMax, "maximum indel size to record"),
		mapq:    cmd.Flags.Int("mapq", int(params.Default().MapQ), "minimum mapping quality"),
		mapflag: cmd.Flags.Int("mapflag", int(params.Default().MapFlag), "SAM flag bits to reject"),
	}
	cmd.Runner = runnerFunc(func(env *cmdline.Env, args []string) error {
		return runPileupIndex(f)
	})
	return cmd
}

func runPileupIndex(f pileupIndexFlags) error {
	entry := log.WithField("cmd", "pileup-index")
	if *f.bam == "" || *f.out == "" {
		entry.Error("--bam and --out are required")
		os.Exit(1)
	}

	in, err := os.Open(*f.bam)
	if err != nil {
		entry.Errorf("open bam: %v", err)
		os.Exit(1)
	}
	defer in.Close()
	reader, err := bam.NewReader(in, 1)
	if err != nil {
		entry.Errorf("read bam header: %v", err)
		os.Exit(1)
	}

	out, err := os.Create(*f.out)
	if err != nil {
		entry.Errorf("create output: %v", err)
		os.Exit(1)
	}
	defer out.Close()
	bgzfWriter := bgzf.NewWriter(out, 1)
	defer bgzfWriter.Close()
	w := bufio.NewWriter(bgzfWriter)
	defer w.Flush()

	hdr, _ := json.Marshal(pileup.IndexParams{
		Kmer: *f.kmer, SizeMin: *f.sizemin, SizeMax: *f.sizemax,
		MapQ: byte(*f.mapq), MapFlag: uint16(*f.mapflag),
	})
	w.WriteString("# ")
	w.Write(hdr)
	w.WriteString("\n")

	p := pileup.Params{SizeMin: *f.sizemin, SizeMax: *f.sizemax, MapQMin: byte(*f.mapq), MapFlagMask: sam.Flags(*f.mapflag)}
	refs := reader.Header().Refs()
	count := 0
	for {
		rec, err := reader.Read()
		if err != nil {
			break
		}
		rp, ok := pileup.Extract(rec, uint64(rec.Pos), uint64(rec.Pos), p)
		if !ok {
			continue
		}
		chrom := "*"
		if rec.Ref != nil {
			chrom = refs[rec.Ref.ID()].Name()
		}
		w.WriteString(pileup.EncodeLine(chrom, rp))
		w.WriteString("\n")
		count++
	}
	entry.Infof("indexed %d reads", count)
	return nil
}
