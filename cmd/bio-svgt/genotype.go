package main

import (
	"os"
	"strings"

	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/bio-svgt/encoding/fasta"
	"github.com/grailbio/bio-svgt/internal/chunker"
	"github.com/grailbio/bio-svgt/internal/dispatch"
	"github.com/grailbio/bio-svgt/internal/params"
	"github.com/grailbio/bio-svgt/internal/pileup"
	"github.com/grailbio/bio-svgt/internal/readers"
	"github.com/grailbio/bio-svgt/internal/regions"
	"github.com/grailbio/bio-svgt/internal/vcfio"
)

type genotypeFlags struct {
	io IOFlags
	kd KDFlags
}

type IOFlags struct {
	input, reads, reference, out, bed, ploidyBed, sample *string
	threads                                              *int
}

type KDFlags struct {
	kmer, fnmax, pileupmax, maxnodes, maxhom          *int
	neighdist, chunksize                              *uint64
	passonly, oneToOne                                *bool
	sizemin, sizemax                                  *int64
	maxpaths                                          *int
	seqsim, sizesim, hapsim, gpenalty, fpenalty, hpsw *float64
	minkfreq                                          *float64
	mapq                                              *int
	mapflag                                           *int
}

func newCmdGenotype() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "genotype",
		Short: "genotype a structural-variant catalog against long reads",
	}
	f := genotypeFlags{
		io: IOFlags{
			input:     cmd.Flags.String("input", "", "Input catalog VCF (required)"),
			reads:     cmd.Flags.String("reads", "", "BAM (with .bai index) or .plup.gz reads file (required); CRAM is not supported"),
			reference: cmd.Flags.String("reference", "", "Reference FASTA with .fai index (required)"),
			out:       cmd.Flags.String("out", "", "Output VCF path (default stdout)"),
			bed:       cmd.Flags.String("bed", "", "Restrict to regions in this BED"),
			ploidyBed: cmd.Flags.String("ploidy-bed", "", "Ploidy override BED (4th column 0 or 1)"),
			sample:    cmd.Flags.String("sample", "SAMPLE", "Output sample name"),
			threads:   cmd.Flags.Int("threads", 1, "Worker thread count"),
		},
		kd: KDFlags{
			kmer:      cmd.Flags.Int("kmer", params.Default().Kmer, "k-mer size"),
			neighdist: cmd.Flags.Uint64("neighdist", params.Default().NeighDist, "read-fetch window padding"),
			chunksize: cmd.Flags.Uint64("chunksize", params.Default().ChunkSize, "chunk-boundary distance"),
			passonly:  cmd.Flags.Bool("passonly", false, "only consider FILTER=PASS or ."),
			sizemin:   cmd.Flags.Int64("sizemin", params.Default().SizeMin, "minimum SV size"),
			sizemax:   cmd.Flags.Int64("sizemax", params.Default().SizeMax, "maximum SV size"),
			maxpaths:  cmd.Flags.Int("maxpaths", params.Default().MaxPaths, "max scored paths per haplotype"),
			seqsim:    cmd.Flags.Float64("seqsim", params.Default().SeqSim, "minimum sequence similarity"),
			sizesim:   cmd.Flags.Float64("sizesim", params.Default().SizeSim, "minimum size similarity"),
			minkfreq:  cmd.Flags.Float64("minkfreq", float64(params.Default().MinKFreq), "k-mer frequency threshold"),
			hapsim:    cmd.Flags.Float64("hapsim", params.Default().HapSim, "haplotype merge threshold"),
			gpenalty:  cmd.Flags.Float64("gpenalty", params.Default().GPenalty, "graph penalty (reserved)"),
			fpenalty:  cmd.Flags.Float64("fpenalty", params.Default().FPenalty, "path penalty (reserved)"),
			fnmax:     cmd.Flags.Int("fnmax", params.Default().FnMax, "max excluded components in a partial target"),
			pileupmax: cmd.Flags.Int("pileupmax", params.Default().PileupMax, "component count above which only the full target is used"),
			hpsw:      cmd.Flags.Float64("hps_weight", params.Default().HPSWeight, "haplotag mismatch distance penalty"),
			mapq:      cmd.Flags.Int("mapq", int(params.Default().MapQ), "minimum mapping quality"),
			mapflag:   cmd.Flags.Int("mapflag", int(params.Default().MapFlag), "SAM flag bits to reject"),
			oneToOne:  cmd.Flags.Bool("one-to-one", false, "skip DFS, score each catalog entry independently"),
			maxnodes:  cmd.Flags.Int("maxnodes", params.Default().MaxNodes, "node count above which one-to-one mode is forced"),
			maxhom:    cmd.Flags.Int("maxhom", params.Default().MaxHom, "homopolymer compression length (0 disables)"),
		},
	}
	cmd.Runner = runnerFunc(func(env *cmdline.Env, args []string) error {
		return runGenotype(f)
	})
	return cmd
}

func (f genotypeFlags) toKD() params.KDParams {
	return params.KDParams{
		Kmer: *f.kd.kmer, NeighDist: *f.kd.neighdist, ChunkSize: *f.kd.chunksize,
		PassOnly: *f.kd.passonly, SizeMin: *f.kd.sizemin, SizeMax: *f.kd.sizemax,
		MaxPaths: *f.kd.maxpaths, SeqSim: *f.kd.seqsim, SizeSim: *f.kd.sizesim,
		MinKFreq: float32(*f.kd.minkfreq), HapSim: *f.kd.hapsim,
		GPenalty: *f.kd.gpenalty, FPenalty: *f.kd.fpenalty, FnMax: *f.kd.fnmax,
		PileupMax: *f.kd.pileupmax, HPSWeight: *f.kd.hpsw, MapQ: byte(*f.kd.mapq),
		MapFlag: uint16(*f.kd.mapflag), OneToOne: *f.kd.oneToOne, MaxNodes: *f.kd.maxnodes,
		MaxHom: *f.kd.maxhom,
	}
}

func runGenotype(f genotypeFlags) error {
	entry := log.WithField("cmd", "genotype")
	entry.Info("starting")

	if *f.io.input == "" || *f.io.reads == "" || *f.io.reference == "" {
		entry.Error("--input, --reads, and --reference are required")
		os.Exit(1)
	}

	kd := f.toKD()
	warnings, err := kd.Validate()
	if err != nil {
		entry.Errorf("invalid parameters: %v", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		entry.Warn(w)
	}

	ref, err := fasta.NewIndexed(*f.io.reference, *f.io.reference+".fai")
	if err != nil {
		entry.Errorf("open reference: %v", err)
		os.Exit(1)
	}
	defer ref.Close()

	inFile, err := os.Open(*f.io.input)
	if err != nil {
		entry.Errorf("open input vcf: %v", err)
		os.Exit(1)
	}
	defer inFile.Close()
	src, err := vcfio.OpenSource(inFile)
	if err != nil {
		entry.Errorf("parse input vcf: %v", err)
		os.Exit(1)
	}

	tree := regions.NewTree()
	if *f.io.bed != "" {
		bedFile, err := os.Open(*f.io.bed)
		if err != nil {
			entry.Errorf("open bed: %v", err)
			os.Exit(1)
		}
		defer bedFile.Close()
		tree, err = regions.ParseBED(bedFile)
		if err != nil {
			entry.Errorf("parse bed: %v", err)
			os.Exit(1)
		}
	}

	var ploidyIdx *regions.PloidyIndex
	if *f.io.ploidyBed != "" {
		pbFile, err := os.Open(*f.io.ploidyBed)
		if err != nil {
			entry.Errorf("open ploidy-bed: %v", err)
			os.Exit(1)
		}
		defer pbFile.Close()
		ploidyIdx, err = regions.ParsePloidyBED(pbFile)
		if err != nil {
			entry.Errorf("parse ploidy-bed: %v", err)
			os.Exit(1)
		}
	}

	out := os.Stdout
	if *f.io.out != "" {
		out, err = os.Create(*f.io.out)
		if err != nil {
			entry.Errorf("create output: %v", err)
			os.Exit(1)
		}
		defer out.Close()
	}
	writer, err := vcfio.NewWriter(out, src.Header, *f.io.sample, entry)
	if err != nil {
		entry.Errorf("open writer: %v", err)
		os.Exit(1)
	}

	c := chunker.New(src, tree, chunker.Params{
		PassOnly: kd.PassOnly, SizeMin: kd.SizeMin, SizeMax: kd.SizeMax, ChunkSize: kd.ChunkSize,
	})

	isPlup := strings.HasSuffix(*f.io.reads, ".plup.gz")
	newReader := func() (readers.ReadParser, error) {
		if isPlup {
			p, err := readers.NewPlupParser(*f.io.reads)
			if err != nil {
				return nil, errors.Wrap(err, "open plup reader")
			}
			checkPlupParams(p.Params, kd, entry)
			return p, nil
		}
		return readers.NewBamParser(*f.io.reads, *f.io.reads+".bai", pileup.Params{
			SizeMin: kd.SizeMin, SizeMax: kd.SizeMax, MapQMin: kd.MapQ,
			MapFlagMask: sam.Flags(kd.MapFlag), NeighDist: kd.NeighDist,
		})
	}

	cfg := dispatch.Config{
		Threads:   *f.io.threads,
		KD:        kd,
		Ref:       ref,
		Ploidy:    ploidyIdx,
		NewReader: newReader,
		Writer:    writer,
		Log:       entry,
	}
	return dispatch.Run(c, cfg)
}

func checkPlupParams(got pileup.IndexParams, kd params.KDParams, log interface{ Warnf(string, ...interface{}) }) {
	if got.Kmer != 0 && got.Kmer != kd.Kmer {
		log.Warnf("plup index kmer=%d differs from run kmer=%d", got.Kmer, kd.Kmer)
	}
	if got.SizeMin != 0 && got.SizeMin != kd.SizeMin {
		log.Warnf("plup index sizemin=%d differs from run sizemin=%d", got.SizeMin, kd.SizeMin)
	}
	if got.SizeMax != 0 && got.SizeMax != kd.SizeMax {
		log.Warnf("plup index sizemax=%d differs from run sizemax=%d", got.SizeMax, kd.SizeMax)
	}
	if got.MapQ != 0 && got.MapQ != kd.MapQ {
		log.Warnf("plup index mapq=%d differs from run mapq=%d", got.MapQ, kd.MapQ)
	}
	if got.MapFlag != 0 && got.MapFlag != kd.MapFlag {
		log.Warnf("plup index mapflag=%d differs from run mapflag=%d", got.MapFlag, kd.MapFlag)
	}
}
