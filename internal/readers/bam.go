package readers

import (
	"os"

	"github.com/biogo/hts/bam"
	"github.com/pkg/errors"

	"github.com/grailbio/bio-svgt/internal/pileup"
)

// BamParser fetches read pileups from a .bai-indexed BAM (CRAM input is not
// read), owning its own
// file handles so each worker can use one independently. Deletion
// reference sequences are fetched later, at haplotype-assembly time (see
// internal/haplotype), not here — that lets overlapping reads sharing the
// same deleted span share one reference lookup instead of one per read.
type BamParser struct {
	f      *os.File
	reader *bam.Reader
	idx    *bam.Index
	params pileup.Params
}

// NewBamParser opens bamPath (with a sibling .bai index) for indexed
// random access.
func NewBamParser(bamPath, baiPath string, params pileup.Params) (*BamParser, error) {
	f, err := os.Open(bamPath)
	if err != nil {
		return nil, errors.Wrap(err, "readers: open bam")
	}
	reader, err := bam.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "readers: bam header")
	}
	idxFile, err := os.Open(baiPath)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "readers: open bam index")
	}
	defer idxFile.Close()
	idx, err := bam.ReadIndex(idxFile)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "readers: parse bam index")
	}
	return &BamParser{f: f, reader: reader, idx: idx, params: params}, nil
}

// FindPileups implements ReadParser.
func (p *BamParser) FindPileups(chrom string, start, end uint64) ([]pileup.ReadPileup, error) {
	refID := -1
	for i, r := range p.reader.Header().Refs() {
		if r.Name() == chrom {
			refID = i
			break
		}
	}
	if refID < 0 {
		return nil, errors.Errorf("readers: unknown reference %q", chrom)
	}
	ref := p.reader.Header().Refs()[refID]

	chunks, err := p.idx.Chunks(ref, int(start), int(end))
	if err != nil {
		if err == bam.ErrNoReference {
			return nil, nil
		}
		return nil, errors.Wrap(err, "readers: index chunks")
	}
	iter, err := bam.NewIterator(p.reader, chunks)
	if err != nil {
		return nil, errors.Wrap(err, "readers: new iterator")
	}

	var out []pileup.ReadPileup
	for iter.Next() {
		rec := iter.Record()
		if rp, ok := pileup.Extract(rec, start, end, p.params); ok {
			out = append(out, rp)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "readers: bam fetch")
	}
	return out, nil
}

// Close releases the BAM file handle.
func (p *BamParser) Close() error {
	return p.f.Close()
}
