package readers

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/pkg/errors"

	"github.com/grailbio/bio-svgt/internal/pileup"
)

// PlupParser reads a bgzip-compressed .plup pileup-index sequentially,
// matching ReadPileups against the requested window. It does not use the
// .tbi index for seeking (the format's flat scan is cheap enough per
// chunk-sized region in practice); IndexParams from the header line are
// exposed for the genotyper's cross-check.
type PlupParser struct {
	f      *os.File
	Params pileup.IndexParams
}

// NewPlupParser opens a .plup.gz file, parsing its JSON header line.
func NewPlupParser(path string) (*PlupParser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "readers: open plup")
	}
	bgzfReader, err := bgzf.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "readers: plup bgzf header")
	}
	scanner := bufio.NewScanner(bgzfReader)
	var params pileup.IndexParams
	if scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "# ") {
			if err := json.Unmarshal([]byte(line[2:]), &params); err != nil {
				f.Close()
				return nil, errors.Wrap(err, "readers: plup header json")
			}
		}
	}
	return &PlupParser{f: f, Params: params}, nil
}

// FindPileups implements ReadParser by re-opening a fresh bgzf stream and
// scanning for lines in [start,end) on chrom. Each call owns its scan so
// concurrent callers sharing a PlupParser would need independent handles;
// dispatch gives each worker its own PlupParser instance.
func (p *PlupParser) FindPileups(chrom string, start, end uint64) ([]pileup.ReadPileup, error) {
	if _, err := p.f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "readers: plup seek")
	}
	r, err := bgzf.NewReader(p.f, 1)
	if err != nil {
		return nil, errors.Wrap(err, "readers: plup bgzf reopen")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var out []pileup.ReadPileup
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if strings.HasPrefix(line, "# ") {
				continue
			}
		}
		c, rp, err := pileup.DecodeLine(line)
		if err != nil {
			return nil, errors.Wrap(err, "readers: plup decode")
		}
		if c != chrom {
			continue
		}
		if rp.End <= start || rp.Start >= end {
			continue
		}
		out = append(out, rp)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "readers: plup scan")
	}
	return out, nil
}

// Close releases the underlying file handle.
func (p *PlupParser) Close() error {
	return p.f.Close()
}
