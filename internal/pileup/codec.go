package pileup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IndexParams is the JSON header recorded as the first line of a .plup file,
// used to cross-check a precomputed pileup-index against a genotyping run's
// own parameters.
type IndexParams struct {
	Kmer    int    `json:"kmer"`
	SizeMin int64  `json:"sizemin"`
	SizeMax int64  `json:"sizemax"`
	MapQ    byte   `json:"mapq"`
	MapFlag uint16 `json:"mapflag"`
}

// EncodeLine renders a ReadPileup as one tab-separated .plup line:
// chrom<TAB>start<TAB>end<TAB>pileups<TAB>PS<TAB>HP
func EncodeLine(chrom string, rp ReadPileup) string {
	var sb strings.Builder
	sb.WriteString(chrom)
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(rp.Start, 10))
	sb.WriteByte('\t')
	sb.WriteString(strconv.FormatUint(rp.End, 10))
	sb.WriteByte('\t')
	if len(rp.Pileups) == 0 {
		sb.WriteByte('.')
	} else {
		for i, v := range rp.Pileups {
			if i > 0 {
				sb.WriteByte(',')
			}
			offset := v.Position - rp.Start
			if v.Kind == Del {
				fmt.Fprintf(&sb, "%d:%d", offset, -v.Size)
			} else {
				fmt.Fprintf(&sb, "%d:%s", offset, v.Sequence)
			}
		}
	}
	sb.WriteByte('\t')
	if rp.PhaseSet != nil {
		sb.WriteString(strconv.Itoa(int(*rp.PhaseSet)))
	} else {
		sb.WriteByte('.')
	}
	sb.WriteByte('\t')
	if rp.Haplotag != nil {
		sb.WriteString(strconv.Itoa(int(*rp.Haplotag)))
	} else {
		sb.WriteByte('.')
	}
	return sb.String()
}

// DecodeLine parses one .plup data line (not the JSON header line) back into
// a chromosome name and a ReadPileup.
func DecodeLine(line string) (string, ReadPileup, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		return "", ReadPileup{}, errors.Errorf("plup: expected 6 fields, got %d", len(fields))
	}
	start, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return "", ReadPileup{}, errors.Wrap(err, "plup: bad start")
	}
	end, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return "", ReadPileup{}, errors.Wrap(err, "plup: bad end")
	}
	rp := ReadPileup{Start: start, End: end}

	if fields[3] != "." {
		for _, tok := range strings.Split(fields[3], ",") {
			parts := strings.SplitN(tok, ":", 2)
			if len(parts) != 2 {
				return "", ReadPileup{}, errors.Errorf("plup: bad pileup token %q", tok)
			}
			offset, err := strconv.ParseUint(parts[0], 10, 64)
			if err != nil {
				return "", ReadPileup{}, errors.Wrap(err, "plup: bad offset")
			}
			pos := start + offset
			if size, err := strconv.ParseInt(parts[1], 10, 64); err == nil {
				rp.Pileups = append(rp.Pileups, Variant{
					Position: pos,
					End:      pos + uint64(size),
					Kind:     Del,
					Size:     -size,
				})
			} else {
				seq := []byte(parts[1])
				rp.Pileups = append(rp.Pileups, Variant{
					Position: pos,
					End:      pos,
					Kind:     Ins,
					Size:     int64(len(seq)),
					Sequence: seq,
				})
			}
		}
	}

	if fields[4] != "." {
		v, err := strconv.Atoi(fields[4])
		if err != nil {
			return "", ReadPileup{}, errors.Wrap(err, "plup: bad PS")
		}
		ps := uint16(v)
		rp.PhaseSet = &ps
	}
	if fields[5] != "." {
		v, err := strconv.Atoi(fields[5])
		if err != nil {
			return "", ReadPileup{}, errors.Wrap(err, "plup: bad HP")
		}
		hp := uint8(v)
		rp.Haplotag = &hp
	}

	return fields[0], rp, nil
}
