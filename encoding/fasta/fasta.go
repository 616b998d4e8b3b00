// Package fasta contains code for parsing indexed FASTA files.
// See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files consist of
// a number of named sequences that may be interrupted by newlines.  For
// example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appearing after a space is
// ignored. For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fasta represents FASTA-formatted data, consisting of a set of named
// sequences, accessible by random-access substring lookup.
type Fasta interface {
	// Get returns a substring of the given sequence name at the given
	// coordinates, treated as a 0-based half-open interval [start, end).
	Get(seqName string, start, end uint64) (string, error)

	// Len returns the length of the given sequence.
	Len(seqName string) (uint64, error)

	// SeqNames returns the names of all sequences, in file order.
	SeqNames() []string
}

// record is one .fai index line: name, sequence length, byte offset of the
// sequence's first base, bases per line, bytes per line (bases + line
// terminator).
type record struct {
	length    uint64
	offset    int64
	lineBases uint64
	lineBytes uint64
}

// Indexed is a random-access FASTA reader backed by a .fai index, matching
// samtools faidx's index format.
type Indexed struct {
	f       *os.File
	names   []string
	records map[string]record
}

// NewIndexed opens a FASTA file at fastaPath along with its .fai index at
// faiPath.
func NewIndexed(fastaPath, faiPath string) (*Indexed, error) {
	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, errors.Wrap(err, "fasta: open")
	}
	faiFile, err := os.Open(faiPath)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "fasta: open index")
	}
	defer faiFile.Close()

	idx := &Indexed{f: f, records: map[string]record{}}
	scanner := bufio.NewScanner(faiFile)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, errors.Errorf("fasta: malformed .fai line %q", line)
		}
		length, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "fasta: bad length in .fai")
		}
		offset, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "fasta: bad offset in .fai")
		}
		lineBases, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "fasta: bad linebases in .fai")
		}
		lineBytes, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "fasta: bad linewidth in .fai")
		}
		name := fields[0]
		idx.names = append(idx.names, name)
		idx.records[name] = record{length: length, offset: offset, lineBases: lineBases, lineBytes: lineBytes}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "fasta: reading .fai")
	}
	return idx, nil
}

// Close releases the underlying file handle.
func (idx *Indexed) Close() error {
	return idx.f.Close()
}

// SeqNames implements Fasta.
func (idx *Indexed) SeqNames() []string {
	return idx.names
}

// Len implements Fasta.
func (idx *Indexed) Len(seqName string) (uint64, error) {
	rec, ok := idx.records[seqName]
	if !ok {
		return 0, errors.Errorf("fasta: unknown sequence %q", seqName)
	}
	return rec.length, nil
}

// Get implements Fasta.
func (idx *Indexed) Get(seqName string, start, end uint64) (string, error) {
	rec, ok := idx.records[seqName]
	if !ok {
		return "", errors.Errorf("fasta: unknown sequence %q", seqName)
	}
	if end > rec.length {
		end = rec.length
	}
	if start >= end {
		return "", nil
	}
	if rec.lineBases == 0 {
		return "", errors.Errorf("fasta: %q has zero line width", seqName)
	}

	startLine := start / rec.lineBases
	startLineOff := start % rec.lineBases
	byteOffset := rec.offset + int64(startLine*rec.lineBytes) + int64(startLineOff)

	n := end - start
	out := make([]byte, 0, n)
	buf := make([]byte, rec.lineBases)
	pos := start
	off := byteOffset
	for pos < end {
		remainingInLine := rec.lineBases - (pos % rec.lineBases)
		want := remainingInLine
		if uint64(len(out))+want > n {
			want = n - uint64(len(out))
		}
		read := buf[:want]
		if _, err := idx.f.ReadAt(read, off); err != nil && err != io.EOF {
			return "", errors.Wrap(err, "fasta: read")
		}
		out = append(out, read...)
		off += int64(want) + int64(rec.lineBytes-rec.lineBases)
		pos += want
	}
	return string(out), nil
}
