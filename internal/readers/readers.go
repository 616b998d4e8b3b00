// Package readers implements the ReadParser interface over BAM (biogo/hts;
// CRAM is not supported) and over a precomputed bgzip-compressed
// pileup-index file.
package readers

import "github.com/grailbio/bio-svgt/internal/pileup"

// ReadParser abstracts fetching the per-read indel pileups over a region,
// regardless of whether the backing store is a BAM or a .plup.gz index.
type ReadParser interface {
	// FindPileups returns every ReadPileup crossing [start,end) on chrom.
	FindPileups(chrom string, start, end uint64) ([]pileup.ReadPileup, error)
	Close() error
}
