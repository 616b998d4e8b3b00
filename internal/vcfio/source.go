package vcfio

import (
	"io"

	"github.com/brentp/vcfgo"
	"github.com/pkg/errors"
)

// Source streams catalog records from an indexed VCF.
type Source struct {
	rdr    *vcfgo.Reader
	Header *vcfgo.Header
}

// OpenSource opens a VCF for streaming reads.
func OpenSource(r io.Reader) (*Source, error) {
	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "vcfio: open vcf")
	}
	return &Source{rdr: rdr, Header: rdr.Header}, nil
}

// Next returns the next record, or nil at end of stream. A malformed
// record is logged by vcfgo internally and skipped, per spec: recoverable
// mid-stream errors keep output count equal to input count by virtue of the
// chunker re-emitting every seen record (valid or not) as ./. when
// filtered out.
func (s *Source) Next() *Record {
	v := s.rdr.Read()
	if v == nil {
		return nil
	}
	return NewRecord(v)
}

// Error returns the first parse error encountered, if any.
func (s *Source) Error() error {
	return s.rdr.Error()
}
