package pileup

import (
	"github.com/biogo/hts/sam"
)

// Params bounds the read-pileup extraction: only indel events whose
// absolute size lies in [SizeMin, SizeMax] are reported, reads are rejected
// below MapQMin or matching MapFlagMask, and a read must fully span
// [Start-NeighDist, End+NeighDist] to be considered.
type Params struct {
	SizeMin    int64
	SizeMax    int64
	MapQMin    byte
	MapFlagMask sam.Flags
	NeighDist  uint64
}

var (
	tagPS = sam.Tag{'P', 'S'}
	tagHP = sam.Tag{'H', 'P'}
)

// Extract walks a single alignment record's CIGAR and returns the ReadPileup
// of every size-qualifying indel event along the whole read (events are not
// restricted to [start,end]), or ok=false if the read is rejected outright
// (empty sequence, mapq, flags, or not spanning the padded window).
func Extract(r *sam.Record, start, end uint64, p Params) (ReadPileup, bool) {
	seq := r.Seq.Expand()
	if len(seq) == 0 {
		return ReadPileup{}, false
	}
	if r.MapQ < p.MapQMin {
		return ReadPileup{}, false
	}
	if r.Flags&p.MapFlagMask != 0 {
		return ReadPileup{}, false
	}

	winStart := start - p.NeighDist
	if p.NeighDist > start {
		winStart = 0
	}
	winEnd := end + p.NeighDist

	refStart := uint64(r.Pos)
	refEnd := refStart
	for _, op := range r.Cigar {
		switch op.Type() {
		case sam.CigarMatch, sam.CigarMismatch, sam.CigarEqual, sam.CigarDeletion, sam.CigarSkipped:
			refEnd += uint64(op.Len())
		}
	}
	if refStart > winStart || refEnd < winEnd {
		return ReadPileup{}, false
	}

	out := ReadPileup{
		ChromID: int32(r.Ref.ID()),
		Start:   refStart,
		End:     refEnd,
	}

	var readOffset int
	// Starts at refStart rather than refStart-1 (bamparser.rs's convention):
	// this walk only advances alignOffset past Match/Mismatch/Equal ops
	// before reading it at a Deletion, so it's already the 0-based
	// reference coordinate of the deleted span's first base.
	alignOffset := refStart
	for _, op := range r.Cigar {
		n := op.Len()
		switch op.Type() {
		case sam.CigarMatch, sam.CigarMismatch, sam.CigarEqual:
			readOffset += n
			alignOffset += uint64(n)
		case sam.CigarSoftClipped:
			readOffset += n
		case sam.CigarHardClipped, sam.CigarPadded:
			// no-op
		case sam.CigarInsertion:
			size := int64(n)
			if size >= p.SizeMin && size <= p.SizeMax && readOffset+n <= len(seq) {
				ins := make([]byte, n)
				copy(ins, seq[readOffset:readOffset+n])
				out.Pileups = append(out.Pileups, Variant{
					Position: alignOffset,
					End:      alignOffset,
					Kind:     Ins,
					Size:     size,
					Sequence: ins,
				})
			}
			readOffset += n
		case sam.CigarDeletion:
			size := int64(n)
			if size >= p.SizeMin && size <= p.SizeMax {
				out.Pileups = append(out.Pileups, Variant{
					Position: alignOffset,
					End:      alignOffset + uint64(n),
					Kind:     Del,
					Size:     -size,
				})
			}
			alignOffset += uint64(n)
		case sam.CigarSkipped:
			alignOffset += uint64(n)
		}
	}

	for _, aux := range r.AuxFields {
		switch aux.Tag() {
		case tagPS:
			if v, ok := aux.Value().(int); ok {
				ps := uint16(v)
				out.PhaseSet = &ps
			}
		case tagHP:
			if v, ok := aux.Value().(int); ok {
				hp := uint8(v)
				out.Haplotag = &hp
			}
		}
	}

	return out, true
}
