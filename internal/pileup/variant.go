// Package pileup extracts indel events from alignment records (or a
// precomputed pileup-index file) and encodes/decodes the pileup-index
// line format.
package pileup

// Kind distinguishes an insertion from a deletion pileup event.
type Kind uint8

const (
	Ins Kind = iota
	Del
)

// Variant is a single indel observation within one read, comparable by
// (Position, Size, Kind) plus Sequence when Kind is Ins — deletions compare
// without sequence since the reference substring defines them.
type Variant struct {
	Position uint64
	End      uint64
	Kind     Kind
	Size     int64 // positive for Ins, negative for Del
	Sequence []byte
}

// Key returns a hashable identity for deduplicating variants, matching the
// equality semantics described for Variant.
func (v Variant) Key() string {
	if v.Kind == Ins {
		return string(rune(v.Kind)) + itoa(int64(v.Position)) + ":" + itoa(v.Size) + ":" + string(v.Sequence)
	}
	return string(rune(v.Kind)) + itoa(int64(v.Position)) + ":" + itoa(v.Size)
}

func itoa(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ReadPileup bundles the indel events observed on a single read crossing a
// fetched window.
type ReadPileup struct {
	ChromID   int32
	Start     uint64
	End       uint64
	Pileups   []Variant
	PhaseSet  *uint16
	Haplotag  *uint8
}
