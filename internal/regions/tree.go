// Package regions implements the include-BED region tree used by the
// chunker and the ploidy-BED interval lookup used by dispatch.
package regions

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type span struct {
	start, end uint64
}

// Tree is a chrom -> sorted deque of [start,end) regions, consumed
// front-to-back as the catalog is scanned in position order.
type Tree struct {
	byChrom map[string][]span
}

// NewTree builds an empty Tree; an empty Tree means "no restriction" to
// callers (they should only consult it if non-empty).
func NewTree() *Tree {
	return &Tree{byChrom: map[string][]span{}}
}

// ParseBED reads a 3-column BED into a Tree, sorted per chromosome.
func ParseBED(r io.Reader) (*Tree, error) {
	t := NewTree()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, errors.Errorf("regions: malformed BED line %q", line)
		}
		start, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "regions: bad BED start")
		}
		end, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "regions: bad BED end")
		}
		t.byChrom[fields[0]] = append(t.byChrom[fields[0]], span{start, end})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "regions: reading BED")
	}
	for chrom := range t.byChrom {
		sort.Slice(t.byChrom[chrom], func(i, j int) bool {
			return t.byChrom[chrom][i].start < t.byChrom[chrom][j].start
		})
	}
	return t, nil
}

// Empty reports whether the tree has no regions at all (no restriction).
func (t *Tree) Empty() bool {
	return len(t.byChrom) == 0
}

// Deque yields a fresh front-popping cursor for one chromosome's spans.
func (t *Tree) Deque(chrom string) *Deque {
	spans := t.byChrom[chrom]
	return &Deque{spans: spans}
}

// Deque is a consume-once, front-to-back cursor over one chromosome's
// regions, matching the chunker's "pop fronts whose end precedes the
// variant" scan pattern.
type Deque struct {
	spans []span
	idx   int
}

// Contains reports whether [start,end) lies fully inside the currently
// fronted region, popping any regions whose end precedes start first.
// Returns false once the deque is exhausted.
func (d *Deque) Contains(start, end uint64) bool {
	for d.idx < len(d.spans) && d.spans[d.idx].end <= start {
		d.idx++
	}
	if d.idx >= len(d.spans) {
		return false
	}
	cur := d.spans[d.idx]
	return start >= cur.start && end <= cur.end
}
