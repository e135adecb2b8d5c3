package tt

import (
	"math/bits"
	"unsafe"

	"github.com/Bobsaggetismine/BlackQuartz/board"
)

// Bound records whether a stored score is exact or a one-sided bound
// produced by an alpha-beta cutoff.
type Bound int8

const (
	EXACT Bound = iota
	LOWER
	UPPER
)

// Entry is one transposition-table record. A zero-value Entry is invalid
// (Valid == false); Depth is meaningful only when Valid is true.
type Entry struct {
	Depth int16
	Score int32
	Bound Bound
	Move  board.Move
	Valid bool
}

type slot struct {
	key   uint64
	entry Entry
}

// bucket pairs two slots, giving the table 2-way associativity: a
// colliding key evicts the weaker of the bucket's two occupants instead of
// its lone occupant.
type bucket struct {
	slots [2]slot
}

const defaultSizeBytes = 1 << 30 // ~1 GiB

var bucketSize = int(unsafe.Sizeof(bucket{}))

// Table is the fixed-capacity, single-threaded transposition table shared
// by every node of one search. It is exclusively owned by the search
// agent for the duration of a think() call; between calls it persists,
// and "new game" clears it.
type Table struct {
	buckets []bucket
}

// New allocates a table sized to fit approximately sizeBytes of memory.
// sizeBytes <= 0 falls back to the ~1 GiB default budget.
func New(sizeBytes int) *Table {
	if sizeBytes <= 0 {
		sizeBytes = defaultSizeBytes
	}
	var n = sizeBytes / bucketSize
	if n < 1 {
		n = 1
	}
	return &Table{buckets: make([]bucket, n)}
}

// Resize replaces the table's storage, discarding all entries. Allocation
// failure in a systems language maps in Go to letting make panic on OOM;
// callers wanting the "retain the previous table" fallback of the error
// handling design should recover around Resize and keep the old *Table.
func (t *Table) Resize(sizeBytes int) {
	var n = sizeBytes / bucketSize
	if n < 1 {
		n = 1
	}
	t.buckets = make([]bucket, n)
}

func (t *Table) index(key uint64) uint64 {
	hi, _ := bits.Mul64(key, uint64(len(t.buckets)))
	return hi
}

// Probe returns the entry addressed by key, if the bucket has a slot whose
// stored key matches. The second return value is false for a miss.
func (t *Table) Probe(key uint64) (Entry, bool) {
	var b = &t.buckets[t.index(key)]
	for i := range b.slots {
		if b.slots[i].entry.Valid && b.slots[i].key == key {
			return b.slots[i].entry, true
		}
	}
	return Entry{}, false
}

// Store inserts e under key, following §4.2's replacement policy: an
// existing slot for the same key is overwritten only at depth >= its
// current depth; an empty slot is filled outright; otherwise the shallower
// of the two slots is evicted, breaking a depth tie by preferring to evict
// a non-EXACT entry, and an entry-only tie by always picking slot 0.
func (t *Table) Store(key uint64, depth int, score int, bound Bound, move board.Move) {
	var e = Entry{
		Depth: int16(depth),
		Score: int32(score),
		Bound: bound,
		Move:  move,
		Valid: true,
	}
	if depth < 0 {
		return
	}

	var b = &t.buckets[t.index(key)]

	for i := range b.slots {
		if b.slots[i].entry.Valid && b.slots[i].key == key {
			if e.Depth >= b.slots[i].entry.Depth {
				b.slots[i] = slot{key: key, entry: e}
			}
			return
		}
	}

	for i := range b.slots {
		if !b.slots[i].entry.Valid {
			b.slots[i] = slot{key: key, entry: e}
			return
		}
	}

	var victim = 0
	var a, c = b.slots[0].entry, b.slots[1].entry
	if c.Depth < a.Depth {
		victim = 1
	} else if c.Depth == a.Depth {
		if a.Bound != EXACT && c.Bound == EXACT {
			victim = 0
		} else if c.Bound != EXACT && a.Bound == EXACT {
			victim = 1
		} else {
			victim = 0
		}
	}
	b.slots[victim] = slot{key: key, entry: e}
}

// Clear zeroes every slot, used on "new game".
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket{}
	}
}

// Len reports the number of buckets currently allocated.
func (t *Table) Len() int {
	return len(t.buckets)
}
