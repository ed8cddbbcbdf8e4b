package hashtable

import (
	"errors"
	"fmt"
	"iter"

	"github.com/panbanda/arraymath/pkg/prime"
)

const (
	// DefaultCapacity is the initial number of slots. It must remain prime.
	DefaultCapacity = 13

	// DefaultMaxLoadFactor keeps every probe sequence able to reach an empty slot.
	DefaultMaxLoadFactor = 0.5
)

// ErrInvalidLoadFactor is returned when the maximum load factor is not in (0, 1).
var ErrInvalidLoadFactor = errors.New("max load factor must be in (0, 1)")

// Entry is a key/value pair stored in a slot.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

type slot[K comparable, V any] struct {
	entry Entry[K, V]
	used  bool
}

// ResizeFunc is called after the table has been rehashed into a larger array.
type ResizeFunc func(oldCapacity, newCapacity, size int)

// Option configures a Table.
type Option func(*options)

type options struct {
	onResize ResizeFunc
}

// WithResizeHook registers fn to be called after every resize.
func WithResizeHook(fn ResizeFunc) Option {
	return func(o *options) {
		o.onResize = fn
	}
}

// Table is an open-addressed hash map using quadratic probing.
type Table[K comparable, V any] struct {
	slots         []slot[K, V]
	size          int
	maxLoadFactor float64
	hash          Hasher[K]
	onResize      ResizeFunc
}

// New creates a table with DefaultCapacity slots that grows once the load
// factor reaches maxLoadFactor. A nil hash uses ComparableHasher.
func New[K comparable, V any](maxLoadFactor float64, hash Hasher[K], opts ...Option) (*Table[K, V], error) {
	if !(maxLoadFactor > 0 && maxLoadFactor < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLoadFactor, maxLoadFactor)
	}
	if hash == nil {
		hash = ComparableHasher[K]()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Table[K, V]{
		slots:         make([]slot[K, V], DefaultCapacity),
		maxLoadFactor: maxLoadFactor,
		hash:          hash,
		onResize:      o.onResize,
	}, nil
}

// Len returns the number of occupied slots.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Capacity returns the length of the backing array.
func (t *Table[K, V]) Capacity() int {
	return len(t.slots)
}

// MaxLoadFactor returns the threshold configured at construction.
func (t *Table[K, V]) MaxLoadFactor() float64 {
	return t.maxLoadFactor
}

// LoadFactor returns occupied slots divided by capacity.
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.slots))
}

// Insert stores value under key, replacing the value of an existing key.
// Only a new key can trigger a resize.
func (t *Table[K, V]) Insert(key K, value V) {
	pos, ok := t.probe(key)
	for !ok {
		// Unreachable while the load factor stays at or below 0.5.
		t.resize()
		pos, ok = t.probe(key)
	}

	s := &t.slots[pos]
	if s.used {
		s.entry.Value = value
		return
	}

	s.entry = Entry[K, V]{Key: key, Value: value}
	s.used = true
	t.size++

	if t.LoadFactor() >= t.maxLoadFactor {
		t.resize()
	}
}

// Lookup returns the value stored under key.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	pos, ok := t.probe(key)
	if !ok || !t.slots[pos].used {
		var zero V
		return zero, false
	}
	return t.slots[pos].entry.Value, true
}

// Delete clears the slot holding key and reports whether it was present.
// The slot becomes empty, not a tombstone.
func (t *Table[K, V]) Delete(key K) bool {
	pos, ok := t.probe(key)
	if !ok || !t.slots[pos].used {
		return false
	}
	t.slots[pos] = slot[K, V]{}
	t.size--
	return true
}

// All yields every stored key/value pair in slot order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.slots {
			if !t.slots[i].used {
				continue
			}
			if !yield(t.slots[i].entry.Key, t.slots[i].entry.Value) {
				return
			}
		}
	}
}

// Slots yields the index and entry of every occupied slot.
func (t *Table[K, V]) Slots() iter.Seq2[int, Entry[K, V]] {
	return func(yield func(int, Entry[K, V]) bool) {
		for i := range t.slots {
			if !t.slots[i].used {
				continue
			}
			if !yield(i, t.slots[i].entry) {
				return
			}
		}
	}
}

// probe walks the quadratic probe sequence of key and returns the first slot
// that is empty or holds key. ok is false when capacity probes found neither.
func (t *Table[K, V]) probe(key K) (pos int, ok bool) {
	capacity := len(t.slots)
	pos = int(t.hash(key) % uint64(capacity))
	offset := 1

	for range capacity {
		s := &t.slots[pos]
		if !s.used || s.entry.Key == key {
			return pos, true
		}
		pos = (pos + offset) % capacity
		offset += 2
	}
	return 0, false
}

// resize rehashes every entry into the next prime at least twice the
// current capacity, going through Insert so positions are recomputed.
func (t *Table[K, V]) resize() {
	old := t.slots
	t.slots = make([]slot[K, V], prime.Next(2*len(old)))
	t.size = 0

	for i := range old {
		if old[i].used {
			t.Insert(old[i].entry.Key, old[i].entry.Value)
		}
	}

	if t.onResize != nil {
		t.onResize(len(old), len(t.slots), t.size)
	}
}

// Equal reports whether a and b hold the same keys mapped to equal values.
// Entries are matched by key, so the tables may differ in capacity, hasher
// and insertion order.
func Equal[K, V comparable](a, b *Table[K, V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		other, ok := b.Lookup(k)
		if !ok || other != v {
			return false
		}
	}
	return true
}
