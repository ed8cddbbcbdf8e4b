// Package hashtable implements an open-addressed map with quadratic probing
// over a prime-sized backing array.
//
// A key's probe sequence starts at hash(key) mod capacity and advances by odd
// offsets 1, 3, 5, ... so the i-th probe lands on home + i*i. Because the
// capacity is always prime and the table grows before the load factor
// reaches the configured maximum, the sequence reaches either the key or an
// empty slot before it runs out of distinct positions.
//
// Deletion clears the slot immediately and leaves no tombstone. A key whose
// probe sequence passed through the cleared slot on its way to its own slot
// can no longer be found until the next resize rehashes it:
//
//	t.Insert(a, 1) // lands on home slot h
//	t.Insert(b, 2) // collides with a, lands on h+1
//	t.Delete(a)    // h is empty again
//	t.Lookup(b)    // stops at h and reports b as absent
//
// A Table is not safe for concurrent use.
package hashtable
