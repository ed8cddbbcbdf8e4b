// Package sample generates demonstration data for the CLI.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/panbanda/arraymath/pkg/hashtable"
)

// ErrRangeTooSmall is returned when [lo, hi) holds fewer values than requested.
var ErrRangeTooSmall = errors.New("range too small for requested size")

// Team is a sample key/value pair for hash table demonstrations.
type Team struct {
	City string `json:"city"`
	Name string `json:"name"`
}

// Teams returns sixteen city/team pairs. "Los Angeles" appears twice so the
// second insert overwrites the first.
func Teams() []Team {
	return []Team{
		{"Atlanta", "Hawks"},
		{"Boston", "Celtics"},
		{"Chicago", "Bulls"},
		{"Cleveland", "Cavaliers"},
		{"Dallas", "Mavericks"},
		{"Houston", "Rockets"},
		{"Indiana", "Pacers"},
		{"Los Angeles", "Lakers"},
		{"Los Angeles", "Clippers"},
		{"Miami", "Heat"},
		{"Minnesota", "Timberwolves"},
		{"Toronto", "Raptors"},
		{"Washington", "Wizards"},
		{"San Antonio", "Spurs"},
		{"Sacramento", "Kings"},
		{"Phoenix", "Suns"},
	}
}

// UniqueInts returns size distinct values drawn uniformly from [lo, hi).
// tick, when non-nil, is called once per accepted value.
func UniqueInts(rng *rand.Rand, size, lo, hi int, tick func()) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("size must not be negative, got %d", size)
	}
	if hi-lo < size {
		return nil, fmt.Errorf("%w: [%d, %d) for %d values", ErrRangeTooSmall, lo, hi, size)
	}

	seen, err := hashtable.New[int, struct{}](hashtable.DefaultMaxLoadFactor, hashtable.IntHasher)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, size)
	for len(out) < size {
		v := lo + rng.IntN(hi-lo)
		if _, dup := seen.Lookup(v); dup {
			continue
		}
		seen.Insert(v, struct{}{})
		out = append(out, v)
		if tick != nil {
			tick()
		}
	}
	return out, nil
}
