// Package objectid defines object identifiers and the registry that hands them out.
package objectid

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// ObjectID addresses one object within a pool.
type ObjectID uint16

// Null is the reserved "no reference" identifier.
const Null ObjectID = 0xFFFF

// Max is the highest assignable identifier.
const Max ObjectID = Null - 1

var (
	// ErrInUse is returned when reserving an identifier that is already taken.
	ErrInUse = errors.New("object id already in use")
	// ErrNull is returned when the NULL identifier is used as an address.
	ErrNull = errors.New("object id 65535 is reserved as NULL")
	// ErrExhausted is returned when every identifier is taken.
	ErrExhausted = errors.New("no free object ids left")
)

// IsNull reports whether id is the NULL identifier.
func (id ObjectID) IsNull() bool {
	return id == Null
}

func (id ObjectID) String() string {
	if id == Null {
		return "NULL"
	}
	return strconv.Itoa(int(id))
}

// Parse converts a decimal string into an ObjectID. "NULL" and "65535" both yield Null.
func Parse(s string) (ObjectID, error) {
	if s == "NULL" || s == "null" {
		return Null, nil
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return Null, fmt.Errorf("invalid object id %q: %w", s, err)
	}
	return ObjectID(n), nil
}

const words = 1 << 16 / 64

// Registry tracks which identifiers are in use.
// The zero value is an empty registry. Registry is a plain value: assigning it
// copies the whole set, which the graph relies on for snapshots.
type Registry struct {
	used  [words]uint64
	count int
}

// Allocate reserves and returns the smallest unused identifier.
func (r *Registry) Allocate() (ObjectID, error) {
	for w := range r.used {
		free := ^r.used[w]
		if w == words-1 {
			// the top bit is Null
			free &^= 1 << 63
		}
		if free == 0 {
			continue
		}
		id := ObjectID(w*64 + bits.TrailingZeros64(free))
		r.set(id)
		return id, nil
	}
	return Null, ErrExhausted
}

// Reserve marks id as used.
func (r *Registry) Reserve(id ObjectID) error {
	if id == Null {
		return ErrNull
	}
	if r.IsUsed(id) {
		return fmt.Errorf("%w: %d", ErrInUse, id)
	}
	r.set(id)
	return nil
}

// Release frees id for reuse. Callers must have checked that nothing refers to it.
func (r *Registry) Release(id ObjectID) {
	if id == Null || !r.IsUsed(id) {
		return
	}
	r.used[id/64] &^= 1 << (id % 64)
	r.count--
}

// IsUsed reports whether id is currently reserved.
func (r *Registry) IsUsed(id ObjectID) bool {
	if id == Null {
		return false
	}
	return r.used[id/64]&(1<<(id%64)) != 0
}

// Len returns the number of identifiers in use.
func (r *Registry) Len() int {
	return r.count
}

func (r *Registry) set(id ObjectID) {
	r.used[id/64] |= 1 << (id % 64)
	r.count++
}
