package enumset

import (
	"fmt"
	"iter"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/enumgo/core"
)

// Universe resolves ids back to the canonical singleton values of one
// enumeration. It is implemented by enumgo.Registry; a Set only ever
// calls back into it to translate a bit index into the already-registered
// value object.
type Universe[V core.Elem] interface {
	// ByID returns the canonical value registered under id.
	ByID(id int) (V, error)

	// MinID returns the running minimum id, clamped to be <= 0, so that
	// bitmap offsets are always non-negative.
	MinID() int
}

// Set is an immutable, sorted-by-id set of values from exactly one
// enumeration, backed by a bitmap at offset id-base.
//
// All operations that produce a set return a new Set and leave the
// receiver untouched. Operations combining two sets require both to
// belong to the same registry instance; mixing registries is a contract
// violation and panics with an error wrapping core.ErrCrossRegistry.
type Set[V core.Elem] struct {
	u    Universe[V]
	base int
	bits *bitset.BitSet

	nameOnce sync.Once
	names    map[string]V
}

// Empty returns the empty set over u.
func Empty[V core.Elem](u Universe[V]) *Set[V] {
	return &Set[V]{u: u, base: u.MinID(), bits: bitset.New(0)}
}

// Of returns the set holding exactly vals. Duplicates collapse.
func Of[V core.Elem](u Universe[V], vals ...V) *Set[V] {
	s := Empty(u)
	for _, v := range vals {
		s.mustOwn(v)
		s.bits.Set(uint(v.ID() - s.base))
	}
	return s
}

// FromMask rebuilds a set from its canonical bitmask export. Every set
// bit is resolved through u so the result holds the registry's singleton
// instances; a bit with no registered value fails with UnknownIDError
// rather than fabricating a value.
func FromMask[V core.Elem](u Universe[V], m core.Mask) (*Set[V], error) {
	for k := range m.Bits() {
		if _, err := u.ByID(m.Base + k); err != nil {
			return nil, fmt.Errorf("decode mask: %w", err)
		}
	}
	words := make([]uint64, len(m.Words))
	copy(words, m.Words)
	return &Set[V]{u: u, base: m.Base, bits: bitset.From(words)}, nil
}

// Universe returns the universe this set is scoped to.
func (s *Set[V]) Universe() Universe[V] { return s.u }

// Base returns the id represented by bit 0 of the bitmap.
func (s *Set[V]) Base() int { return s.base }

// Size returns the number of members.
func (s *Set[V]) Size() int { return int(s.bits.Count()) }

// IsEmpty reports whether the set has no members.
func (s *Set[V]) IsEmpty() bool { return s.bits.None() }

// Contains reports whether v is a member. A value belonging to a
// different registry is simply not a member; membership stays a total
// predicate.
func (s *Set[V]) Contains(v V) bool {
	if !s.owns(v) {
		return false
	}
	k := v.ID() - s.base
	return k >= 0 && s.bits.Test(uint(k))
}

// Insert returns a new set with v added.
func (s *Set[V]) Insert(v V) *Set[V] {
	s.mustOwn(v)
	ns := s.rebase(min(s.base, v.ID()))
	ns.bits.Set(uint(v.ID() - ns.base))
	return ns
}

// Remove returns a new set with v absent.
func (s *Set[V]) Remove(v V) *Set[V] {
	s.mustOwn(v)
	ns := s.rebase(s.base)
	if k := v.ID() - ns.base; k >= 0 {
		ns.bits.Clear(uint(k))
	}
	return ns
}

// Union returns the set of members present in either s or other.
func (s *Set[V]) Union(other *Set[V]) *Set[V] {
	a, b := s.align(other)
	a.bits.InPlaceUnion(b.bits)
	return a
}

// Intersect returns the set of members present in both s and other.
func (s *Set[V]) Intersect(other *Set[V]) *Set[V] {
	a, b := s.align(other)
	a.bits.InPlaceIntersection(b.bits)
	return a
}

// Difference returns the set of members of s that are not in other.
func (s *Set[V]) Difference(other *Set[V]) *Set[V] {
	a, b := s.align(other)
	a.bits.InPlaceDifference(b.bits)
	return a
}

// Equal reports membership equality. Sets over different registries are
// never equal.
func (s *Set[V]) Equal(other *Set[V]) bool {
	if any(s.u) != any(other.u) {
		return false
	}
	if s.Size() != other.Size() {
		return false
	}
	for v := range s.Iterator() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Iterator walks the members in ascending id order. The sequence is
// finite and restartable; concurrent iterations over the same set are
// independent.
func (s *Set[V]) Iterator() iter.Seq[V] {
	return func(yield func(V) bool) {
		for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
			v, err := s.u.ByID(s.base + int(k))
			if err != nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns the members as a slice in ascending id order.
func (s *Set[V]) Slice() []V {
	out := make([]V, 0, s.Size())
	for v := range s.Iterator() {
		out = append(out, v)
	}
	return out
}

// Range returns the subset whose ids fall in [fromInclusive,
// untilExclusive). A nil bound is open-ended.
func (s *Set[V]) Range(fromInclusive, untilExclusive *int) *Set[V] {
	ns := &Set[V]{u: s.u, base: s.base, bits: bitset.New(0)}
	for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
		id := s.base + int(k)
		if fromInclusive != nil && id < *fromInclusive {
			continue
		}
		if untilExclusive != nil && id >= *untilExclusive {
			break
		}
		ns.bits.Set(k)
	}
	return ns
}

// Mask returns the canonical bitmask export: bit k represents id Base()+k,
// trimmed to the minimum word count.
func (s *Set[V]) Mask() core.Mask {
	raw := s.bits.Bytes()
	words := make([]uint64, len(raw))
	copy(words, raw)
	return core.Mask{Base: s.base, Words: words}.Normalize()
}

// ByName resolves a member of this subset by display name. The name index
// is built once per Set instance on first use, independent of the
// registry's global name cache.
func (s *Set[V]) ByName(name string) (V, error) {
	s.nameOnce.Do(func() {
		idx := make(map[string]V, s.Size())
		for v := range s.Iterator() {
			if n, ok := core.BaseOf(v).Name(); ok {
				idx[n] = v
			}
		}
		s.names = idx
	})
	v, ok := s.names[name]
	if !ok {
		var zero V
		return zero, &core.UnknownNameError{Name: name}
	}
	return v, nil
}

func (s *Set[V]) String() string {
	return fmt.Sprintf("enumset(size=%d, base=%d)", s.Size(), s.base)
}

func (s *Set[V]) owns(v V) bool {
	return any(core.BaseOf(v).Origin()) == any(s.u)
}

func (s *Set[V]) mustOwn(v V) {
	if !s.owns(v) {
		panic(fmt.Errorf("%w: value %v belongs to another enumeration", core.ErrCrossRegistry, v))
	}
}

// rebase returns a mutable copy of s with bit 0 representing newBase.
// newBase must not exceed s.base; bases only move down as registries grow
// toward negative ids.
func (s *Set[V]) rebase(newBase int) *Set[V] {
	if newBase == s.base {
		return &Set[V]{u: s.u, base: s.base, bits: s.bits.Clone()}
	}
	delta := uint(s.base - newBase)
	bits := bitset.New(s.bits.Len() + delta)
	for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
		bits.Set(k + delta)
	}
	return &Set[V]{u: s.u, base: newBase, bits: bits}
}

// align clones both operands onto a common base, panicking when they
// belong to different registries.
func (s *Set[V]) align(other *Set[V]) (*Set[V], *Set[V]) {
	if any(s.u) != any(other.u) {
		panic(fmt.Errorf("%w: sets belong to different enumerations", core.ErrCrossRegistry))
	}
	base := min(s.base, other.base)
	return s.rebase(base), other.rebase(base)
}
