package enumset

import "github.com/hupe1980/enumgo/core"

// Map applies f to every member and rebuilds the results into a set of
// the same enumeration. The func(V) V signature keeps the codomain inside
// the enumeration's value type at compile time, so the specialized bitmap
// representation is always valid for the result; f returning a value from
// a different registry instance panics with core.ErrCrossRegistry.
//
// For codomains outside the enumeration use MapTo, which degrades to a
// plain ordered slice instead of forcing the bitmap structure.
func (s *Set[V]) Map(f func(V) V) *Set[V] {
	ns := Empty(s.u)
	for v := range s.Iterator() {
		w := f(v)
		ns.mustOwn(w)
		nb := ns.rebase(min(ns.base, w.ID()))
		nb.bits.Set(uint(w.ID() - nb.base))
		ns = nb
	}
	return ns
}

// FlatMap applies f to every member and unions the resulting sets.
func (s *Set[V]) FlatMap(f func(V) *Set[V]) *Set[V] {
	acc := Empty(s.u)
	for v := range s.Iterator() {
		acc = acc.Union(f(v))
	}
	return acc
}

// Filter returns the subset of members for which keep returns true. The
// result keeps the specialized bitmap representation.
func (s *Set[V]) Filter(keep func(V) bool) *Set[V] {
	ns := &Set[V]{u: s.u, base: s.base, bits: s.bits.Clone()}
	for k, ok := s.bits.NextSet(0); ok; k, ok = s.bits.NextSet(k + 1) {
		v, err := s.u.ByID(s.base + int(k))
		if err != nil || !keep(v) {
			ns.bits.Clear(k)
		}
	}
	return ns
}

// MapTo applies f to every member in ascending id order and collects the
// results into a slice. This is the degraded form for codomains that are
// not the enumeration's own value type.
func MapTo[V core.Elem, T any](s *Set[V], f func(V) T) []T {
	out := make([]T, 0, s.Size())
	for v := range s.Iterator() {
		out = append(out, f(v))
	}
	return out
}

// FlatMapTo applies f to every member in ascending id order and
// concatenates the resulting slices.
func FlatMapTo[V core.Elem, T any](s *Set[V], f func(V) []T) []T {
	var out []T
	for v := range s.Iterator() {
		out = append(out, f(v)...)
	}
	return out
}
