// Package enumset provides an immutable, sorted-by-id set container
// specialized to the values of a single enumeration.
//
// Membership is a compact bitmap keyed by id minus the enumeration's
// minimum id, so containment, algebra, and ascending-id iteration run on
// word operations. Every mutating operation returns a new Set; a Set is
// freely shareable once constructed.
package enumset
