// Package core holds the shared bottom types of enumgo: the value
// identity (Elem, Base), the registry back-reference (Origin), the
// canonical bitmask wire form (Mask), and the error kinds every layer
// reports.
//
// It exists so the enumgo, enumset, and codec packages can share these
// types without import cycles. Applications normally import the root
// enumgo package instead.
package core
