package core

import (
	"cmp"
	"fmt"
)

// Origin identifies the registry a value belongs to and resolves display
// names on demand. It is implemented by enumgo.Registry.
type Origin interface {
	// NameOf returns the display name for the given id, if one is known.
	// Implementations may populate lazy state on the way; they must not fail.
	NameOf(id int) (string, bool)
}

// Elem is the capability set required of enumeration values: a unique
// integer identifier and an identity anchored to the owning registry.
//
// Elem is sealed. It is satisfied by embedding Base, which only a
// registry mints during Define. Pointer types embedding Base implement it:
//
//	type Weekday struct {
//		core.Base
//	}
//
//	var _ core.Elem = (*Weekday)(nil)
type Elem interface {
	// ID returns the identifier assigned at registration.
	ID() int

	base() *Base
}

// Base carries the registry-assigned identity of a value. It is immutable
// after construction and provides identity, ordering, and display for the
// embedding type.
type Base struct {
	id     int
	name   string
	named  bool
	origin Origin
}

var _ Elem = (*Base)(nil)

// NewBase binds an identity to its origin. Registries call it during
// Define; a Base constructed any other way belongs to no registry and
// will not resolve.
func NewBase(origin Origin, id int, name string, named bool) Base {
	return Base{id: id, name: name, named: named, origin: origin}
}

// ID returns the identifier assigned at registration.
func (b *Base) ID() int { return b.id }

func (b *Base) base() *Base { return b }

// Origin returns the owning registry.
func (b *Base) Origin() Origin { return b.origin }

// DeclaredName returns the explicit name given at registration, without
// consulting the origin. Registries use it while populating their name
// tables, where going through Name would re-enter the population.
func (b *Base) DeclaredName() (string, bool) {
	return b.name, b.named
}

// Name returns the display name: the explicit name given at registration,
// or the one declared through the registry's name source. The second
// return is false when neither exists.
func (b *Base) Name() (string, bool) {
	if b.named {
		return b.name, true
	}
	if b.origin == nil {
		return "", false
	}
	return b.origin.NameOf(b.id)
}

// Equal reports whether other is the same value: same owning registry
// instance and same id. Values from different registries are never equal,
// even when their ids collide.
func (b *Base) Equal(other Elem) bool {
	if other == nil {
		return false
	}
	ob := other.base()
	return b.origin == ob.origin && b.id == ob.id
}

// Compare orders values strictly by id. Ids are unique within a registry,
// so the order is total there with no ties.
func (b *Base) Compare(other Elem) int {
	return cmp.Compare(b.id, other.base().id)
}

// String returns the display name, falling back to a diagnostic form
// embedding the id. Printing a value never fails, so iteration and
// logging paths stay safe even when no name was ever declared.
func (b *Base) String() string {
	if name, ok := b.Name(); ok {
		return name
	}
	return fmt.Sprintf("enum(#%d)", b.id)
}

// BaseOf returns the identity of e. Packages outside core use it to reach
// the Base, since the sealing method is unexported.
func BaseOf(e Elem) *Base { return e.base() }

// SameOrigin reports whether a and b belong to the same registry instance.
func SameOrigin(a, b Elem) bool {
	return a.base().origin == b.base().origin
}
