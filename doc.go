// Package enumgo provides closed, extensible enumerations for Go: a
// registry of named, uniquely-identified singleton values sharing one
// logical type, together with a compact bit-indexed ordered set over
// those values.
//
// # Quick Start
//
// Declare a value type by embedding core.Base, then mint constants
// through a Registry:
//
//	type Weekday struct {
//		core.Base
//	}
//
//	func newWeekday(b core.Base) *Weekday { return &Weekday{Base: b} }
//
//	var (
//		reg    = enumgo.New[*Weekday]()
//		monday = reg.MustDefine("Monday", newWeekday)
//		...
//	)
//
//	wed, _ := reg.ByName("Wednesday")
//	weekend := reg.SetOf(saturday, sunday)
//	weekdays := reg.Values().Difference(weekend)
//
// Ids are minted monotonically by the registry (explicit ids are possible
// via WithID, including negative ones). Values are singletons: equality
// is "same registry instance, same id", ordering is strictly by id, and a
// persisted value restores by looking its id up through the registry.
//
// # Sets
//
// enumset.Set is immutable and bitmap-backed: membership, algebra, and
// ascending-id iteration run on word operations. Its canonical wire form
// is core.Mask; the codec package provides raw, roaring, JSON, and
// compressed encodings of it.
//
// # Names
//
// Display names resolve lazily. A value defined with an explicit name
// uses it directly; one defined without a name asks the registry, which
// populates its name table on first miss from the configured NameSource,
// typically a Declarations builder recording (name, constructor) pairs in
// declaration order.
package enumgo
