package enumgo

import (
	"iter"
	"sync"

	"github.com/hupe1980/enumgo/core"
)

// Declarations records (name, constructor) pairs in declaration order and
// defines them against a registry in one shot. It is the explicit
// replacement for reflective name discovery: constants defined through it
// carry no name of their own and resolve lazily through the registry's
// name source, which the Declarations value itself implements.
//
//	days := enumgo.NewDeclarations[*Weekday]()
//	days.Declare("Monday", newWeekday).Declare("Tuesday", newWeekday)
//	reg := enumgo.New(enumgo.WithNameSource[*Weekday](days))
//	vals, err := days.Define(reg)
type Declarations[V core.Elem] struct {
	mu      sync.Mutex
	decls   []declaration[V]
	defined []V
}

type declaration[V core.Elem] struct {
	name      string
	construct func(core.Base) V
}

// NewDeclarations creates an empty declaration list.
func NewDeclarations[V core.Elem]() *Declarations[V] {
	return &Declarations[V]{}
}

// Declare records a named constructor. It returns the receiver for
// chaining and panics when called after Define.
func (d *Declarations[V]) Declare(name string, construct func(core.Base) V) *Declarations[V] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.defined != nil {
		panic("enumgo: Declare after Define")
	}
	d.decls = append(d.decls, declaration[V]{name: name, construct: construct})
	return d
}

// Define registers every declared constant against r in declaration
// order and returns the values in that same order. The constants are
// defined without explicit names; r finds them through DeclaredNames on
// its first name lookup. Define runs at most once; a second call panics
// rather than minting a duplicate run of ids.
func (d *Declarations[V]) Define(r *Registry[V]) ([]V, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.defined != nil {
		panic("enumgo: Define called twice")
	}

	defined := make([]V, 0, len(d.decls))
	for _, decl := range d.decls {
		v, err := r.Define("", decl.construct)
		if err != nil {
			return nil, err
		}
		defined = append(defined, v)
	}
	d.defined = defined

	out := make([]V, len(defined))
	copy(out, defined)
	return out, nil
}

// DeclaredNames implements NameSource, pairing each defined value with
// its declared name. Before Define it yields nothing.
func (d *Declarations[V]) DeclaredNames() iter.Seq2[V, string] {
	return func(yield func(V, string) bool) {
		d.mu.Lock()
		defined := d.defined
		decls := d.decls
		d.mu.Unlock()

		for i, v := range defined {
			if !yield(v, decls[i].name) {
				return
			}
		}
	}
}
