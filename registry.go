package enumgo

import (
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/enumgo/core"
	"github.com/hupe1980/enumgo/enumset"
)

// NameSource supplies declared names for values that were defined without
// one. The declaration layer implements it, typically by recording
// (name, constructor) pairs in declaration order; see Declarations.
type NameSource[V core.Elem] interface {
	// DeclaredNames enumerates each value together with its declared name.
	// Entries whose value belongs to another registry are ignored during
	// population.
	DeclaredNames() iter.Seq2[V, string]
}

// NameSourceFunc adapts a function to the NameSource interface.
type NameSourceFunc[V core.Elem] func() iter.Seq2[V, string]

// DeclaredNames implements NameSource.
func (f NameSourceFunc[V]) DeclaredNames() iter.Seq2[V, string] { return f() }

// Registry owns the universe of values for one enumeration definition: it
// mints unique, monotonically increasing ids, resolves values by id and
// by name, and exposes the full collection as a bit-indexed set.
//
// Registration is serialized; lookups and the lazily cached name table
// and values snapshot are safe for concurrent use.
type Registry[V core.Elem] struct {
	mu     sync.RWMutex
	byID   map[int]V
	nextID int
	minID  int
	maxID  int
	gen    uint64

	names  atomic.Pointer[nameTable[V]]
	values atomic.Pointer[enumset.Set[V]]
	flight singleflight.Group

	source NameSource[V]
	logger *Logger
}

type nameTable[V core.Elem] struct {
	byName map[string]V
	byID   map[int]string
}

// New creates a registry for one enumeration definition.
func New[V core.Elem](opts ...Option[V]) *Registry[V] {
	o := options[V]{
		logger: NoopLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}

	return &Registry[V]{
		byID:   make(map[int]V),
		nextID: o.startID,
		minID:  min(0, o.startID),
		maxID:  o.startID,
		source: o.source,
		logger: o.logger,
	}
}

// Define mints an id, constructs the value around the resulting identity,
// and registers it. This is the only way ids come into existence.
//
// An empty name marks the value for lazy resolution through the
// registry's name source. A duplicate id fails with DuplicateIDError
// before any registry state changes. construct must only wrap the given
// Base into the value type; it runs with the registration lock held.
func (r *Registry[V]) Define(name string, construct func(core.Base) V, opts ...DefineOption) (V, error) {
	var cfg defineConfig
	for _, fn := range opts {
		fn(&cfg)
	}

	r.mu.Lock()
	id := r.nextID
	if cfg.hasID {
		id = cfg.id
	}
	if _, taken := r.byID[id]; taken {
		r.mu.Unlock()
		var zero V
		return zero, &core.DuplicateIDError{ID: id}
	}

	v := construct(core.NewBase(r, id, name, name != ""))
	r.byID[id] = v
	if id >= r.nextID {
		r.nextID = id + 1
	}
	if id >= r.maxID {
		r.maxID = id + 1
	}
	if id < r.minID {
		r.minID = id
	}
	// Invalidate under the lock so a rebuild racing this registration
	// cannot publish its now-stale cache over the invalidation.
	r.gen++
	r.values.Store(nil)
	r.names.Store(nil)
	r.mu.Unlock()

	r.logger.LogDefine(id, name)

	return v, nil
}

// MustDefine is Define panicking on error, for declaration-time use.
func (r *Registry[V]) MustDefine(name string, construct func(core.Base) V, opts ...DefineOption) V {
	v, err := r.Define(name, construct, opts...)
	if err != nil {
		panic(fmt.Errorf("enumgo: define %q: %w", name, err))
	}
	return v
}

// ByID returns the canonical value registered under id.
func (r *Registry[V]) ByID(id int) (V, error) {
	r.mu.RLock()
	v, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		var zero V
		return zero, &core.UnknownIDError{ID: id}
	}
	return v, nil
}

// ByName resolves a value by display name. The first miss after a
// registration populates the name table from explicit names and the
// configured name source; a miss against a populated table is a hard
// UnknownNameError.
func (r *Registry[V]) ByName(name string) (V, error) {
	t := r.nameTable()
	v, ok := t.byName[name]
	if !ok {
		var zero V
		return zero, &core.UnknownNameError{Name: name}
	}
	return v, nil
}

// Values returns the set of all registered values. The snapshot is cached
// until the next registration invalidates it; a snapshot raced by an
// in-flight registration is a strict subset of the true set, never wrong.
func (r *Registry[V]) Values() *enumset.Set[V] {
	if s := r.values.Load(); s != nil {
		return s
	}

	got, _, _ := r.flight.Do("values", func() (any, error) {
		if s := r.values.Load(); s != nil {
			return s, nil
		}
		vals, gen := r.snapshot()
		s := enumset.Of(r, vals...)
		r.publish(gen, func() { r.values.Store(s) })
		r.logger.LogSnapshot(s.Size())
		return s, nil
	})
	return got.(*enumset.Set[V])
}

// SetOf returns the set holding exactly vals.
func (r *Registry[V]) SetOf(vals ...V) *enumset.Set[V] {
	return enumset.Of(r, vals...)
}

// Bound returns the id one past the highest ever assigned: the smallest
// id not yet taken under sequential allocation, and therefore the total
// value count when only default ids were used.
func (r *Registry[V]) Bound() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxID
}

// MinID returns the running minimum id, clamped to be <= 0 so that
// bitmap offsets are always non-negative.
func (r *Registry[V]) MinID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.minID
}

// Len returns the number of registered values.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// NameOf implements core.Origin: it resolves the display name for id,
// populating the name table if needed. It never fails; display paths fall
// back to the diagnostic form instead.
func (r *Registry[V]) NameOf(id int) (string, bool) {
	r.mu.RLock()
	v, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		if name, named := core.BaseOf(v).DeclaredName(); named {
			return name, true
		}
	}

	name, ok := r.nameTable().byID[id]
	return name, ok
}

// snapshot returns the registered values together with the generation
// they were read at. The generation gates cache publication: a rebuild
// may only be stored while no registration has happened since.
func (r *Registry[V]) snapshot() ([]V, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vals := make([]V, 0, len(r.byID))
	for _, v := range r.byID {
		vals = append(vals, v)
	}
	return vals, r.gen
}

// publish runs store only when gen is still current. Holding the read
// lock across the check and the store excludes the invalidation done
// under the write lock in Define, so a stale rebuild can never overwrite
// it; the stale result is still handed to the callers that raced the
// registration.
func (r *Registry[V]) publish(gen uint64, store func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if gen == r.gen {
		store()
	}
}

// nameTable returns the current table, rebuilding it at most once per
// invalidation under contention. The pointer publish makes a half-built
// table unobservable.
func (r *Registry[V]) nameTable() *nameTable[V] {
	if t := r.names.Load(); t != nil {
		return t
	}

	got, _, _ := r.flight.Do("names", func() (any, error) {
		if t := r.names.Load(); t != nil {
			return t, nil
		}
		t, gen := r.populateNames()
		r.publish(gen, func() { r.names.Store(t) })
		r.logger.LogNamePopulation(len(t.byID))
		return t, nil
	})
	return got.(*nameTable[V])
}

// populateNames folds explicit names and the name source into a fresh
// table. Source entries owned by a different registry are dropped; a
// source must not be able to contaminate an unrelated enumeration.
func (r *Registry[V]) populateNames() (*nameTable[V], uint64) {
	vals, gen := r.snapshot()

	t := &nameTable[V]{
		byName: make(map[string]V, len(vals)),
		byID:   make(map[int]string, len(vals)),
	}
	for _, v := range vals {
		if name, named := core.BaseOf(v).DeclaredName(); named {
			t.byID[v.ID()] = name
			t.byName[name] = v
		}
	}

	if r.source == nil {
		return t, gen
	}
	var self core.Origin = r
	for v, name := range r.source.DeclaredNames() {
		if core.BaseOf(v).Origin() != self {
			continue
		}
		canonical, err := r.ByID(v.ID())
		if err != nil {
			continue
		}
		if _, exists := t.byID[v.ID()]; exists {
			continue
		}
		t.byID[v.ID()] = name
		t.byName[name] = canonical
	}
	return t, gen
}

// Combine returns the set holding exactly a and b, one element when they
// are equal. Both values must belong to the same registry.
func Combine[V core.Elem](a, b V) *enumset.Set[V] {
	if !core.SameOrigin(a, b) {
		panic(fmt.Errorf("%w: values belong to different enumerations", core.ErrCrossRegistry))
	}
	u, ok := core.BaseOf(a).Origin().(enumset.Universe[V])
	if !ok {
		panic(fmt.Errorf("%w: origin is not a value universe", core.ErrCrossRegistry))
	}
	return enumset.Of(u, a, b)
}
