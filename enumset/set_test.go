package enumset_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/enumgo"
	"github.com/hupe1980/enumgo/core"
	"github.com/hupe1980/enumgo/enumset"
)

type Flag struct {
	core.Base
}

func newFlag(b core.Base) *Flag { return &Flag{Base: b} }

func newRegistry(t *testing.T, n int) (*enumgo.Registry[*Flag], []*Flag) {
	t.Helper()

	reg := enumgo.New[*Flag]()
	vals := make([]*Flag, 0, n)
	for i := 0; i < n; i++ {
		vals = append(vals, reg.MustDefine(fmt.Sprintf("F%d", i), newFlag))
	}
	return reg, vals
}

func ptr(v int) *int { return &v }

func TestSetMembership(t *testing.T) {
	reg, vals := newRegistry(t, 4)

	s := enumset.Of(reg, vals[0], vals[2])
	assert.Equal(t, 2, s.Size())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(vals[0]))
	assert.False(t, s.Contains(vals[1]))
	assert.True(t, s.Contains(vals[2]))

	// A value from another registry is simply not a member.
	other := enumgo.New[*Flag]()
	foreign := other.MustDefine("F0", newFlag)
	assert.False(t, s.Contains(foreign))
}

func TestSetEmpty(t *testing.T) {
	reg, _ := newRegistry(t, 3)

	s := enumset.Empty(reg)
	assert.Equal(t, 0, s.Size())
	assert.True(t, s.IsEmpty())

	decoded, err := enumset.FromMask(reg, s.Mask())
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))
	assert.True(t, decoded.IsEmpty())
}

func TestSetInsertRemove(t *testing.T) {
	reg, vals := newRegistry(t, 3)

	s := enumset.Empty(reg)
	s1 := s.Insert(vals[1])
	s2 := s1.Insert(vals[1])

	// Persistent semantics: the originals are untouched.
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 1, s1.Size())
	assert.True(t, s1.Equal(s2), "insert must be idempotent")

	r1 := s2.Remove(vals[1])
	r2 := r1.Remove(vals[1])
	assert.Equal(t, 1, s2.Size())
	assert.True(t, r1.IsEmpty())
	assert.True(t, r1.Equal(r2), "remove must be idempotent")
}

func TestSetAlgebra(t *testing.T) {
	reg, vals := newRegistry(t, 5)

	a := enumset.Of(reg, vals[0], vals[1], vals[2])
	b := enumset.Of(reg, vals[2], vals[3])

	union := a.Union(b)
	assert.Equal(t, 4, union.Size())

	inter := a.Intersect(b)
	assert.Equal(t, 1, inter.Size())
	assert.True(t, inter.Contains(vals[2]))

	diff := a.Difference(b)
	assert.Equal(t, 2, diff.Size())
	assert.True(t, diff.Contains(vals[0]))
	assert.True(t, diff.Contains(vals[1]))
	assert.False(t, diff.Contains(vals[2]))

	// Operands are untouched.
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 2, b.Size())
}

func TestSetAlgebraAcrossBases(t *testing.T) {
	reg, vals := newRegistry(t, 2)

	// Snapshot taken while the minimum id is still 0.
	early := enumset.Of(reg, vals[0], vals[1])

	neg := reg.MustDefine("Neg", newFlag, enumgo.WithID(-3))
	late := reg.SetOf(neg)

	union := early.Union(late)
	assert.Equal(t, 3, union.Size())
	assert.True(t, union.Contains(neg))
	assert.True(t, union.Contains(vals[0]))

	var ids []int
	for v := range union.Iterator() {
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []int{-3, 0, 1}, ids)
}

func TestSetIterationOrder(t *testing.T) {
	reg := enumgo.New[*Flag]()
	v9 := reg.MustDefine("Nine", newFlag, enumgo.WithID(9))
	v0 := reg.MustDefine("Zero", newFlag, enumgo.WithID(0))
	v4 := reg.MustDefine("Four", newFlag, enumgo.WithID(4))

	s := enumset.Of(reg, v9, v0, v4)

	var ids []int
	for v := range s.Iterator() {
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []int{0, 4, 9}, ids)

	// Restartable: a second pass sees the same sequence.
	ids = ids[:0]
	for v := range s.Iterator() {
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []int{0, 4, 9}, ids)

	assert.Equal(t, []*Flag{v0, v4, v9}, s.Slice())
}

func TestSetRange(t *testing.T) {
	reg, vals := newRegistry(t, 6)
	s := reg.Values()

	mid := s.Range(ptr(1), ptr(4))
	assert.Equal(t, 3, mid.Size())
	assert.True(t, mid.Contains(vals[1]))
	assert.True(t, mid.Contains(vals[3]))
	assert.False(t, mid.Contains(vals[4]))

	tail := s.Range(ptr(4), nil)
	assert.Equal(t, 2, tail.Size())

	head := s.Range(nil, ptr(2))
	assert.Equal(t, 2, head.Size())

	all := s.Range(nil, nil)
	assert.True(t, all.Equal(s))
}

func TestSetMaskRoundTrip(t *testing.T) {
	reg := enumgo.New[*Flag]()
	neg := reg.MustDefine("Neg", newFlag, enumgo.WithID(-2))
	pos := reg.MustDefine("Pos", newFlag, enumgo.WithID(70))

	s := enumset.Of(reg, neg, pos)
	m := s.Mask()

	assert.Equal(t, 2, m.Count())
	assert.True(t, m.Test(0), "lowest member occupies bit 0 relative to base")

	decoded, err := enumset.FromMask(reg, m)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))

	// Decoded members are the canonical singletons.
	for v := range decoded.Iterator() {
		canonical, err := reg.ByID(v.ID())
		require.NoError(t, err)
		assert.Same(t, canonical, v)
	}
}

func TestSetFromMaskUnknownID(t *testing.T) {
	reg, _ := newRegistry(t, 2)

	m := core.Mask{Base: 0, Words: []uint64{0b101}}
	_, err := enumset.FromMask(reg, m)
	var unknown *core.UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 2, unknown.ID)
}

func TestSetByName(t *testing.T) {
	reg, vals := newRegistry(t, 4)

	subset := enumset.Of(reg, vals[1], vals[3])

	got, err := subset.ByName("F3")
	require.NoError(t, err)
	assert.Same(t, vals[3], got)

	// F0 is registered but outside this subset.
	_, err = subset.ByName("F0")
	var unknown *core.UnknownNameError
	require.ErrorAs(t, err, &unknown)
}

func TestSetEqual(t *testing.T) {
	reg, vals := newRegistry(t, 3)

	a := enumset.Of(reg, vals[0], vals[2])
	b := enumset.Empty(reg).Insert(vals[2]).Insert(vals[0])
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	c := a.Insert(vals[1])
	assert.False(t, a.Equal(c))

	other := enumgo.New[*Flag]()
	o0 := other.MustDefine("F0", newFlag)
	o2 := other.MustDefine("F2", newFlag, enumgo.WithID(2))
	assert.False(t, a.Equal(enumset.Of(other, o0, o2)))
}

func TestSetCrossRegistryPanics(t *testing.T) {
	reg, vals := newRegistry(t, 2)
	other := enumgo.New[*Flag]()
	foreign := other.MustDefine("X", newFlag)

	s := enumset.Of(reg, vals[0])

	for name, fn := range map[string]func(){
		"Insert": func() { s.Insert(foreign) },
		"Remove": func() { s.Remove(foreign) },
		"Union":  func() { s.Union(enumset.Of(other, foreign)) },
		"Of":     func() { enumset.Of(reg, foreign) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok, "expected a panic carrying an error")
				assert.True(t, errors.Is(err, core.ErrCrossRegistry))
			}()
			fn()
			t.Fatal("expected panic")
		})
	}

	assert.Equal(t, 1, s.Size(), "failed operations must not mutate the set")
}

func TestSetMap(t *testing.T) {
	reg, vals := newRegistry(t, 7)
	weekdays := reg.Values().Filter(func(v *Flag) bool { return v.ID() < 5 })
	require.Equal(t, 5, weekdays.Size())

	// Mapping within the enumeration keeps the specialized representation.
	same := weekdays.Map(func(v *Flag) *Flag { return v })
	assert.True(t, weekdays.Equal(same))

	shifted := weekdays.Map(func(v *Flag) *Flag {
		next, err := reg.ByID(v.ID() + 1)
		require.NoError(t, err)
		return next
	})
	assert.Equal(t, 5, shifted.Size())
	assert.False(t, shifted.Contains(vals[0]))
	assert.True(t, shifted.Contains(vals[5]))

	// Mapping onto a colliding target collapses members.
	collapsed := weekdays.Map(func(*Flag) *Flag { return vals[0] })
	assert.Equal(t, 1, collapsed.Size())
}

func TestSetMapCrossRegistryPanics(t *testing.T) {
	reg, vals := newRegistry(t, 2)
	other := enumgo.New[*Flag]()
	foreign := other.MustDefine("X", newFlag)

	s := enumset.Of(reg, vals[0])
	assert.Panics(t, func() {
		s.Map(func(*Flag) *Flag { return foreign })
	})
}

func TestSetFlatMap(t *testing.T) {
	reg, vals := newRegistry(t, 4)

	s := enumset.Of(reg, vals[0], vals[2])
	expanded := s.FlatMap(func(v *Flag) *enumset.Set[*Flag] {
		next, err := reg.ByID(v.ID() + 1)
		require.NoError(t, err)
		return enumset.Of(reg, v, next)
	})

	assert.Equal(t, 4, expanded.Size())
}

func TestMapTo(t *testing.T) {
	reg, _ := newRegistry(t, 3)

	names := enumset.MapTo(reg.Values(), func(v *Flag) string { return v.String() })
	assert.Equal(t, []string{"F0", "F1", "F2"}, names)

	doubled := enumset.FlatMapTo(reg.Values(), func(v *Flag) []int {
		return []int{v.ID(), v.ID()}
	})
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2}, doubled)
}
