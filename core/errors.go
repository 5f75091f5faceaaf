package core

import (
	"errors"
	"fmt"
)

// ErrCrossRegistry indicates set algebra across values or sets belonging
// to two different registries. Mixing registries is a programming error,
// not a data condition, so the operations that detect it panic with an
// error wrapping this sentinel instead of returning it.
var ErrCrossRegistry = errors.New("cross-registry operation")

// DuplicateIDError indicates a registration with an id that is already
// taken. The registration is rejected before any registry state changes.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %d", e.ID)
}

// UnknownIDError indicates a lookup by an id no value was registered
// under.
type UnknownIDError struct {
	ID int
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("unknown id %d", e.ID)
}

// UnknownNameError indicates a name lookup that missed after the name
// table was populated.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown name %q", e.Name)
}
