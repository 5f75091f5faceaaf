package enumgo

import "github.com/hupe1980/enumgo/core"

// The error kinds live in core so every layer can report them without
// import cycles; the root package aliases them for callers.
type (
	// DuplicateIDError is returned by Define when the requested id is
	// already taken. The failed registration leaves the registry unchanged.
	DuplicateIDError = core.DuplicateIDError

	// UnknownIDError is returned by ByID for ids no value was registered
	// under.
	UnknownIDError = core.UnknownIDError

	// UnknownNameError is returned by ByName when the name matches nothing
	// after the name table has been populated.
	UnknownNameError = core.UnknownNameError
)

// ErrCrossRegistry is the sentinel carried by the panics raised when set
// algebra mixes values or sets of two different registries.
var ErrCrossRegistry = core.ErrCrossRegistry
