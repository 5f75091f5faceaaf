package enumgo

import "github.com/hupe1980/enumgo/core"

type options[V core.Elem] struct {
	startID int
	source  NameSource[V]
	logger  *Logger
}

// Option configures Registry construction.
type Option[V core.Elem] func(*options[V])

// WithStartID sets the first id handed out by sequential assignment
// (default 0). The registry clamps its minimum id to 0 or below even when
// the start is positive, so bitmap offsets stay non-negative.
func WithStartID[V core.Elem](id int) Option[V] {
	return func(o *options[V]) {
		o.startID = id
	}
}

// WithNameSource configures the capability that supplies declared names
// for values defined without one. Without it, unnamed values display the
// diagnostic fallback form.
func WithNameSource[V core.Elem](source NameSource[V]) Option[V] {
	return func(o *options[V]) {
		o.source = source
	}
}

// WithLogger configures the registry's logger. If nil is passed, logging
// is disabled.
func WithLogger[V core.Elem](logger *Logger) Option[V] {
	return func(o *options[V]) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// DefineOption configures one registration.
type DefineOption func(*defineConfig)

type defineConfig struct {
	id    int
	hasID bool
}

// WithID assigns an explicit id instead of the next sequential one.
// Negative ids are allowed. A taken id makes Define fail with
// DuplicateIDError.
func WithID(id int) DefineOption {
	return func(c *defineConfig) {
		c.id = id
		c.hasID = true
	}
}
