package datum

import "unicode"

// ComputeFunc produces a value from the owning container.
type ComputeFunc func(d *Data) (any, error)

// MethodFunc is invoked with the owning container as receiver plus the call
// arguments.
type MethodFunc func(d *Data, args ...any) (any, error)

// BoundMethod is a MethodFunc bound to its owning container. Reading a
// method field yields one.
type BoundMethod func(args ...any) (any, error)

// Marker tags a construction value with special field behavior.
// The set of markers is closed: Computed, Lazy, Method, AntiFreeze.
type Marker interface {
	isMarker()
}

type computedMarker struct {
	fn ComputeFunc
}

type lazyMarker struct {
	fn ComputeFunc
}

type methodMarker struct {
	fn MethodFunc
}

type antiFreezeMarker struct {
	value any
}

func (computedMarker) isMarker()   {}
func (lazyMarker) isMarker()       {}
func (methodMarker) isMarker()     {}
func (antiFreezeMarker) isMarker() {}

// Computed declares a field evaluated exactly once, at construction time.
// The result is stored as a plain value and never re-evaluated, even after
// later mutations.
func Computed(fn ComputeFunc) Marker {
	return computedMarker{fn: fn}
}

// Lazy declares a field evaluated on first read and cached. The cache lives
// inside the owning container, so the same Lazy marker may be shared across
// containers; any mutation on a container invalidates all of its lazy
// caches.
func Lazy(fn ComputeFunc) Marker {
	return lazyMarker{fn: fn}
}

// Method declares a field that reads as a BoundMethod. Invoking it runs fn
// with the owning container as first argument. Results are never cached.
func Method(fn MethodFunc) Marker {
	return methodMarker{fn: fn}
}

// AntiFreeze marks a value as exempt from the freeze transform and from the
// frozen-write guard. The wrapper is unwrapped at assignment time and never
// stored.
func AntiFreeze(value any) Marker {
	return antiFreezeMarker{value: value}
}

// Field is a named initial value for construction. Declaration order is the
// order Computed fields are evaluated in.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for building a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// validIdent reports whether name is an identifier-shaped string: a letter
// or underscore followed by letters, digits, or underscores.
func validIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
