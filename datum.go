package datum

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aretw0/datum/internal/logging"
)

type fieldKind uint8

const (
	kindPlain fieldKind = iota
	kindLazy
	kindMethod
)

// fieldEntry is the per-field capability record consulted on every access.
// Exactly one interpretation applies: plain value, lazy, or method.
type fieldEntry struct {
	kind    fieldKind
	value   any         // plain value; placeholder for lazy/method fields
	compute ComputeFunc // lazy only
	method  MethodFunc  // method only
	cached  any         // lazy only
	valid   bool        // lazy only: cached holds a live result
}

// Data is the reactive container. The zero value is not usable; construct
// instances with New or Empty.
//
// Internal bookkeeping (frozen flag, watcher list, exemption set, transaction
// stack, cached hash) is kept strictly apart from the user field namespace.
type Data struct {
	fields map[string]*fieldEntry
	order  []string // field names in insertion order

	frozen     bool
	freezing   bool // guards recursive freeze over cyclic graphs
	antiFreeze map[string]struct{}
	watchers   []WatchFunc
	tx         []*txSnapshot
	hashCache  *uint64

	logger *slog.Logger
	hooks  Hooks
}

// WatchFunc observes a mutation: the field name, the previously stored value
// (nil if the field was absent), and the new value.
type WatchFunc func(field string, old, new any)

// Option configures a container at construction time.
type Option func(*Data)

// WithLogger sets the diagnostic sink for swallowed failures (watcher
// panics, unserializable reprs). Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Data) {
		d.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(d *Data) {
		d.hooks = hooks
	}
}

// Empty creates a container with no fields.
func Empty(opts ...Option) *Data {
	d := &Data{
		fields:     make(map[string]*fieldEntry),
		antiFreeze: make(map[string]struct{}),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// New constructs a container from an initial field set. Names must be valid
// identifiers. Computed markers are evaluated immediately, in declaration
// order, against the partially constructed container: plain fields are all
// visible, but later-declared Computed fields still hold their marker value.
// Lazy and Method markers are registered and left unevaluated.
func New(fields []Field, opts ...Option) (*Data, error) {
	d := Empty(opts...)

	for _, f := range fields {
		if !validIdent(f.Name) {
			return nil, &InvalidNameError{Name: f.Name}
		}
		value := f.Value
		if af, ok := value.(antiFreezeMarker); ok {
			d.antiFreeze[f.Name] = struct{}{}
			value = af.value
		}
		d.insert(f.Name, &fieldEntry{kind: kindPlain, value: value})
	}

	// Second pass: resolve markers in insertion order.
	for _, name := range d.order {
		entry := d.fields[name]
		switch m := entry.value.(type) {
		case computedMarker:
			value, err := d.invoke(name, m.fn)
			if err != nil {
				return nil, err
			}
			// A Computed may itself yield an anti-freeze value.
			if af, ok := value.(antiFreezeMarker); ok {
				d.antiFreeze[name] = struct{}{}
				value = af.value
			}
			entry.value = value
		case lazyMarker:
			entry.kind = kindLazy
			entry.compute = m.fn
			entry.value = nil
		case methodMarker:
			entry.kind = kindMethod
			entry.method = m.fn
			entry.value = nil
		}
	}

	return d, nil
}

func (d *Data) insert(name string, entry *fieldEntry) {
	if _, exists := d.fields[name]; !exists {
		d.order = append(d.order, name)
	}
	d.fields[name] = entry
}

// Get resolves a field. Method fields yield a BoundMethod; lazy fields are
// evaluated on first read after construction or the most recent mutation;
// everything else returns the stored value.
func (d *Data) Get(name string) (any, error) {
	entry, ok := d.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Field: name}
	}

	switch entry.kind {
	case kindMethod:
		fn := entry.method
		return BoundMethod(func(args ...any) (any, error) {
			return d.invokeMethod(name, fn, args...)
		}), nil
	case kindLazy:
		if !entry.valid {
			value, err := d.invoke(name, entry.compute)
			if err != nil {
				return nil, err
			}
			entry.cached = value
			entry.valid = true
			if d.hooks.OnLazyEval != nil {
				d.hooks.OnLazyEval(name)
			}
		}
		return entry.cached, nil
	default:
		return entry.value, nil
	}
}

// GetOr resolves a field, returning def if the field is absent or its
// resolution fails.
func (d *Data) GetOr(name string, def any) any {
	value, err := d.Get(name)
	if err != nil {
		return def
	}
	return value
}

// Call invokes a method field with the given arguments.
func (d *Data) Call(name string, args ...any) (any, error) {
	value, err := d.Get(name)
	if err != nil {
		return nil, err
	}
	bound, ok := value.(BoundMethod)
	if !ok {
		return nil, &ComputationError{
			Field: name,
			Err:   fmt.Errorf("field is not a method (got %T)", value),
		}
	}
	return bound(args...)
}

// Set assigns a field through the mutation pipeline: it enforces the frozen
// invariant and name validity, stores the value, invalidates every lazy
// cache on this container, and notifies watchers in registration order.
// A watcher panic is logged and does not abort the mutation.
func (d *Data) Set(name string, value any) error {
	if d.frozen {
		if _, exempt := d.antiFreeze[name]; !exempt {
			return &FrozenFieldError{Field: name}
		}
	}
	if !validIdent(name) {
		return &InvalidNameError{Name: name}
	}

	if af, ok := value.(antiFreezeMarker); ok {
		d.antiFreeze[name] = struct{}{}
		value = af.value
	}

	var old any
	if entry, exists := d.fields[name]; exists {
		old = entry.value
		entry.value = value
	} else {
		d.insert(name, &fieldEntry{kind: kindPlain, value: value})
	}

	// A successful mutation invalidates the cached hash; it is recomputed
	// on the next hash request after freezing.
	if !d.frozen {
		d.hashCache = nil
	}

	d.invalidateLazy()
	d.notify(name, old, value)

	if d.hooks.OnMutation != nil {
		d.hooks.OnMutation(name, old, value)
	}
	return nil
}

// invalidateLazy drops every lazy cache entry on this container. There is no
// per-field dependency tracking: one mutation invalidates all lazy fields.
func (d *Data) invalidateLazy() {
	for _, entry := range d.fields {
		if entry.kind == kindLazy {
			entry.cached = nil
			entry.valid = false
		}
	}
}

// Watch registers a mutation observer. Watchers run in registration order;
// there is no unregister operation.
func (d *Data) Watch(fn WatchFunc) {
	d.watchers = append(d.watchers, fn)
}

func (d *Data) notify(name string, old, new any) {
	for _, w := range d.watchers {
		d.safeNotify(w, name, old, new)
	}
}

// safeNotify isolates watcher failures: a panicking watcher is reported to
// the diagnostic sink and must never prevent the mutation from completing.
func (d *Data) safeNotify(w WatchFunc, name string, old, new any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("watcher panicked", "field", name, "panic", r)
		}
	}()
	w(name, old, new)
}

// invoke runs a user-supplied compute function, converting errors and panics
// into *ComputationError with the field name and a captured stack.
func (d *Data) invoke(name string, fn ComputeFunc) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ComputationError{
				Field: name,
				Err:   fmt.Errorf("panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	value, ferr := fn(d)
	if ferr != nil {
		return nil, wrapComputation(name, ferr)
	}
	return value, nil
}

func (d *Data) invokeMethod(name string, fn MethodFunc, args ...any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ComputationError{
				Field: name,
				Err:   fmt.Errorf("panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	value, ferr := fn(d, args...)
	if ferr != nil {
		return nil, wrapComputation(name, ferr)
	}
	return value, nil
}

// wrapComputation wraps err as a *ComputationError unless it already is one
// (bubbled up from a nested container, for example).
func wrapComputation(name string, err error) error {
	var ce *ComputationError
	if errors.As(err, &ce) {
		return err
	}
	return &ComputationError{Field: name, Err: err, Stack: debug.Stack()}
}

// Has reports whether a field exists, without resolving it.
func (d *Data) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// Keys returns the field names in insertion order.
func (d *Data) Keys() []string {
	keys := make([]string, len(d.order))
	copy(keys, d.order)
	return keys
}

// Len returns the number of fields.
func (d *Data) Len() int {
	return len(d.fields)
}

// Frozen reports whether the container has been frozen.
func (d *Data) Frozen() bool {
	return d.frozen
}

// Exempt reports whether a field is anti-freeze exempt.
func (d *Data) Exempt(name string) bool {
	_, ok := d.antiFreeze[name]
	return ok
}
