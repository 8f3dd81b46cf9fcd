// Package dsl provides a fluent builder for assembling containers in code.
package dsl

import "github.com/aretw0/datum"

// Builder accumulates fields in declaration order.
type Builder struct {
	fields []datum.Field
	opts   []datum.Option
}

// New creates an empty container builder.
func New() *Builder {
	return &Builder{}
}

// Field adds a plain field.
func (b *Builder) Field(name string, value any) *Builder {
	b.fields = append(b.fields, datum.F(name, value))
	return b
}

// Computed adds a field evaluated once at Build time.
func (b *Builder) Computed(name string, fn datum.ComputeFunc) *Builder {
	b.fields = append(b.fields, datum.F(name, datum.Computed(fn)))
	return b
}

// Lazy adds a memoized field evaluated on first read.
func (b *Builder) Lazy(name string, fn datum.ComputeFunc) *Builder {
	b.fields = append(b.fields, datum.F(name, datum.Lazy(fn)))
	return b
}

// Method adds a bound-method field.
func (b *Builder) Method(name string, fn datum.MethodFunc) *Builder {
	b.fields = append(b.fields, datum.F(name, datum.Method(fn)))
	return b
}

// AntiFreeze adds a field exempt from freezing.
func (b *Builder) AntiFreeze(name string, value any) *Builder {
	b.fields = append(b.fields, datum.F(name, datum.AntiFreeze(value)))
	return b
}

// With appends construction options.
func (b *Builder) With(opts ...datum.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build constructs the container, evaluating Computed fields in the order
// they were added.
func (b *Builder) Build() (*datum.Data, error) {
	return datum.New(b.fields, b.opts...)
}
