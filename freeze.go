package datum

import (
	"fmt"
	"sort"
)

// Freeze makes the container immutable. It is idempotent. For every field
// outside the anti-freeze set, the stored value is recursively transformed:
// nested containers are frozen in place, mappings become *FrozenMap, slices
// become *FrozenList, sets become *FrozenSet, everything else passes through
// unchanged. A failure on one field aborts the call with a *FreezeError;
// fields transformed before the failure stay transformed.
func (d *Data) Freeze() error {
	if d.frozen || d.freezing {
		return nil
	}
	d.freezing = true
	defer func() { d.freezing = false }()

	for _, name := range d.order {
		if _, exempt := d.antiFreeze[name]; exempt {
			continue
		}
		entry := d.fields[name]
		value, err := freezeValue(entry.value)
		if err != nil {
			return &FreezeError{Field: name, Err: err}
		}
		entry.value = value
	}

	d.hashCache = nil
	d.frozen = true
	if d.hooks.OnFreeze != nil {
		d.hooks.OnFreeze()
	}
	return nil
}

func freezeValue(v any) (any, error) {
	switch x := v.(type) {
	case *Data:
		if err := x.Freeze(); err != nil {
			return nil, err
		}
		return x, nil
	case map[string]any:
		items := make(map[string]any, len(x))
		for key, item := range x {
			frozen, err := freezeValue(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			items[key] = frozen
		}
		return &FrozenMap{items: items}, nil
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			frozen, err := freezeValue(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = frozen
		}
		return &FrozenList{items: items}, nil
	case Set:
		items := make(map[any]struct{}, len(x))
		for item := range x {
			frozen, err := freezeValue(item)
			if err != nil {
				return nil, err
			}
			items[frozen] = struct{}{}
		}
		return &FrozenSet{items: items}, nil
	default:
		return v, nil
	}
}

// Set is a mutable unordered collection. Elements must be comparable.
type Set map[any]struct{}

// NewSet builds a Set from values.
func NewSet(values ...any) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value.
func (s Set) Add(v any) { s[v] = struct{}{} }

// Has reports membership.
func (s Set) Has(v any) bool {
	_, ok := s[v]
	return ok
}

// Len returns the element count.
func (s Set) Len() int { return len(s) }

// FrozenMap is an immutable string-keyed mapping. Immutability is enforced
// by the type surface: there are no mutating methods.
type FrozenMap struct {
	items map[string]any
}

// Get returns the value stored under key.
func (m *FrozenMap) Get(key string) (any, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Len returns the entry count.
func (m *FrozenMap) Len() int { return len(m.items) }

// Keys returns the keys in sorted order.
func (m *FrozenMap) Keys() []string {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for each entry in sorted key order until fn returns false.
func (m *FrozenMap) Range(fn func(key string, value any) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.items[k]) {
			return
		}
	}
}

// FrozenList is an immutable fixed-length sequence.
type FrozenList struct {
	items []any
}

// At returns the element at index i.
func (l *FrozenList) At(i int) any { return l.items[i] }

// Len returns the element count.
func (l *FrozenList) Len() int { return len(l.items) }

// Values returns a copy of the elements.
func (l *FrozenList) Values() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// FrozenSet is an immutable unordered collection.
type FrozenSet struct {
	items map[any]struct{}
}

// Has reports membership.
func (s *FrozenSet) Has(v any) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the element count.
func (s *FrozenSet) Len() int { return len(s.items) }

// Values returns the elements ordered by their formatted representation, so
// the result is deterministic.
func (s *FrozenSet) Values() []any {
	out := make([]any, 0, len(s.items))
	for v := range s.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}
