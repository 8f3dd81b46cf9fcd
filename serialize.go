package datum

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// CircularKey marks the point where serialization met an already-visited
// container. The marker replaces the repeated subtree, keeping the output
// finite for cyclic structures.
const CircularKey = "$circular"

// ToMap converts the container into a plain nested structure of maps,
// slices, and scalars. Nested containers convert recursively; revisiting one
// emits {"$circular": true} instead of recursing. Method fields carry no
// serializable value and are omitted.
func (d *Data) ToMap() (map[string]any, error) {
	return d.toMap(make(map[*Data]struct{}), false)
}

// hashMap is the for-hash projection: anti-freeze and lazy fields are
// non-canonical for identity purposes and are left out.
func (d *Data) hashMap() (map[string]any, error) {
	return d.toMap(make(map[*Data]struct{}), true)
}

func (d *Data) toMap(seen map[*Data]struct{}, forHash bool) (map[string]any, error) {
	if _, visited := seen[d]; visited {
		return map[string]any{CircularKey: true}, nil
	}
	seen[d] = struct{}{}

	out := make(map[string]any, len(d.fields))
	for _, name := range d.order {
		entry := d.fields[name]
		if entry.kind == kindMethod {
			continue
		}
		if forHash {
			if _, exempt := d.antiFreeze[name]; exempt {
				continue
			}
			if entry.kind == kindLazy {
				continue
			}
		}
		plain, err := toPlain(entry.value, seen, forHash)
		if err != nil {
			return nil, &SerializationError{Err: fmt.Errorf("field %q: %w", name, err)}
		}
		out[name] = plain
	}
	return out, nil
}

func toPlain(v any, seen map[*Data]struct{}, forHash bool) (any, error) {
	switch x := v.(type) {
	case *Data:
		return x.toMap(seen, forHash)
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, item := range x {
			plain, err := toPlain(item, seen, forHash)
			if err != nil {
				return nil, err
			}
			out[key] = plain
		}
		return out, nil
	case *FrozenMap:
		out := make(map[string]any, x.Len())
		for _, key := range x.Keys() {
			item, _ := x.Get(key)
			plain, err := toPlain(item, seen, forHash)
			if err != nil {
				return nil, err
			}
			out[key] = plain
		}
		return out, nil
	case []any:
		return plainSlice(x, seen, forHash)
	case *FrozenList:
		return plainSlice(x.items, seen, forHash)
	case Set:
		frozen := &FrozenSet{items: map[any]struct{}{}}
		for item := range x {
			frozen.items[item] = struct{}{}
		}
		return plainSlice(frozen.Values(), seen, forHash)
	case *FrozenSet:
		return plainSlice(x.Values(), seen, forHash)
	default:
		return v, nil
	}
}

func plainSlice(items []any, seen map[*Data]struct{}, forHash bool) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		plain, err := toPlain(item, seen, forHash)
		if err != nil {
			return nil, err
		}
		out[i] = plain
	}
	return out, nil
}

// Hash returns a stable 64-bit hash of the frozen container, derived from
// the canonical JSON encoding (sorted keys) of the for-hash projection.
// Hashing an unfrozen container fails with ErrNotFrozen. The result is
// cached until the next successful mutation and subsequent freeze.
func (d *Data) Hash() (uint64, error) {
	if !d.frozen {
		return 0, ErrNotFrozen
	}
	if d.hashCache != nil {
		return *d.hashCache, nil
	}

	m, err := d.hashMap()
	if err != nil {
		return 0, err
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return 0, &SerializationError{Err: err}
	}

	h := xxhash.Sum64(encoded)
	d.hashCache = &h
	return h, nil
}

// Equals compares two frozen containers by their for-hash projections.
// Identity short-circuits to true. If either side is unfrozen, or other is
// nil, the result is false.
func (d *Data) Equals(other *Data) bool {
	if d == other {
		return true
	}
	if other == nil || !d.frozen || !other.frozen {
		return false
	}

	a, err := d.hashMap()
	if err != nil {
		return false
	}
	b, err := other.hashMap()
	if err != nil {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// String renders the container as Data(<plain map>). Unserializable
// containers fall back to a placeholder instead of failing.
func (d *Data) String() string {
	m, err := d.ToMap()
	if err != nil {
		return fmt.Sprintf("<Data (unserializable) %p>", d)
	}
	return fmt.Sprintf("Data(%v)", m)
}
