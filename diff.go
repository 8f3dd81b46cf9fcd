package datum

import (
	"reflect"
	"sort"
)

// Change records one differing field between two containers: From is the
// other container's stored value, To is this container's.
type Change struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Patch maps field names to changes, as produced by Diff.
type Patch map[string]Change

// Diff compares the stored user-field values of two containers and returns
// a patch holding every field, present on either side, whose values are
// structurally unequal. Lazy and method fields compare by their stored
// placeholder values, not by evaluation. Internal bookkeeping never takes
// part in the comparison.
func (d *Data) Diff(other *Data) Patch {
	out := make(Patch)
	if other == nil {
		other = Empty()
	}

	for _, name := range unionKeys(d, other) {
		a := d.rawValue(name)
		b := other.rawValue(name)
		if !reflect.DeepEqual(a, b) {
			out[name] = Change{From: b, To: a}
		}
	}
	return out
}

// Apply assigns each change's To value through the mutation pipeline, in
// sorted field order for determinism.
func (d *Data) Apply(patch Patch) error {
	names := make([]string, 0, len(patch))
	for name := range patch {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := d.Set(name, patch[name].To); err != nil {
			return err
		}
	}
	return nil
}

// rawValue returns the stored value without resolution: the placeholder for
// lazy and method fields, the plain value otherwise.
func (d *Data) rawValue(name string) any {
	entry, ok := d.fields[name]
	if !ok {
		return nil
	}
	return entry.value
}

func unionKeys(a, b *Data) []string {
	seen := make(map[string]struct{}, len(a.order)+len(b.order))
	keys := make([]string, 0, len(a.order)+len(b.order))
	for _, name := range a.order {
		seen[name] = struct{}{}
		keys = append(keys, name)
	}
	for _, name := range b.order {
		if _, ok := seen[name]; !ok {
			keys = append(keys, name)
		}
	}
	return keys
}
