package datum

import "sort"

// View is a read-only named projection of a source container. Every access
// invokes the mapped function against the source; results are never cached,
// and the view holds no state of its own.
type View struct {
	source  *Data
	mapping map[string]ComputeFunc
}

// View creates a projection from projected names to functions of the source
// container.
func (d *Data) View(mapping map[string]ComputeFunc) *View {
	return &View{source: d, mapping: mapping}
}

// Get resolves a projected name. An unmapped name is a *UnknownViewError; a
// failing mapped function is wrapped as a *ComputationError naming the
// projected field.
func (v *View) Get(name string) (any, error) {
	fn, ok := v.mapping[name]
	if !ok {
		return nil, &UnknownViewError{Name: name}
	}
	return v.source.invoke(name, fn)
}

// Names returns the projected names in sorted order.
func (v *View) Names() []string {
	names := make([]string, 0, len(v.mapping))
	for name := range v.mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
