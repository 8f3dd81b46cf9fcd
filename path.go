package datum

import (
	"fmt"
	"strings"
)

// GetPath traverses a dot-separated path starting at this container and
// returns the value found, or def when any segment is missing or traversal
// hits a value that is neither a container nor a mapping. Container segments
// go through field resolution, so lazy fields are evaluated on the way; a
// resolution failure propagates. An empty path is a *PathError.
func (d *Data) GetPath(path string, def any) (any, error) {
	if path == "" {
		return nil, &PathError{Path: path, Reason: "path must be a non-empty string"}
	}

	var cur any = d
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case *Data:
			if !node.Has(seg) {
				return def, nil
			}
			value, err := node.Get(seg)
			if err != nil {
				return nil, err
			}
			cur = value
		case map[string]any:
			value, ok := node[seg]
			if !ok {
				return def, nil
			}
			cur = value
		case *FrozenMap:
			value, ok := node.Get(seg)
			if !ok {
				return def, nil
			}
			cur = value
		default:
			return def, nil
		}
	}
	return cur, nil
}

// SetPath assigns a value at a dot-separated path, auto-creating empty
// containers for missing intermediate segments. Intermediate positions must
// be containers or mutable mappings; anything else is a *PathError. The
// final assignment goes through the mutation pipeline when the target is a
// container.
func (d *Data) SetPath(path string, value any) error {
	if path == "" {
		return &PathError{Path: path, Reason: "path must be a non-empty string"}
	}

	segs := strings.Split(path, ".")
	var cur any = d
	for _, seg := range segs[:len(segs)-1] {
		next, err := pathChild(cur, seg)
		if err != nil {
			return err
		}
		if next != nil {
			cur = next
			continue
		}

		child := Empty()
		switch node := cur.(type) {
		case *Data:
			if err := node.Set(seg, child); err != nil {
				return err
			}
		case map[string]any:
			node[seg] = child
		default:
			return &PathError{
				Path:   path,
				Reason: fmt.Sprintf("cannot create segment %q (parent is %T)", seg, cur),
			}
		}
		cur = child
	}

	last := segs[len(segs)-1]
	switch node := cur.(type) {
	case *Data:
		return node.Set(last, value)
	case map[string]any:
		node[last] = value
		return nil
	default:
		return &PathError{
			Path:   path,
			Reason: fmt.Sprintf("cannot set segment %q (parent is %T)", last, cur),
		}
	}
}

// pathChild resolves one intermediate segment. A nil result means the
// segment is absent (or explicitly nil) and should be auto-created.
func pathChild(cur any, seg string) (any, error) {
	switch node := cur.(type) {
	case *Data:
		if !node.Has(seg) {
			return nil, nil
		}
		return node.Get(seg)
	case map[string]any:
		return node[seg], nil
	default:
		return nil, nil
	}
}
