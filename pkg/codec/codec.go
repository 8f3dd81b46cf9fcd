// Package codec bridges datum containers to JSON, YAML, and Go structs.
//
// Encoding goes through the container's plain-structure conversion, so it
// inherits the core semantics: method fields are omitted, lazy fields
// serialize as their stored placeholder, and cycles collapse to the circular
// marker. Decoding builds containers of plain fields only; markers are a
// construction-time API and have no wire form.
package codec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/datum"
)

// MarshalJSON encodes a container as JSON.
func MarshalJSON(d *datum.Data) ([]byte, error) {
	m, err := d.ToMap()
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// MarshalYAML encodes a container as YAML.
func MarshalYAML(d *datum.Data) ([]byte, error) {
	m, err := d.ToMap()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(m)
}

// FromMap builds a container from a plain map. Keys are taken in sorted
// order so construction is deterministic. Nested maps stay maps, mirroring
// the output shape of Data.ToMap.
func FromMap(m map[string]any, opts ...datum.Option) (*datum.Data, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]datum.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, datum.F(k, m[k]))
	}
	return datum.New(fields, opts...)
}

// FromJSON builds a container from a JSON document whose top level is an
// object.
func FromJSON(data []byte, opts ...datum.Option) (*datum.Data, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromMap(m, opts...)
}

// FromYAML builds a container from a YAML document whose top level is a
// mapping.
func FromYAML(data []byte, opts ...datum.Option) (*datum.Data, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromMap(m, opts...)
}

// FromStruct builds a container from the exported fields of a struct, using
// mapstructure field naming (honoring `mapstructure` tags).
func FromStruct(v any, opts ...datum.Option) (*datum.Data, error) {
	var m map[string]any
	if err := mapstructure.Decode(v, &m); err != nil {
		return nil, fmt.Errorf("codec: cannot map struct: %w", err)
	}
	return FromMap(m, opts...)
}

// Decode converts a container's plain structure into out, which must be a
// pointer to a struct or map, using mapstructure.
func Decode(d *datum.Data, out any) error {
	m, err := d.ToMap()
	if err != nil {
		return err
	}
	if err := mapstructure.Decode(m, out); err != nil {
		return fmt.Errorf("codec: cannot decode container: %w", err)
	}
	return nil
}

// DecodePatch converts a raw patch representation, as produced by decoding
// a serialized Patch, back into a typed datum.Patch. Each entry must be
// either a {"from": ..., "to": ...} object or a two-element array; anything
// else is a *datum.PatchError naming the offending field.
func DecodePatch(raw map[string]any) (datum.Patch, error) {
	patch := make(datum.Patch, len(raw))
	for name, entry := range raw {
		switch pair := entry.(type) {
		case map[string]any:
			from, fromOK := pair["from"]
			to, toOK := pair["to"]
			if !fromOK || !toOK {
				return nil, &datum.PatchError{Field: name, Reason: "entry must carry \"from\" and \"to\""}
			}
			patch[name] = datum.Change{From: from, To: to}
		case []any:
			if len(pair) != 2 {
				return nil, &datum.PatchError{Field: name, Reason: fmt.Sprintf("entry must be a pair, got %d elements", len(pair))}
			}
			patch[name] = datum.Change{From: pair[0], To: pair[1]}
		default:
			return nil, &datum.PatchError{Field: name, Reason: fmt.Sprintf("entry must be a pair, got %T", entry)}
		}
	}
	return patch, nil
}
