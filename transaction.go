package datum

// txSnapshot captures the user-field state at transaction entry. Internal
// state (watchers, logger, hooks) is deliberately excluded: rollback must
// not unregister observers.
type txSnapshot struct {
	fields     map[string]*fieldEntry
	order      []string
	antiFreeze map[string]struct{}
	hashCache  *uint64
}

// Transaction runs fn inside a snapshot scope. On a nil return the mutations
// commit. If fn returns an error or panics, the user-field state is restored
// to the snapshot and the original failure propagates. A snapshot capture
// failure aborts entry with a *TransactionError before any mutation runs.
// Transactions nest: each call rolls back only to its own entry point.
func (d *Data) Transaction(fn func(d *Data) error) error {
	snap, err := d.captureSnapshot()
	if err != nil {
		return &TransactionError{Op: "snapshot", Err: err}
	}
	d.tx = append(d.tx, snap)

	defer func() {
		if r := recover(); r != nil {
			d.rollback()
			panic(r)
		}
	}()

	if err := fn(d); err != nil {
		d.rollback()
		return err
	}

	d.tx = d.tx[:len(d.tx)-1]
	if d.hooks.OnTransaction != nil {
		d.hooks.OnTransaction(true)
	}
	return nil
}

// rollback pops the most recent snapshot and restores it. Restoration swaps
// whole maps back into place and cannot partially fail.
func (d *Data) rollback() {
	snap := d.tx[len(d.tx)-1]
	d.tx = d.tx[:len(d.tx)-1]

	d.fields = snap.fields
	d.order = snap.order
	d.antiFreeze = snap.antiFreeze
	d.hashCache = snap.hashCache

	if d.hooks.OnTransaction != nil {
		d.hooks.OnTransaction(false)
	}
}

// captureSnapshot deep-copies the user-field state.
func (d *Data) captureSnapshot() (*txSnapshot, error) {
	memo := make(map[*Data]*Data)

	fields := make(map[string]*fieldEntry, len(d.fields))
	for name, entry := range d.fields {
		copied, err := copyEntry(entry, memo)
		if err != nil {
			return nil, err
		}
		fields[name] = copied
	}

	order := make([]string, len(d.order))
	copy(order, d.order)

	antiFreeze := make(map[string]struct{}, len(d.antiFreeze))
	for name := range d.antiFreeze {
		antiFreeze[name] = struct{}{}
	}

	var hash *uint64
	if d.hashCache != nil {
		h := *d.hashCache
		hash = &h
	}

	return &txSnapshot{
		fields:     fields,
		order:      order,
		antiFreeze: antiFreeze,
		hashCache:  hash,
	}, nil
}

func copyEntry(entry *fieldEntry, memo map[*Data]*Data) (*fieldEntry, error) {
	value, err := deepCopyValue(entry.value, memo)
	if err != nil {
		return nil, err
	}
	cached, err := deepCopyValue(entry.cached, memo)
	if err != nil {
		return nil, err
	}
	return &fieldEntry{
		kind:    entry.kind,
		value:   value,
		compute: entry.compute,
		method:  entry.method,
		cached:  cached,
		valid:   entry.valid,
	}, nil
}

// deepCopyValue copies containers, mappings, slices, and sets recursively.
// Frozen collections are shared (immutable), functions are shared, scalars
// copy by value. The memo table keeps cyclic container graphs finite.
func deepCopyValue(v any, memo map[*Data]*Data) (any, error) {
	switch x := v.(type) {
	case *Data:
		return x.clone(memo)
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, item := range x {
			copied, err := deepCopyValue(item, memo)
			if err != nil {
				return nil, err
			}
			out[key] = copied
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			copied, err := deepCopyValue(item, memo)
			if err != nil {
				return nil, err
			}
			out[i] = copied
		}
		return out, nil
	case Set:
		out := make(Set, len(x))
		for item := range x {
			copied, err := deepCopyValue(item, memo)
			if err != nil {
				return nil, err
			}
			out[copied] = struct{}{}
		}
		return out, nil
	default:
		return v, nil
	}
}

// Snapshot returns a full deep copy of the container, independent of the
// transaction mechanism. Watchers are carried over (sharing the function
// references); the pending transaction stack is not.
func (d *Data) Snapshot() (*Data, error) {
	return d.clone(make(map[*Data]*Data))
}

func (d *Data) clone(memo map[*Data]*Data) (*Data, error) {
	if existing, ok := memo[d]; ok {
		return existing, nil
	}

	out := Empty(WithLogger(d.logger), WithHooks(d.hooks))
	memo[d] = out

	for _, name := range d.order {
		copied, err := copyEntry(d.fields[name], memo)
		if err != nil {
			return nil, err
		}
		out.insert(name, copied)
	}
	for name := range d.antiFreeze {
		out.antiFreeze[name] = struct{}{}
	}
	out.frozen = d.frozen
	out.watchers = append(out.watchers, d.watchers...)
	if d.hashCache != nil {
		h := *d.hashCache
		out.hashCache = &h
	}
	return out, nil
}
