package datum_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datum"
)

func TestTransactionCommit(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1), datum.F("b", 2)})
	require.NoError(t, err)

	err = d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 10); err != nil {
			return err
		}
		return d.Set("b", 20)
	})
	require.NoError(t, err)

	assert.Equal(t, 10, d.GetOr("a", nil))
	assert.Equal(t, 20, d.GetOr("b", nil))
}

func TestTransactionRollback(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1), datum.F("b", 2)})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 999); err != nil {
			return err
		}
		if err := d.Set("c", 3); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom, "the original error propagates to the caller")

	assert.Equal(t, 1, d.GetOr("a", nil), "mutated field restored")
	assert.False(t, d.Has("c"), "field added inside the transaction removed")
	assert.Equal(t, []string{"a", "b"}, d.Keys())
}

func TestTransactionRollbackOnPanic(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1)})
	require.NoError(t, err)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = d.Transaction(func(d *datum.Data) error {
			if err := d.Set("a", 999); err != nil {
				return err
			}
			panic("kaput")
		})
	})

	assert.Equal(t, 1, d.GetOr("a", nil))
}

func TestTransactionNesting(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1)})
	require.NoError(t, err)

	inner := errors.New("inner failed")
	err = d.Transaction(func(d *datum.Data) error {
		if err := d.Set("a", 2); err != nil {
			return err
		}

		// Inner rollback restores to the inner entry point only.
		ierr := d.Transaction(func(d *datum.Data) error {
			if err := d.Set("a", 3); err != nil {
				return err
			}
			return inner
		})
		assert.ErrorIs(t, ierr, inner)
		assert.Equal(t, 2, d.GetOr("a", nil), "rolled back to nearest snapshot, not to pre-all state")

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, d.GetOr("a", nil))
}

func TestTransactionSnapshotIsolation(t *testing.T) {
	d, err := datum.New([]datum.Field{
		datum.F("nested", map[string]any{"count": 1}),
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = d.Transaction(func(d *datum.Data) error {
		v, err := d.Get("nested")
		if err != nil {
			return err
		}
		v.(map[string]any)["count"] = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, err := d.Get("nested")
	require.NoError(t, err)
	assert.Equal(t, 1, v.(map[string]any)["count"], "snapshot must deep-copy nested values")
}

func TestTransactionKeepsWatchers(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1)})
	require.NoError(t, err)

	var fired int
	d.Watch(func(field string, old, new any) { fired++ })

	_ = d.Transaction(func(d *datum.Data) error {
		_ = d.Set("a", 2)
		return errors.New("boom")
	})

	// Rollback restores fields, not internal state: the watcher stays
	// registered and keeps firing.
	require.NoError(t, d.Set("a", 5))
	assert.Equal(t, 2, fired)
}

func TestSnapshotIndependentCopy(t *testing.T) {
	d, err := datum.New([]datum.Field{
		datum.F("a", 1),
		datum.F("nested", map[string]any{"x": 1}),
	})
	require.NoError(t, err)

	snap, err := d.Snapshot()
	require.NoError(t, err)

	require.NoError(t, d.Set("a", 500))
	nested, err := d.Get("nested")
	require.NoError(t, err)
	nested.(map[string]any)["x"] = 2

	assert.Equal(t, 1, snap.GetOr("a", nil))
	snapNested, err := snap.Get("nested")
	require.NoError(t, err)
	assert.Equal(t, 1, snapNested.(map[string]any)["x"])
}

func TestSnapshotOfCyclicContainer(t *testing.T) {
	a := datum.Empty()
	require.NoError(t, a.Set("self", a))

	snap, err := a.Snapshot()
	require.NoError(t, err)

	inner, err := snap.Get("self")
	require.NoError(t, err)
	assert.Same(t, snap, inner, "cycle is preserved inside the copy")
}

func TestSnapshotPreservesFieldKinds(t *testing.T) {
	calls := 0
	d, err := datum.New([]datum.Field{
		datum.F("n", 2),
		datum.F("twice", datum.Lazy(func(d *datum.Data) (any, error) {
			calls++
			v, err := d.Get("n")
			if err != nil {
				return nil, err
			}
			return v.(int) * 2, nil
		})),
	})
	require.NoError(t, err)

	snap, err := d.Snapshot()
	require.NoError(t, err)

	v, err := snap.Get("twice")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 1, calls, "lazy registration survives the copy")
}
