package datum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datum"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name  string
		a     []datum.Field
		b     []datum.Field
		want  datum.Patch
	}{
		{
			name: "identical containers produce an empty patch",
			a:    []datum.Field{datum.F("x", 1), datum.F("y", "s")},
			b:    []datum.Field{datum.F("x", 1), datum.F("y", "s")},
			want: datum.Patch{},
		},
		{
			name: "changed field",
			a:    []datum.Field{datum.F("x", 1), datum.F("y", 2)},
			b:    []datum.Field{datum.F("x", 1), datum.F("y", 99)},
			want: datum.Patch{"y": {From: 99, To: 2}},
		},
		{
			name: "field only on one side",
			a:    []datum.Field{datum.F("x", 1)},
			b:    []datum.Field{datum.F("z", 5)},
			want: datum.Patch{
				"x": {From: nil, To: 1},
				"z": {From: 5, To: nil},
			},
		},
		{
			name: "structural comparison of nested values",
			a:    []datum.Field{datum.F("m", map[string]any{"k": 1})},
			b:    []datum.Field{datum.F("m", map[string]any{"k": 1})},
			want: datum.Patch{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := datum.New(tc.a)
			require.NoError(t, err)
			b, err := datum.New(tc.b)
			require.NoError(t, err)

			assert.Equal(t, tc.want, a.Diff(b))
		})
	}
}

func TestDiffApplyRoundTrip(t *testing.T) {
	a, err := datum.New([]datum.Field{
		datum.F("a", 1),
		datum.F("b", 2),
		datum.F("only_a", "x"),
	})
	require.NoError(t, err)
	b, err := datum.New([]datum.Field{
		datum.F("a", 1),
		datum.F("b", 99),
		datum.F("only_b", "y"),
	})
	require.NoError(t, err)

	// Applying B's diff against A onto A makes A field-equal to B on all
	// shared, comparable fields.
	require.NoError(t, a.Apply(b.Diff(a)))

	assert.Equal(t, 1, a.GetOr("a", nil))
	assert.Equal(t, 99, a.GetOr("b", nil))
	assert.Equal(t, "y", a.GetOr("only_b", nil))
}

func TestApplyGoesThroughMutationPipeline(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1)})
	require.NoError(t, err)

	var notified []string
	d.Watch(func(field string, old, new any) {
		notified = append(notified, field)
	})

	require.NoError(t, d.Apply(datum.Patch{
		"a": {From: 1, To: 10},
		"b": {From: nil, To: 20},
	}))

	assert.Equal(t, []string{"a", "b"}, notified, "patch applies in sorted field order")
	assert.Equal(t, 10, d.GetOr("a", nil))
	assert.Equal(t, 20, d.GetOr("b", nil))
}

func TestApplyToFrozenFails(t *testing.T) {
	d, err := datum.New([]datum.Field{datum.F("a", 1)})
	require.NoError(t, err)
	require.NoError(t, d.Freeze())

	err = d.Apply(datum.Patch{"a": {From: 1, To: 2}})
	assert.ErrorIs(t, err, datum.ErrFrozen)
}

func TestDiffIgnoresLazyEvaluation(t *testing.T) {
	lazy := datum.Lazy(func(d *datum.Data) (any, error) { return 1, nil })

	a, err := datum.New([]datum.Field{datum.F("lz", lazy), datum.F("x", 1)})
	require.NoError(t, err)
	b, err := datum.New([]datum.Field{datum.F("lz", lazy), datum.F("x", 1)})
	require.NoError(t, err)

	// Evaluating one side must not create a difference: diff compares
	// stored placeholders, not resolved values.
	_, err = a.Get("lz")
	require.NoError(t, err)

	assert.Empty(t, a.Diff(b))
}
