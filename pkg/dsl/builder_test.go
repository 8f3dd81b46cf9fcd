package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datum"
	"github.com/aretw0/datum/pkg/dsl"
)

func TestBuilder(t *testing.T) {
	d, err := dsl.New().
		Field("a", 2).
		Field("b", 3).
		Computed("sum", func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) + d.GetOr("b", 0).(int), nil
		}).
		Lazy("product", func(d *datum.Data) (any, error) {
			return d.GetOr("a", 0).(int) * d.GetOr("b", 0).(int), nil
		}).
		Method("scale", func(d *datum.Data, args ...any) (any, error) {
			return d.GetOr("a", 0).(int) * args[0].(int), nil
		}).
		AntiFreeze("scratch", "mutable").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 5, d.GetOr("sum", nil))
	assert.Equal(t, 6, d.GetOr("product", nil))

	scaled, err := d.Call("scale", 10)
	require.NoError(t, err)
	assert.Equal(t, 20, scaled)

	require.NoError(t, d.Freeze())
	require.NoError(t, d.Set("scratch", "still writable"))
}

func TestBuilderDeclarationOrder(t *testing.T) {
	// Later computed fields see the results of earlier ones.
	d, err := dsl.New().
		Field("base", 1).
		Computed("step1", func(d *datum.Data) (any, error) {
			return d.GetOr("base", 0).(int) + 1, nil
		}).
		Computed("step2", func(d *datum.Data) (any, error) {
			return d.GetOr("step1", 0).(int) + 1, nil
		}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, d.GetOr("step2", nil))
}

func TestBuilderInvalidName(t *testing.T) {
	_, err := dsl.New().Field("not valid", 1).Build()
	var nameErr *datum.InvalidNameError
	assert.ErrorAs(t, err, &nameErr)
}
