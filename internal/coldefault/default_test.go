package coldefault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/kernelerr"
)

func TestConstantRoundTrip(t *testing.T) {
	d := NewConstant(int64(42))
	rendered := d.ToSQLStatement()
	assert.Equal(t, "default 42", rendered)

	parsed, err := Parse(rendered)
	require.NoError(t, err)
	v, ok := parsed.Constant()
	require.True(t, ok)
	assert.Equal(t, int64(42), v)
}

func TestFunctionRoundTrip(t *testing.T) {
	d, err := NewFunction(FunctionCurrentTimestamp, true)
	require.NoError(t, err)
	assert.True(t, d.IsUseOnUpdate())

	parsed, err := Parse(d.ToSQLStatement())
	require.NoError(t, err)
	fn, ok := parsed.FunctionID()
	require.True(t, ok)
	assert.Equal(t, FunctionCurrentTimestamp, fn)
	assert.True(t, parsed.IsUseOnUpdate())
}

func TestNewIDFunctionRoundTrip(t *testing.T) {
	d, err := NewFunction(FunctionNewID, false)
	require.NoError(t, err)

	parsed, err := Parse(d.ToSQLStatement())
	require.NoError(t, err)
	fn, ok := parsed.FunctionID()
	require.True(t, ok)
	assert.Equal(t, FunctionNewID, fn)
}

func TestUnrecognizedFunctionIsNotSupported(t *testing.T) {
	_, err := NewFunction(Function(99), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernelerr.NotSupported)
}

func TestIdentityRoundTrip(t *testing.T) {
	spec := IdentitySpec{Start: 10, HasStart: true, Increment: 2}
	d, err := NewIdentity(spec, true)
	require.NoError(t, err)
	assert.True(t, d.IsIdentity())
	assert.True(t, d.IsUseAlways())

	got, ok := d.GetIdentitySpec()
	require.True(t, ok)
	assert.Equal(t, int64(10), got.Start)
	assert.Equal(t, int64(2), got.Increment)

	parsed, err := Parse(d.ToSQLStatement())
	require.NoError(t, err)
	gotSpec, ok := parsed.GetIdentitySpec()
	require.True(t, ok)
	assert.Equal(t, int64(10), gotSpec.Start)
	assert.Equal(t, int64(2), gotSpec.Increment)
	assert.True(t, parsed.IsUseAlways())
}

func TestIdentityStartBelowMinFails(t *testing.T) {
	spec := IdentitySpec{Start: 1, HasStart: true, Increment: 1, MinValue: 5, HasMinValue: true, MaxValue: 100, HasMaxValue: true}
	_, err := NewIdentity(spec, false)
	require.Error(t, err)
}

func TestIdentityZeroIncrementFails(t *testing.T) {
	spec := IdentitySpec{Increment: 0}
	_, err := NewIdentity(spec, false)
	require.Error(t, err)
}

func TestIdentityDefaultStartAscendingUsesMinValue(t *testing.T) {
	spec := IdentitySpec{Increment: 1, MinValue: 7, HasMinValue: true, MaxValue: 100, HasMaxValue: true}
	d, err := NewIdentity(spec, false)
	require.NoError(t, err)
	got, _ := d.GetIdentitySpec()
	assert.Equal(t, int64(7), got.Start)
}

func TestConstantArray(t *testing.T) {
	d := NewConstantArray([]any{int64(1), int64(2), int64(3)})
	arr, ok := d.ConstantArray()
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, arr)
}
