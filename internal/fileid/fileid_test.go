package fileid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	f := New()
	f.SetBool(KeyTemporary, true)
	f.SetInt(KeyFieldCount, 4)
	f.SetString(KeyFileHint, "heap")
	f.SetPathVector(KeyAreaPath, []string{"/data/a", "/data/b"})

	temp, err := f.GetBool(KeyTemporary)
	require.NoError(t, err)
	assert.True(t, temp)

	count, err := f.GetInt(KeyFieldCount)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	hint, err := f.GetString(KeyFileHint)
	require.NoError(t, err)
	assert.Equal(t, "heap", hint)

	paths, err := f.GetPathVector(KeyAreaPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a", "/data/b"}, paths)
}

func TestMissingKeyYieldsDefaultNotError(t *testing.T) {
	f := New()
	v, err := f.GetInt(KeyFieldCount)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	s, err := f.GetString(KeyFileHint)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestTypeMismatchYieldsInvalidFileID(t *testing.T) {
	f := New()
	f.SetString(KeyFileHint, "heap")

	_, err := f.GetInt(KeyFileHint)
	require.Error(t, err)
	var mismatch *ErrTypeMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, KeyFileHint, mismatch.Key)
}

func TestIndexedFamily(t *testing.T) {
	f := New()
	f.SetIndexedInt(KeyFieldType, 0, 1)
	f.SetIndexedInt(KeyFieldType, 1, 2)
	f.SetIndexedString(KeyFieldHint, 1, "compressed")

	v0, err := f.GetIndexedInt(KeyFieldType, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, v0)

	v1, err := f.GetIndexedInt(KeyFieldType, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, v1)

	hint, err := f.GetIndexedString(KeyFieldHint, 1)
	require.NoError(t, err)
	assert.Equal(t, "compressed", hint)
}

func TestEqualIgnoresInsertionOrder(t *testing.T) {
	a := New()
	a.SetBool(KeyTemporary, true)
	a.SetInt(KeyFieldCount, 2)

	b := New()
	b.SetInt(KeyFieldCount, 2)
	b.SetBool(KeyTemporary, true)

	assert.True(t, a.Equal(b))

	b.SetInt(KeyFieldCount, 3)
	assert.False(t, a.Equal(b))
}

func TestCopyIsIndependent(t *testing.T) {
	a := New()
	a.SetPathVector(KeyAreaPath, []string{"/data"})

	b := a.Copy()
	paths, _ := b.GetPathVector(KeyAreaPath)
	paths[0] = "/mutated"

	orig, _ := a.GetPathVector(KeyAreaPath)
	assert.Equal(t, "/data", orig[0])
}

func TestEntriesRoundTrip(t *testing.T) {
	a := New()
	a.SetBool(KeyTemporary, true)
	a.SetIndexedInt(KeyFieldType, 2, 7)

	b := FromEntries(a.Entries())
	assert.True(t, a.Equal(b))
}
