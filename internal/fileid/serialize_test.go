package fileid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTripIsEqual(t *testing.T) {
	f := New()
	f.SetBool(KeyTemporary, true)
	f.SetInt(KeyVersion, 3)
	f.SetInt64(KeyDatabaseID, -7)
	f.SetString(KeyFileHint, "heap")
	f.SetPathVector(KeyAreaPath, []string{"/data/a", "/data/b"})
	f.SetIndexedInt(KeyFieldType, 1, 4)
	f.SetIndexedString(KeyFieldHint, 1, "fixed")
	f.SetIndexedBool(KeyFieldSortOrder, 2, true)

	blob, err := f.Serialize()
	require.NoError(t, err)

	back, err := Deserialize(blob)
	require.NoError(t, err)
	assert.True(t, f.Equal(back))
}

func TestDeserializeRejectsForeignClassTag(t *testing.T) {
	_, err := Deserialize([]byte{0, 0, 0, 0})
	assert.Error(t, err)
}

func TestDeserializeRejectsTruncatedData(t *testing.T) {
	f := New()
	f.SetInt(KeyVersion, 3)
	blob, err := f.Serialize()
	require.NoError(t, err)

	_, err = Deserialize(blob[:len(blob)-2])
	assert.Error(t, err)
}
