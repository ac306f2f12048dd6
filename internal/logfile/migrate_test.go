package logfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
)

func TestCheckFieldTypeRewritesUniqueIdentifierLength(t *testing.T) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, 2)
	id.SetIndexedInt(fileid.KeyFieldType, 1, int(catalog.ColumnTypeUniqueIdentifier))

	col := catalog.NewColumn(1, 0, "uid", 1, catalog.ColumnTypeUniqueIdentifier)
	col.Length = 36

	CheckFieldType(id, []*catalog.Column{nil, col})

	length, err := id.GetIndexedInt(fileid.KeyFieldLength, 1)
	require.NoError(t, err)
	assert.Equal(t, 36, length)
}

func TestCheckFieldTypeRewritesUnencodedStringLength(t *testing.T) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, 1)
	id.SetIndexedInt(fileid.KeyFieldType, 1, int(catalog.ColumnTypeNVarChar))

	col := catalog.NewColumn(1, 0, "name", 1, catalog.ColumnTypeNVarChar)
	col.Length = 32

	CheckFieldType(id, []*catalog.Column{nil, col})

	length, err := id.GetIndexedInt(fileid.KeyFieldLength, 1)
	require.NoError(t, err)
	assert.Equal(t, 64, length)
}

func TestCheckFieldTypeSkipsUnlimitedColumns(t *testing.T) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, 1)
	id.SetIndexedInt(fileid.KeyFieldType, 1, int(catalog.ColumnTypeNVarChar))
	id.SetIndexedInt(fileid.KeyFieldLength, 1, 999)

	col := catalog.NewColumn(1, 0, "blob", 1, catalog.ColumnTypeUnlimited)
	CheckFieldType(id, []*catalog.Column{nil, col})

	length, err := id.GetIndexedInt(fileid.KeyFieldLength, 1)
	require.NoError(t, err)
	assert.Equal(t, 999, length)
}

func TestCheckFieldTypeNoOpAtVersionThreeOrAbove(t *testing.T) {
	id := fileid.New()
	id.SetInt(fileid.KeyVersion, 3)
	id.SetIndexedInt(fileid.KeyFieldType, 1, int(catalog.ColumnTypeNVarChar))
	id.SetIndexedInt(fileid.KeyFieldLength, 1, 10)

	col := catalog.NewColumn(1, 0, "name", 1, catalog.ColumnTypeNVarChar)
	col.Length = 32

	CheckFieldType(id, []*catalog.Column{nil, col})

	length, err := id.GetIndexedInt(fileid.KeyFieldLength, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, length)
}
