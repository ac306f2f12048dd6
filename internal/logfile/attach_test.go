package logfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
)

func TestAttachedFileIDReportsFalseForEmptyBlob(t *testing.T) {
	file := catalog.NewFile(1, 0, "f", catalog.FileCategoryRecord)
	id, ok, err := AttachedFileID(file)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, id)
}

func TestPersistFileIDRoundTripsThroughAttachedFileID(t *testing.T) {
	file := catalog.NewFile(1, 0, "f", catalog.FileCategoryRecord)
	want := fileid.New()
	want.SetInt(fileid.KeyVersion, 3)
	want.SetString(fileid.KeyFileHint, "heap")

	require.NoError(t, PersistFileID(file, want))
	assert.NotEmpty(t, file.FileIDBlob)

	got, ok, err := AttachedFileID(file)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, want.Equal(got))
}

func TestAttachedFileIDRejectsCorruptBlob(t *testing.T) {
	file := catalog.NewFile(1, 0, "f", catalog.FileCategoryRecord)
	file.FileIDBlob = []byte{1, 2, 3}
	_, _, err := AttachedFileID(file)
	assert.Error(t, err)
}
