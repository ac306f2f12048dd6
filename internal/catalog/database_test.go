package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/dbconfig"
	"catalogkernel/internal/fileid"
	"catalogkernel/internal/lock"
)

func newTestDatabase() *Database {
	return NewDatabase(1, "testdb", dbconfig.PathTriple{Data: "/data/testdb"}, dbconfig.AttributeOnline)
}

func TestAddTableRejectsDuplicateName(t *testing.T) {
	db := newTestDatabase()
	require.NoError(t, db.AddTable(NewTable(10, db.ID, "orders")))
	err := db.AddTable(NewTable(11, db.ID, "orders"))
	require.Error(t, err)
}

func TestDropTableMarksDeleted(t *testing.T) {
	db := newTestDatabase()
	tbl := NewTable(10, db.ID, "orders")
	require.NoError(t, db.AddTable(tbl))
	require.NoError(t, db.DropTable(10))

	got, ok := db.Table(10)
	require.True(t, ok)
	assert.Equal(t, StatusDeleted, got.Status)
}

func TestGetLockedAcquiresDatabaseThenTable(t *testing.T) {
	db := newTestDatabase()
	require.NoError(t, db.AddTable(NewTable(10, db.ID, "orders")))

	unlock, err := db.GetLocked(context.Background(), "orders", ManipulateTable, lock.Exclusive, time.Second)
	require.NoError(t, err)
	unlock()
}

// TestFreezeMeltRoundTrip exercises Freeze/Melt against a real serialized
// object rather than an opaque placeholder: the blob is a fileid.FileID's
// own Serialize() form, and rebuild is fileid.Deserialize — the same pair
// a File's backing FileID goes through on every logfile driver reattach.
// Database deliberately takes the blob/rebuild as caller-supplied values
// rather than importing internal/fileid itself (see the UniquenessMode
// note in index.go), so only the test, not production catalog code, needs
// the fileid import.
func TestFreezeMeltRoundTrip(t *testing.T) {
	db := newTestDatabase()

	want := fileid.New()
	want.SetInt(fileid.KeyVersion, 3)
	want.SetString(fileid.KeyFileHint, "heap")
	blob, err := want.Serialize()
	require.NoError(t, err)

	db.Freeze(10, blob)
	assert.True(t, db.IsFrozen(10))

	rebuilt, ok := db.Melt(10, func(blob []byte) any {
		id, err := fileid.Deserialize(blob)
		require.NoError(t, err)
		return id
	})
	require.True(t, ok)
	got, ok := rebuilt.(*fileid.FileID)
	require.True(t, ok)
	assert.True(t, want.Equal(got))
	assert.False(t, db.IsFrozen(10))
}

func TestSetPathStagesMoveRecord(t *testing.T) {
	db := newTestDatabase()
	move := db.SetPath(dbconfig.PathTriple{Data: "/data/new"})
	assert.Equal(t, "/data/testdb", move.Prev.Data)
	assert.Equal(t, "/data/new", move.Post.Data)
	assert.Equal(t, "/data/new", db.Path.Data)
}
