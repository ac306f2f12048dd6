package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
)

// TestScenarioCreateDescribeDropTable exercises the create/describe/drop
// walk-through: one primary-key column plus one plain column yields one
// PK key, one PK constraint, one auto-index, and two Files (Record +
// Btree); dropping the table soft-deletes it without touching those
// counts.
func TestScenarioCreateDescribeDropTable(t *testing.T) {
	eng := newTestEngine(t)

	table, err := eng.CreateTable("shop", `CREATE TABLE T (
		id INT PRIMARY KEY,
		name NVARCHAR(32)
	)`)
	require.NoError(t, err)

	counts := table.Counts()
	assert.Equal(t, 2, counts.Columns)
	assert.Equal(t, 1, counts.Keys)
	assert.Equal(t, 1, counts.Constraints)
	assert.Equal(t, 1, counts.Indexes)
	assert.Equal(t, 2, counts.Files)

	require.NoError(t, eng.DropTable("shop", "T"))

	db, err := eng.Database("shop")
	require.NoError(t, err)
	reloaded, ok := db.Table(table.ID)
	require.True(t, ok)
	assert.Equal(t, catalog.StatusDeleted, reloaded.Status)

	afterDrop := reloaded.Counts()
	assert.Equal(t, counts, afterDrop, "drop must not alter the table's own catalog row counts")
}
