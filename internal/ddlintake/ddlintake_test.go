package ddlintake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogkernel/internal/catalog"
)

func TestAnalyzeCreateTableExtractsColumnsAndPrimaryKey(t *testing.T) {
	a := New()
	intent, err := a.AnalyzeCreateTable(`CREATE TABLE orders (
		id BIGINT PRIMARY KEY,
		customer VARCHAR(64) NOT NULL,
		amount DOUBLE
	)`)
	require.NoError(t, err)

	assert.Equal(t, "orders", intent.TableName)
	require.Len(t, intent.Columns, 3)
	assert.Equal(t, "id", intent.Columns[0].Name)
	assert.Equal(t, catalog.ColumnTypeBigInt, intent.Columns[0].Type)
	assert.True(t, intent.Columns[0].PrimaryKey)
	assert.Equal(t, catalog.ColumnTypeVarChar, intent.Columns[1].Type)
	assert.Equal(t, 64, intent.Columns[1].Length)
	assert.False(t, intent.Columns[1].Nullable)

	var pk *ConstraintIntent
	for i := range intent.Constraints {
		if intent.Constraints[i].Type == catalog.ConstraintTypePrimaryKey {
			pk = &intent.Constraints[i]
		}
	}
	require.NotNil(t, pk)
	assert.Equal(t, []string{"id"}, pk.Columns)
}

func TestAnalyzeCreateTableExtractsTableLevelUnique(t *testing.T) {
	a := New()
	intent, err := a.AnalyzeCreateTable(`CREATE TABLE widgets (
		sku VARCHAR(32),
		UNIQUE KEY uq_sku (sku)
	)`)
	require.NoError(t, err)

	require.Len(t, intent.Constraints, 1)
	assert.Equal(t, catalog.ConstraintTypeUnique, intent.Constraints[0].Type)
	assert.Equal(t, []string{"sku"}, intent.Constraints[0].Columns)
}

func TestAnalyzeAlterTableAddColumn(t *testing.T) {
	a := New()
	intents, err := a.AnalyzeAlterTable(`ALTER TABLE orders ADD COLUMN note VARCHAR(255)`)
	require.NoError(t, err)

	require.Len(t, intents, 1)
	assert.Equal(t, AlterAddColumn, intents[0].Kind)
	require.NotNil(t, intents[0].Column)
	assert.Equal(t, "note", intents[0].Column.Name)
	assert.Equal(t, catalog.ColumnTypeVarChar, intents[0].Column.Type)
}

func TestAnalyzeAlterTableDropColumn(t *testing.T) {
	a := New()
	intents, err := a.AnalyzeAlterTable(`ALTER TABLE orders DROP COLUMN note`)
	require.NoError(t, err)

	require.Len(t, intents, 1)
	assert.Equal(t, AlterDropColumn, intents[0].Kind)
	assert.Equal(t, "note", intents[0].DropName)
}

func TestAnalyzeCreateIndex(t *testing.T) {
	a := New()
	intent, err := a.AnalyzeCreateIndex(`CREATE UNIQUE INDEX idx_customer ON orders (customer)`)
	require.NoError(t, err)

	assert.Equal(t, "orders", intent.TableName)
	assert.Equal(t, "idx_customer", intent.Index.Name)
	assert.True(t, intent.Index.Unique)
	assert.Equal(t, []string{"customer"}, intent.Index.Columns)
}

func TestAnalyzeCreateTableRejectsWrongStatementKind(t *testing.T) {
	a := New()
	_, err := a.AnalyzeCreateTable(`DROP TABLE orders`)
	assert.Error(t, err)
}
