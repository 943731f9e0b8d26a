package schema

import (
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/stretchr/testify/require"
)

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", &winnow.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &winnow.StringColumnType{Length: 12})
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentLength(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &winnow.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &winnow.StringColumnType{Length: 13})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &winnow.Uint32ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", &winnow.VarStringColumnType{})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &winnow.Uint32ColumnType{})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaRepack(t *testing.T) {
	schema := CreateSchema()
	_, err := schema.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("col2", &winnow.Uint32ColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("col3", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	_, removed := schema.RemoveColumn("col2")
	require.True(t, removed)
	require.Equal(t, 1, schema.NumRemovedColumns())

	repacked := schema.Repack()
	require.Equal(t, 2, repacked.NumColumns())
	require.Equal(t, 0, repacked.NumRemovedColumns())
	require.False(t, repacked.HasColumn("col2"))
	require.Equal(t, 8, repacked.RowWidth())
	col, err := repacked.GetOffset("col1")
	require.Nil(t, err)
	require.Equal(t, 0, col.Start())
}
