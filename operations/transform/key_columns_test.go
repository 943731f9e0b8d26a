package transform

import (
	"testing"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/internal/partition"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createKeyTestRows(t *testing.T, labels []*string) []winnow.Row {
	schema := schema.CreateSchema()
	schema.CreateColumn("label", &winnow.VarStringColumnType{})
	part := partition.CreateBuildablePartition(len(labels), schema, schema)
	tempRow := partition.CreateTempRow()
	rows := make([]winnow.Row, len(labels))
	for i, label := range labels {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		if label != nil {
			require.Nil(t, row.SetVarString("label", *label))
		} else {
			require.Nil(t, row.SetNil("label"))
		}
		rows[i] = part.GetRow(i)
	}
	return rows
}

func TestKeyColumns(t *testing.T) {
	a := "a"
	b := "b"
	rows := createKeyTestRows(t, []*string{&a, &a, &b, nil})
	kfn := KeyColumns("label")

	keys := make([][]byte, len(rows))
	for i, row := range rows {
		key, err := kfn(row)
		require.Nil(t, err)
		keys[i] = key
	}
	require.Equal(t, keys[0], keys[1])
	require.NotEqual(t, keys[0], keys[2])
	require.NotEqual(t, keys[0], keys[3])
	require.NotEqual(t, keys[2], keys[3])
}

func TestKeyColumnsNilSentinel(t *testing.T) {
	// a literal NUL string value must not key with a nil value
	nulString := "\x00"
	rows := createKeyTestRows(t, []*string{&nulString, nil, nil})
	kfn := KeyColumns("label")

	nulKey, err := kfn(rows[0])
	require.Nil(t, err)
	nilKey, err := kfn(rows[1])
	require.Nil(t, err)
	otherNilKey, err := kfn(rows[2])
	require.Nil(t, err)
	require.NotEqual(t, nulKey, nilKey)
	require.Equal(t, nilKey, otherNilKey)
}

func TestKeyColumnsMissingColumn(t *testing.T) {
	a := "a"
	rows := createKeyTestRows(t, []*string{&a})
	_, err := KeyColumns("height")(rows[0])
	require.NotNil(t, err)
}
