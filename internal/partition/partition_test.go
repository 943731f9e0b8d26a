package partition

import (
	"bytes"
	"testing"

	"github.com/go-winnow/winnow"
	errors "github.com/go-winnow/winnow/errors"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() winnow.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &winnow.Uint8ColumnType{})
	return schema
}

func TestCreatePartitionImpl(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema, schema)
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.Nil(t, part.CanInsertRowData(make([]byte, 1)))
	require.NotNil(t, part.CanInsertRowData(make([]byte, 18))) // rows are padded to at least 16bytes
	require.False(t, part.GetIsKeyed())
}

func TestAppendRowData(t *testing.T) {
	// make partition
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema, schema)
	require.Equal(t, part.GetNumRows(), 0)
	r := []byte{byte(uint8(1))}
	// append and validate row
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	val, err := part.GetRow(0).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(1))
	// append and validate another row
	r = []byte{byte(uint8(2))}
	err = part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 2)
	val, err = part.GetRow(1).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(2))
}

func TestInsertRowData(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// append and validate row
	r := []byte{byte(uint8(1))}
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	val, err := part.GetRow(0).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(1))
	// insert and validate row
	r = []byte{byte(uint8(2))}
	err = part.InsertRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte), 0)
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 2)
	val, err = part.GetRow(0).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(2))
	val, err = part.GetRow(1).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(1))
}

func TestPartitionFullError(t *testing.T) {
	// create partition with max 1 row
	schema := createPartitionTestSchema()
	part := createPartitionImpl(1, schema, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// append and validate row
	r := []byte{byte(uint8(1))}
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	// attempt to append row again
	err = part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.NotNil(t, err)
	_, ok := err.(errors.PartitionFullError)
	require.True(t, ok)
}

func TestIncompatibleRowError(t *testing.T) {
	// create partition with max 1 row
	schema := createPartitionTestSchema()
	part := createPartitionImpl(1, schema, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// attempt to append incompatible row (because of padding, we have to actually exceed 16 bytes)
	r := make([]byte, 17)
	r[0] = 1
	r[1] = 2
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.NotNil(t, err)
	_, ok := err.(errors.IncompatibleRowError)
	require.True(t, ok)
}

func TestMapRows(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// append rows
	for i := 0; i < 4; i++ {
		r := []byte{byte(uint8(i))}
		err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
		require.Nil(t, err)
	}
	sum := 0
	_, err := part.MapRows(func(row winnow.Row) error {
		val, err := row.GetUint8("col1")
		sum += int(val)
		return err
	})
	require.Nil(t, err)
	require.Equal(t, sum, 6)
}

func TestFilterRows(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(8, schema, schema)
	for i := 0; i < 8; i++ {
		r := []byte{byte(uint8(i))}
		err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
		require.Nil(t, err)
	}
	// keep even values only
	result, err := part.FilterRows(func(row winnow.Row) (bool, error) {
		val, err := row.GetUint8("col1")
		if err != nil {
			return false, err
		}
		return val%2 == 0, nil
	})
	require.Nil(t, err)
	require.Equal(t, 4, result.GetNumRows())
	for i := 0; i < result.GetNumRows(); i++ {
		val, err := result.GetRow(i).GetUint8("col1")
		require.Nil(t, err)
		require.Equal(t, uint8(i*2), val)
	}
}

func TestKeyRows(t *testing.T) {
	// create partition
	schema := createPartitionTestSchema()
	part := createPartitionImpl(8, schema, schema)
	// append rows
	for i := 0; i < 7; i++ {
		r := []byte{uint8(i)}
		meta := []byte{0}
		err := part.AppendRowData(r, meta, make(map[string]interface{}), make(map[string][]byte))
		require.Nil(t, err)
	}
	// add in a single duplicate row for good measure.
	err := part.AppendRowData([]byte{6}, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	// shouldn't be able to get keys before we key a partition
	_, err = part.GetKey(0)
	require.NotNil(t, err)
	// key rows
	_, err = part.KeyRows(func(row winnow.Row) ([]byte, error) {
		val, err := row.GetUint8("col1")
		if err != nil {
			return nil, err
		}
		return []byte{byte(val)}, nil
	})
	require.Nil(t, err)
	require.True(t, part.GetIsKeyed())
	// compare keys for identical rows
	key1, err := part.GetKey(6)
	require.Nil(t, err)
	key2, err := part.GetKey(7)
	require.Nil(t, err)
	require.EqualValues(t, key1, key2)
	// distinct rows hash to distinct keys
	key3, err := part.GetKey(0)
	require.Nil(t, err)
	require.NotEqual(t, key1, key3)
}

func TestRepackPartition(t *testing.T) {
	wschema := schema.CreateSchema()
	wschema.CreateColumn("col1", &winnow.Uint8ColumnType{})
	wschema.CreateColumn("col2", &winnow.Uint8ColumnType{})
	part := createPartitionImpl(4, wschema, wschema)
	for i := 0; i < 4; i++ {
		r := []byte{uint8(i), uint8(i * 2)}
		err := part.AppendRowData(r, []byte{0, 0}, make(map[string]interface{}), make(map[string][]byte))
		require.Nil(t, err)
	}
	// drop col1 and repack
	newSchema, wasRemoved := wschema.Clone().RemoveColumn("col1")
	require.True(t, wasRemoved)
	newSchema = newSchema.Repack()
	result, err := part.Repack(newSchema)
	require.Nil(t, err)
	require.Equal(t, 4, result.GetNumRows())
	for i := 0; i < result.GetNumRows(); i++ {
		row := result.GetRow(i)
		_, err := row.GetUint8("col1")
		require.NotNil(t, err)
		val, err := row.GetUint8("col2")
		require.Nil(t, err)
		require.Equal(t, uint8(i*2), val)
	}
}

func TestToBytesRoundTrip(t *testing.T) {
	wschema := schema.CreateSchema()
	wschema.CreateColumn("fixed", &winnow.Uint8ColumnType{})
	wschema.CreateColumn("name", &winnow.VarStringColumnType{})
	part := createPartitionImpl(4, wschema, wschema)
	tempRow := CreateTempRow()
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("fixed", uint8(i)))
		require.Nil(t, row.SetVarString("name", "row"))
	}
	// set a nil value to confirm meta bytes survive
	require.Nil(t, part.GetRow(1).SetNil("fixed"))
	buff, err := part.ToBytes()
	require.Nil(t, err)
	rebuilt, err := FromBytes(buff, wschema)
	require.Nil(t, err)
	require.Equal(t, part.ID(), rebuilt.ID())
	require.Equal(t, 3, rebuilt.GetNumRows())
	require.True(t, rebuilt.GetRow(1).IsNil("fixed"))
	val, err := rebuilt.GetRow(2).GetUint8("fixed")
	require.Nil(t, err)
	require.Equal(t, uint8(2), val)
	name, err := rebuilt.GetRow(0).GetVarString("name")
	require.Nil(t, err)
	require.Equal(t, "row", name)
}

func TestLZ4PartitionSerializer(t *testing.T) {
	wschema := schema.CreateSchema()
	wschema.CreateColumn("col1", &winnow.Uint32ColumnType{})
	part := createPartitionImpl(8, wschema, wschema)
	tempRow := CreateTempRow()
	for i := 0; i < 8; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint32("col1", uint32(i*100)))
	}
	serializer := NewLZ4PartitionSerializer()
	var buff bytes.Buffer
	require.Nil(t, serializer.Compress(&buff, part))
	rebuilt, err := serializer.Decompress(&buff, wschema)
	require.Nil(t, err)
	require.Equal(t, 8, rebuilt.GetNumRows())
	val, err := rebuilt.GetRow(7).GetUint32("col1")
	require.Nil(t, err)
	require.Equal(t, uint32(700), val)
}
