package partition

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"math"
	"testing"
	"time"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func TestGetUint64(t *testing.T) {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("col1", &winnow.Uint64ColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema: schema,
		data:   make([]byte, 16),
		meta:   make([]byte, 1),
	}
	binary.LittleEndian.PutUint64(row.data, math.MaxUint64)
	data, err := row.GetUint64("col1")
	require.Nil(t, err)
	if data != math.MaxUint64 {
		t.FailNow()
	}
}

func TestGetSetUint8(t *testing.T) {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("col1", &winnow.Uint8ColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema: schema,
		data:   make([]byte, 4),
		meta:   make([]byte, 1),
	}
	for i := uint8(0); i < uint8(255); i++ {
		require.Nil(t, row.SetUint8("col1", i))
		v, err := row.GetUint8("col1")
		require.Nil(t, err)
		require.Equal(t, i, v)
	}
}

func TestGetSetFloat64(t *testing.T) {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("col1", &winnow.Float64ColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema: schema,
		data:   make([]byte, 16),
		meta:   make([]byte, 1),
	}
	require.Nil(t, row.SetFloat64("col1", -12.75))
	v, err := row.GetFloat64("col1")
	require.Nil(t, err)
	require.Equal(t, -12.75, v)
}

func TestTime(t *testing.T) {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("col1", &winnow.TimeColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema: schema,
		data:   make([]byte, 15),
		meta:   make([]byte, 1),
	}
	v := time.Now()
	err = row.SetTime("col1", v)
	require.Nil(t, err)
	v2, err := row.GetTime("col1")
	require.Nil(t, err)
	require.EqualValues(t, v.UnixNano(), v2.UnixNano())
}

func TestNilValues(t *testing.T) {
	schema := schema.CreateSchema()
	_, err := schema.CreateColumn("fixed", &winnow.Int32ColumnType{})
	require.Nil(t, err)
	_, err = schema.CreateColumn("variable", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema:            schema,
		data:              make([]byte, 16),
		varData:           make(map[string]interface{}),
		serializedVarData: make(map[string][]byte),
		meta:              make([]byte, 2),
	}
	// fixed-length columns start off non-nil, variable-length columns nil
	require.False(t, row.IsNil("fixed"))
	require.True(t, row.IsNil("variable"))
	require.Nil(t, row.SetNil("fixed"))
	require.True(t, row.IsNil("fixed"))
	_, err = row.GetInt32("fixed")
	require.NotNil(t, err)
	// setting a value clears the nil flag
	require.Nil(t, row.SetInt32("fixed", 42))
	require.False(t, row.IsNil("fixed"))
	require.Nil(t, row.SetVarString("variable", "hi"))
	require.False(t, row.IsNil("variable"))
}

func TestRepackRow(t *testing.T) {
	oldSchema := schema.CreateSchema()
	oldSchema.CreateColumn("col1", &winnow.Uint8ColumnType{})
	oldSchema.CreateColumn("col2", &winnow.Uint8ColumnType{})
	row := rowImpl{
		schema:            oldSchema,
		data:              make([]byte, 16),
		varData:           make(map[string]interface{}),
		serializedVarData: make(map[string][]byte),
		meta:              make([]byte, 2),
	}
	require.Nil(t, row.SetUint8("col1", 7))
	require.Nil(t, row.SetUint8("col2", 9))
	newSchema, _ := oldSchema.Clone().RemoveColumn("col1")
	newSchema = newSchema.Repack()
	newRow, err := row.Repack(newSchema)
	require.Nil(t, err)
	_, err = newRow.GetUint8("col1")
	require.NotNil(t, err)
	v, err := newRow.GetUint8("col2")
	require.Nil(t, err)
	require.Equal(t, uint8(9), v)
}

func TestDeserialization(t *testing.T) {
	// When a Partition returns from a cache or shuffle, all variable-length data
	// is Gob-encoded and deserialized on-demand.
	serialized := make(map[string][]byte)
	b := new(bytes.Buffer)
	e := gob.NewEncoder(b)
	err := e.Encode("world")
	serialized["hello"] = b.Bytes()
	require.Nil(t, err)
	schema := schema.CreateSchema()
	_, err = schema.CreateColumn("hello", &winnow.VarStringColumnType{})
	require.Nil(t, err)
	row := rowImpl{
		schema:            schema,
		data:              make([]byte, 16),
		varData:           make(map[string]interface{}),
		serializedVarData: serialized,
		meta:              make([]byte, 1),
	}
	val, err := row.GetVarString("hello")
	require.Nil(t, err)
	require.Equal(t, "world", val)
}
