package dsv

import (
	"strings"
	"testing"

	"github.com/go-winnow/winnow"
	memory "github.com/go-winnow/winnow/datasource/memory"
	"github.com/go-winnow/winnow/schema"
	"github.com/stretchr/testify/require"
)

func TestDSVParser(t *testing.T) {
	schema := schema.CreateSchema()
	schema.CreateColumn("name", &winnow.VarStringColumnType{})
	schema.CreateColumn("age", &winnow.Int64ColumnType{})

	parser := CreateParser(&ParserConf{
		PartitionSize: 128,
		HeaderLines:   1,
		NilValue:      "NA",
	})
	data := [][]byte{
		[]byte("name,age\njane,32\nNA,25\nmarco,NA"),
		[]byte("name,age\nsofia,41"),
	}
	frame := memory.CreateDataFrame(data, parser, schema)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	totalRows := 0
	nilAges := 0
	for pm.HasNext() {
		pl := pm.Next()
		ps, err := pl.Load(parser, schema)
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, _, err := ps.NextPartition()
			require.Nil(t, err)
			totalRows += part.GetNumRows()
			for i := 0; i < part.GetNumRows(); i++ {
				if part.GetRow(i).IsNil("age") {
					nilAges++
				}
			}
		}
	}
	require.False(t, pm.HasNext())
	require.Equal(t, 4, totalRows)
	require.Equal(t, 1, nilAges)
}

func TestDSVParserCustomDelimiter(t *testing.T) {
	schema := schema.CreateSchema()
	schema.CreateColumn("a", &winnow.Int64ColumnType{})
	schema.CreateColumn("b", &winnow.Float64ColumnType{})

	parser := CreateParser(&ParserConf{
		PartitionSize: 4,
		Delimiter:     '\t',
		Comment:       '#',
	})
	data := [][]byte{
		[]byte("# a comment\n1\t1.5\n2\t2.5\n3\t3.5\n4\t4.5\n5\t5.5"),
	}
	frame := memory.CreateDataFrame(data, parser, schema)

	pm, err := frame.GetDataSource().Analyze()
	require.Nil(t, err)
	numPartitions := 0
	totalRows := 0
	for pm.HasNext() {
		ps, err := pm.Next().Load(parser, schema)
		require.Nil(t, err)
		for ps.HasNextPartition() {
			part, _, err := ps.NextPartition()
			require.Nil(t, err)
			if part.GetNumRows() > 0 {
				numPartitions++
			}
			totalRows += part.GetNumRows()
		}
	}
	require.Equal(t, 5, totalRows)
	require.Equal(t, 2, numPartitions)
}

func TestInferSchema(t *testing.T) {
	data := strings.Join([]string{
		"id,score,name,active,joined,blank",
		"1,4.5,jane,true,2020-01-15,NA",
		"2,3.25,marco,false,2020-02-20,NA",
		"3,NA,NA,true,2020-03-25,NA",
	}, "\n")
	inferred, err := InferSchema(strings.NewReader(data), &InferConf{
		HeaderLines: 1,
		NilValue:    "NA",
	})
	require.Nil(t, err)
	require.Equal(t, 6, inferred.NumColumns())

	col, err := inferred.GetOffset("id")
	require.Nil(t, err)
	require.IsType(t, &winnow.Int64ColumnType{}, col.Type())

	col, err = inferred.GetOffset("score")
	require.Nil(t, err)
	require.IsType(t, &winnow.Float64ColumnType{}, col.Type())

	col, err = inferred.GetOffset("name")
	require.Nil(t, err)
	require.IsType(t, &winnow.VarStringColumnType{}, col.Type())

	col, err = inferred.GetOffset("active")
	require.Nil(t, err)
	require.IsType(t, &winnow.BoolColumnType{}, col.Type())

	col, err = inferred.GetOffset("joined")
	require.Nil(t, err)
	require.IsType(t, &winnow.TimeColumnType{}, col.Type())

	// columns with no non-nil samples fall back to strings
	col, err = inferred.GetOffset("blank")
	require.Nil(t, err)
	require.IsType(t, &winnow.VarStringColumnType{}, col.Type())
}

func TestInferSchemaMixedValues(t *testing.T) {
	// a bool followed by a number cannot be either - only a string fits both
	data := "true\n2\n"
	inferred, err := InferSchema(strings.NewReader(data), nil)
	require.Nil(t, err)
	col, err := inferred.GetOffset("col0")
	require.Nil(t, err)
	require.IsType(t, &winnow.VarStringColumnType{}, col.Type())

	// ints widen to floats
	data = "1\n2.5\n"
	inferred, err = InferSchema(strings.NewReader(data), nil)
	require.Nil(t, err)
	col, err = inferred.GetOffset("col0")
	require.Nil(t, err)
	require.IsType(t, &winnow.Float64ColumnType{}, col.Type())
}

func TestInferSchemaGeneratedNames(t *testing.T) {
	inferred, err := InferSchema(strings.NewReader("1,2\n3,4"), nil)
	require.Nil(t, err)
	require.True(t, inferred.HasColumn("col0"))
	require.True(t, inferred.HasColumn("col1"))
}
