package partition

import (
	"log"

	uuid "github.com/gofrs/uuid"
	"github.com/go-winnow/winnow"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// partitionImpl is Winnow's internal implementation of Partition. Row data is
// allocated according to the widest Schema the Partition will encounter during
// its Stage, while the current Schema interprets a prefix of each Row.
type partitionImpl struct {
	id                   string
	maxRows              int
	numRows              int
	rows                 []byte
	varRowData           []map[string]interface{}
	serializedVarRowData []map[string][]byte // for receiving serialized data from a cache or shuffle (temporary)
	rowMeta              []byte
	widestSchema         winnow.Schema
	currentSchema        winnow.Schema
	keys                 []uint64
	isKeyed              bool
}

// createPartitionImpl creates a new Partition containing an empty byte array and a schema
func createPartitionImpl(maxRows int, widestSchema winnow.Schema, currentSchema winnow.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return &partitionImpl{
		id:                   id.String(),
		maxRows:              maxRows,
		numRows:              0,
		rows:                 make([]byte, maxRows*widestSchema.Size()),
		varRowData:           make([]map[string]interface{}, maxRows),
		serializedVarRowData: make([]map[string][]byte, maxRows),
		rowMeta:              make([]byte, maxRows*widestSchema.NumColumns()),
		widestSchema:         widestSchema,
		currentSchema:        currentSchema,
		keys:                 nil,
		isKeyed:              false,
	}
}

// CreatePartition creates a new Partition containing an empty byte array and a schema
func CreatePartition(maxRows int, widestSchema winnow.Schema, currentSchema winnow.Schema) winnow.Partition {
	return createPartitionImpl(maxRows, widestSchema, currentSchema)
}

// CreateBuildablePartition creates a new Partition suitable for DataSources and Parsers
func CreateBuildablePartition(maxRows int, widestSchema winnow.Schema, currentSchema winnow.Schema) winnow.BuildablePartition {
	return createPartitionImpl(maxRows, widestSchema, currentSchema)
}

// CreateReduceablePartition creates a new Partition exposing raw row data
func CreateReduceablePartition(maxRows int, widestSchema winnow.Schema, currentSchema winnow.Schema) itypes.ReduceablePartition {
	return createPartitionImpl(maxRows, widestSchema, currentSchema)
}

// CreateKeyedReduceablePartition creates a new keyed Partition exposing raw row data
func CreateKeyedReduceablePartition(maxRows int, widestSchema winnow.Schema, currentSchema winnow.Schema) itypes.ReduceablePartition {
	part := createPartitionImpl(maxRows, widestSchema, currentSchema)
	part.isKeyed = true
	part.keys = make([]uint64, maxRows)
	return part
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return p.numRows
}

// getRow populates a reusable Row struct with the data for a specific row, without allocation
func (p *partitionImpl) getRow(row *rowImpl, rowNum int) winnow.Row {
	row.partID = p.id
	row.meta = p.GetRowMeta(rowNum)
	row.data = p.GetRowData(rowNum)
	row.varData = p.GetVarRowData(rowNum)
	row.serializedVarData = p.GetSerializedVarRowData(rowNum)
	row.schema = p.currentSchema
	return row
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) winnow.Row {
	return &rowImpl{
		partID:            p.id,
		meta:              p.GetRowMeta(rowNum),
		data:              p.GetRowData(rowNum),
		varData:           p.GetVarRowData(rowNum),
		serializedVarData: p.GetSerializedVarRowData(rowNum),
		schema:            p.currentSchema,
	}
}

// GetRowData retrieves the fixed-length data for a specific row
func (p *partitionImpl) GetRowData(rowNum int) []byte {
	return p.rows[rowNum*p.widestSchema.Size() : (rowNum+1)*p.widestSchema.Size()]
}

// GetRowMeta retrieves the meta bytes (nil flags) for a specific row
func (p *partitionImpl) GetRowMeta(rowNum int) []byte {
	return p.rowMeta[rowNum*p.widestSchema.NumColumns() : (rowNum+1)*p.widestSchema.NumColumns()]
}

// GetVarRowData retrieves the variable-length data for a specific row
func (p *partitionImpl) GetVarRowData(rowNum int) map[string]interface{} {
	if p.varRowData[rowNum] == nil {
		p.varRowData[rowNum] = make(map[string]interface{})
	}
	return p.varRowData[rowNum]
}

// GetSerializedVarRowData retrieves the serialized variable-length data for a specific row
func (p *partitionImpl) GetSerializedVarRowData(rowNum int) map[string][]byte {
	if p.serializedVarRowData[rowNum] == nil {
		p.serializedVarRowData[rowNum] = make(map[string][]byte)
	}
	return p.serializedVarRowData[rowNum]
}

// GetSchema retrieves the current Schema of this Partition
func (p *partitionImpl) GetSchema() winnow.Schema {
	return p.currentSchema
}

// GetIsKeyed returns true iff this Partition has been keyed
func (p *partitionImpl) GetIsKeyed() bool {
	return p.isKeyed
}

// GetKey returns the shuffle key for a specific row
func (p *partitionImpl) GetKey(rowNum int) (uint64, error) {
	if !p.isKeyed {
		return 0, errNotKeyed()
	}
	return p.keys[rowNum], nil
}

// UpdateSchema sets the current schema of this Partition
func (p *partitionImpl) UpdateSchema(currentSchema winnow.Schema) {
	p.currentSchema = currentSchema
}
