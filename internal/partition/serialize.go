package partition

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/go-winnow/winnow"
	itypes "github.com/go-winnow/winnow/internal/types"
	lz4 "github.com/pierrec/lz4"
)

// dPartition is the disk/wire representation of a Partition. Fixed-length
// row data travels as raw bytes, while variable-length data is serialized
// per-column via its VarColumnType.
type dPartition struct {
	ID                   string
	MaxRows              int
	NumRows              int
	IsKeyed              bool
	RowData              []byte
	RowMeta              []byte
	Keys                 []uint64
	SerializedVarRowData []map[string][]byte
}

// ToBytes serializes a Partition to a byte array suitable for persistence to disk
func (p *partitionImpl) ToBytes() ([]byte, error) {
	numRows := p.GetNumRows()
	svrd := make([]map[string][]byte, numRows)
	for i := 0; i < numRows; i++ {
		svrd[i] = make(map[string][]byte)
		for k, v := range p.GetVarRowData(i) {
			if v == nil {
				svrd[i][k] = nil
				continue
			}
			// no need to serialize values for columns we've dropped
			col, err := p.currentSchema.GetOffset(k)
			if err != nil {
				continue
			}
			vcol, ok := col.Type().(winnow.VarColumnType)
			if !ok {
				return nil, fmt.Errorf("Column %s is not a variable-length type", k)
			}
			sdata, err := vcol.Serialize(v)
			if err != nil {
				return nil, err
			}
			svrd[i][k] = sdata
		}
		// transfer not-yet-deserialized data untouched
		for k, v := range p.GetSerializedVarRowData(i) {
			svrd[i][k] = v
		}
	}
	var keys []uint64
	if p.isKeyed {
		keys = p.keys[:numRows]
	}
	dm := &dPartition{
		ID:                   p.id,
		MaxRows:              p.maxRows,
		NumRows:              numRows,
		IsKeyed:              p.isKeyed,
		RowData:              p.rows[:numRows*p.widestSchema.Size()],
		RowMeta:              p.rowMeta[:numRows*p.widestSchema.NumColumns()],
		Keys:                 keys,
		SerializedVarRowData: svrd,
	}
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(dm); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes converts serialized bytes into a Partition. The given Schema must
// match the Schema the Partition was serialized with.
func FromBytes(data []byte, schema winnow.Schema) (itypes.ReduceablePartition, error) {
	m := &dPartition{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(m); err != nil {
		return nil, err
	}
	rows := make([]byte, m.MaxRows*schema.Size())
	copy(rows, m.RowData)
	rowMeta := make([]byte, m.MaxRows*schema.NumColumns())
	copy(rowMeta, m.RowMeta)
	part := &partitionImpl{
		id:                   m.ID,
		maxRows:              m.MaxRows,
		numRows:              m.NumRows,
		rows:                 rows,
		varRowData:           make([]map[string]interface{}, m.MaxRows),
		serializedVarRowData: make([]map[string][]byte, m.MaxRows),
		rowMeta:              rowMeta,
		widestSchema:         schema,
		currentSchema:        schema,
		keys:                 nil,
		isKeyed:              m.IsKeyed,
	}
	for i, row := range m.SerializedVarRowData {
		part.serializedVarRowData[i] = row
	}
	if m.IsKeyed {
		part.keys = make([]uint64, m.MaxRows)
		copy(part.keys, m.Keys)
	}
	return part, nil
}

// LZ4PartitionSerializer compresses and decompresses Partition data with the lz4 algorithm
type LZ4PartitionSerializer struct {
	compressor         *lz4.Writer
	decompressor       *lz4.Reader
	reusableReadBuffer *bytes.Buffer
}

// NewLZ4PartitionSerializer instantiates a new LZ4PartitionSerializer. Not safe for concurrent use.
func NewLZ4PartitionSerializer() winnow.PartitionSerializer {
	return &LZ4PartitionSerializer{
		compressor:         lz4.NewWriter(new(bytes.Buffer)),
		decompressor:       lz4.NewReader(new(bytes.Buffer)),
		reusableReadBuffer: new(bytes.Buffer),
	}
}

// Compress serializes and compresses partition data to a write stream
func (lz4pc *LZ4PartitionSerializer) Compress(w io.Writer, part winnow.Partition) error {
	ipart, ok := part.(itypes.ReduceablePartition)
	if !ok {
		return fmt.Errorf("Partition %s is not serializable", part.ID())
	}
	buff, err := ipart.ToBytes()
	if err != nil {
		return err
	}
	lz4pc.compressor.Reset(w)
	if _, err = lz4pc.compressor.Write(buff); err != nil {
		return err
	}
	return lz4pc.compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4pc *LZ4PartitionSerializer) Decompress(r io.Reader, schema winnow.Schema) (winnow.OperablePartition, error) {
	lz4pc.decompressor.Reset(r)
	lz4pc.reusableReadBuffer.Reset()
	if _, err := lz4pc.reusableReadBuffer.ReadFrom(lz4pc.decompressor); err != nil {
		return nil, err
	}
	return FromBytes(lz4pc.reusableReadBuffer.Bytes(), schema)
}
