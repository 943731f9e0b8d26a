package partition

import (
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-winnow/winnow"
	"github.com/hashicorp/go-multierror"
)

// KeyRows generates hash keys for a row from a key column. Attempts to manipulate partition in-place, falling back to creating a fresh partition if there are row errors
func (p *partitionImpl) KeyRows(kfn winnow.KeyingOperation) (winnow.OperablePartition, error) {
	var multierr *multierror.Error
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	result.isKeyed = false // clear keyed status if there was one
	result.keys = make([]uint64, p.maxRows)
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		row := p.getRow(tempRow, i)
		keyBuf, err := kfn(row)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			if inPlace {
				inPlace = false
				// switch into building a fresh keyed Partition
				fresh := createPartitionImpl(p.maxRows, p.widestSchema, p.currentSchema)
				fresh.isKeyed = true
				fresh.keys = make([]uint64, p.maxRows)
				// append all rows we've successfully keyed so far (up to this one)
				for j := 0; j < i; j++ {
					err := fresh.AppendKeyedRowData(p.GetRowData(j), p.GetRowMeta(j), p.GetVarRowData(j), p.GetSerializedVarRowData(j), p.keys[j])
					if err != nil {
						return nil, err
					}
				}
				result = fresh
			}
		} else if inPlace {
			result.keys[i] = xxhash.Sum64(keyBuf)
		} else {
			err := result.AppendKeyedRowData(p.GetRowData(i), p.GetRowMeta(i), p.GetVarRowData(i), p.GetSerializedVarRowData(i), xxhash.Sum64(keyBuf))
			if err != nil {
				return nil, err
			}
		}
	}
	result.isKeyed = true
	return result, multierr.ErrorOrNil()
}
