package transform

import (
	"bytes"
	"fmt"

	"github.com/go-winnow/winnow"
)

// KeyColumns produces a KeyingOperation which keys each Row by the values of
// the named columns. Nil column values key under a shared nil sentinel, so
// Rows missing the same columns group together.
func KeyColumns(names ...string) winnow.KeyingOperation {
	return func(row winnow.Row) ([]byte, error) {
		var key bytes.Buffer
		for _, name := range names {
			if row.IsNil(name) {
				key.WriteByte(0x00)
				key.WriteByte(0x1f)
				continue
			}
			val, err := row.Get(name)
			if err != nil {
				return nil, err
			}
			// cells carry a leading marker byte, so a nil cell can never
			// collide with a real value
			key.WriteByte(0x01)
			fmt.Fprintf(&key, "%v", val)
			key.WriteByte(0x1f)
		}
		return key.Bytes(), nil
	}
}
