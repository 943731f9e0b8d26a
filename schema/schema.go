package schema

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-winnow/winnow"
	"github.com/go-winnow/winnow/errors"
)

// column describes the byte offsets of the start
// and end of a field in a Row.
type column struct {
	idx     int
	start   int
	colType winnow.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() winnow.Column {
	return &column{c.idx, c.start, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Start returns the Start position of this Column within a Row
func (c *column) Start() int {
	return c.start
}

// Type returns the ColumnType of this Column
func (c *column) Type() winnow.ColumnType {
	return c.colType
}

// schema is a mapping from column names to byte offsets
// within a Row. It allows one to obtain offsets by name,
// define new columns, remove columns, etc.
type schema struct {
	columns map[string]winnow.Column
	removed map[string]bool
	width   int
}

// CreateSchema is a factory for Schemas
func CreateSchema() winnow.Schema {
	return &schema{
		columns: make(map[string]winnow.Column),
		removed: make(map[string]bool),
		width:   0,
	}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema winnow.Schema) error {
	if s.Size() != otherSchema.Size() {
		return fmt.Errorf("Schemas have unequal sizes")
	}
	if s.NumFixedLengthColumns() != otherSchema.NumFixedLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of fixed-length columns")
	}
	if s.NumVariableLengthColumns() != otherSchema.NumVariableLengthColumns() {
		return fmt.Errorf("Schemas have unequal numbers of variable-length columns")
	}
	return s.ForEachColumn(func(name string, col winnow.Column) error {
		otherCol, err := otherSchema.GetOffset(name)
		if err != nil {
			return err
		}
		if col.Start() != otherCol.Start() {
			return fmt.Errorf("Column %s offsets do not match", name)
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		if col.Type().Size() != otherCol.Type().Size() {
			return fmt.Errorf("Column %s type sizes do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() winnow.Schema {
	columns := make(map[string]winnow.Column, len(s.columns))
	for k, v := range s.columns {
		columns[k] = v.Clone()
	}
	removed := make(map[string]bool, len(s.removed))
	for k, v := range s.removed {
		removed[k] = v
	}
	return &schema{columns: columns, removed: removed, width: s.width}
}

// RowWidth returns the current byte size of a Row respecting this Schema, without padding
func (s *schema) RowWidth() int {
	return s.width
}

// Size returns the current byte size of a Row respecting this Schema, padded so rows fit neatly into 64 bit chunks
func (s *schema) Size() int {
	switch {
	case s.width < 16:
		return 16
	case s.width < 32:
		return 32
	case s.width < 64:
		return 64
	case s.width%64 != 0:
		return ((s.width / 64) + 1) * 64
	default:
		return s.width
	}
}

// NumColumns returns the number of columns (fixed-length and variable-length) in this Schema
func (s *schema) NumColumns() int {
	return len(s.columns)
}

// NumFixedLengthColumns returns the number of fixed-length columns in this Schema
func (s *schema) NumFixedLengthColumns() int {
	i := 0
	for _, col := range s.columns {
		if !winnow.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// NumVariableLengthColumns returns the number of variable-length columns in this Schema
func (s *schema) NumVariableLengthColumns() int {
	i := 0
	for _, col := range s.columns {
		if winnow.IsVariableLength(col.Type()) {
			i++
		}
	}
	return i
}

// NumRemovedColumns returns the number of columns marked for removal in this Schema
func (s *schema) NumRemovedColumns() int {
	return len(s.removed)
}

// Repack optimizes the memory layout of the Schema, dropping columns marked
// for removal and removing any gaps in fixed-length data
func (s *schema) Repack() (newSchema winnow.Schema) {
	// we need the surviving column names in index order
	names := make([]string, 0, len(s.columns)-len(s.removed))
	for k := range s.columns {
		if !s.removed[k] {
			names = append(names, k)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return s.columns[names[i]].Index() < s.columns[names[j]].Index()
	})
	// re-insert into a fresh schema in original index order
	newSchema = CreateSchema()
	for _, name := range names {
		newSchema, _ = newSchema.CreateColumn(name, s.columns[name].Type())
	}
	return
}

// GetOffset returns the byte offset of a particular column within a row
func (s *schema) GetOffset(colName string) (offset winnow.Column, err error) {
	offset, ok := s.columns[colName]
	if !ok {
		err = errors.MissingColumnError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.columns[colName]
	return ok
}

// CreateColumn defines a new column within the Schema
func (s *schema) CreateColumn(colName string, columnType winnow.ColumnType) (newSchema winnow.Schema, err error) {
	if _, exists := s.columns[colName]; exists {
		return nil, fmt.Errorf("Schema already contains column with name %s", colName)
	}
	if !winnow.IsVariableLength(columnType) {
		s.columns[colName] = &column{len(s.columns), s.width, columnType}
		s.width += columnType.Size()
	} else {
		s.columns[colName] = &column{len(s.columns), 0, columnType}
	}
	return s, nil
}

// RenameColumn renames a column within the Schema
func (s *schema) RenameColumn(oldName string, newName string) (newSchema winnow.Schema, err error) {
	if s.IsMarkedForRemoval(oldName) {
		return nil, fmt.Errorf("Cannot rename removed column %s", oldName)
	}
	if _, err = s.GetOffset(oldName); err != nil {
		return nil, err
	}
	s.columns[newName] = s.columns[oldName]
	delete(s.columns, oldName)
	return s, nil
}

// RemoveColumn marks a column for removal from the Schema, at a convenient time.
// This does not alter the schema, other than to mark the column for later removal
func (s *schema) RemoveColumn(colName string) (winnow.Schema, bool) {
	if _, exists := s.columns[colName]; !exists {
		panic(errors.MissingColumnError{Name: colName})
	}
	s.removed[colName] = true
	return s, true
}

// IsMarkedForRemoval returns true iff the given column has been marked for removal
func (s *schema) IsMarkedForRemoval(colName string) bool {
	_, marked := s.removed[colName]
	return marked
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for k, v := range s.columns {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []winnow.ColumnType {
	types := make([]winnow.ColumnType, len(s.columns))
	for _, v := range s.columns {
		types[v.Index()] = v.Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema. Does not necessarily iterate in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col winnow.Column) error) error {
	for k, v := range s.columns {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
