package winnow

// A Schema maps column names to typed byte offsets within a Row. Columns
// can be defined, renamed and marked for removal, with Repack producing a
// compacted Schema once removals are complete.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	RowWidth() int // the exact byte width of a row's fixed-length data, without padding
	Size() int     // the padded byte width allocated for each row
	NumColumns() int
	NumFixedLengthColumns() int
	NumVariableLengthColumns() int
	NumRemovedColumns() int
	Repack() (newSchema Schema)
	GetOffset(colName string) (offset Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	RemoveColumn(colName string) (newSchema Schema, wasRemoved bool)
	IsMarkedForRemoval(colName string) bool
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error
}
