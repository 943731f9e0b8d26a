package errors

import (
	"fmt"
)

// NilValueError occurs when a value in a Row is nil
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// MissingColumnError occurs when an operation references a column which does not exist in the Schema
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// MissingKeyError occurs when a key cannot be located within a keyed Partition
type MissingKeyError struct{}

// Error returns a textual representation of this MissingKeyError
func (e MissingKeyError) Error() string {
	return "Key does not exist in partition"
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct{}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return "Row width is not compatible with Schema"
}

// IncompatibleTypeError occurs when a value cannot be stored in a column because of its ColumnType
type IncompatibleTypeError struct {
	Name    string
	ColType interface{}
	Value   interface{}
}

// Error returns a textual representation of this IncompatibleTypeError
func (e IncompatibleTypeError) Error() string {
	return fmt.Sprintf("Value %#v cannot be stored in column %s of type %T", e.Value, e.Name, e.ColType)
}

// PartitionFullError occurs when a Partition has reached its max size and a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// NotInitializedError occurs when a DataFrame is run without an initialized Session
type NotInitializedError struct{}

// Error returns a textual representation of this NotInitializedError
func (e NotInitializedError) Error() string {
	return "Session not initialized - create one with engine.CreateSession() before running a DataFrame"
}
