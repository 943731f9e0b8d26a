// Package file provides a DataSource which reads data from files on disk,
// located via a glob pattern. Files are parsed in their entirety, so it is
// favourable if individual files represent roughly equal-sized divisions of
// data.
package file
