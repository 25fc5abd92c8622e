// Package store defines the boundary between the record writer and the
// tabular store that holds the records. A store is a set of named regions
// (worksheets in a workbook, rows of a fixed-schema table) addressed by
// spreadsheet style cell coordinates such as "B12".
//
// The store has no transactions. The writer builds all-or-nothing record
// creation out of DuplicateRegion, WriteCell and DeleteRegion.
package store

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
)

// Coordinate is a cell address in A1 notation, for example "L48".
type Coordinate string

// Region is a handle to a named region returned by DuplicateRegion.
type Region struct {
	Name string
}

// Store is the set of operations the record writer needs. Implementations
// must return *Error for every failure so callers can tell which operation
// and region failed.
type Store interface {
	// ListRegionNames returns the names of all regions, in store order.
	ListRegionNames(ctx context.Context) ([]string, error)

	// DuplicateRegion copies the template region into a new region called name.
	DuplicateRegion(ctx context.Context, template, name string) (Region, error)

	// WriteCell sets a single cell. A nil value clears the cell.
	WriteCell(ctx context.Context, region Region, coord Coordinate, value interface{}) error

	// DeleteRegion removes a region. The writer only uses it to roll back
	// a region it created during the same submission.
	DeleteRegion(ctx context.Context, region Region) error
}

// Reader is implemented by stores that can read cells back. Values are
// returned as their text form, "" for an empty cell.
type Reader interface {
	ReadCell(ctx context.Context, region Region, coord Coordinate) (string, error)
}

// Finalizer is implemented by stores that need an explicit step after
// all cells are written, such as saving a workbook to disk.
type Finalizer interface {
	Finalize(ctx context.Context, region Region) error
}

// Locator is implemented by stores that can describe where a region lives,
// for inclusion in the notification sent after a submission.
type Locator interface {
	Location(region Region) string
}

// Operation names used in Error.Op.
const (
	OpList      = "list"
	OpDuplicate = "duplicate"
	OpWrite     = "write"
	OpRead      = "read"
	OpDelete    = "delete"
	OpFinalize  = "finalize"
)

// Error is a failure at the store boundary along with the operation,
// region and cell it happened on.
type Error struct {
	Op         string
	Region     string
	Coordinate Coordinate
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Coordinate != "":
		return fmt.Sprintf("store %s %s!%s: %s", e.Op, e.Region, e.Coordinate, e.Err)
	case e.Region != "":
		return fmt.Sprintf("store %s %s: %s", e.Op, e.Region, e.Err)
	default:
		return fmt.Sprintf("store %s: %s", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as an *Error. An error that already is an *Error is
// returned unchanged so the context set closest to the failure wins.
func Wrap(op, region string, coord Coordinate, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*Error); ok {
		return se
	}
	return &Error{Op: op, Region: region, Coordinate: coord, Err: err}
}

// NameSet turns a list of region names into a lookup set.
func NameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// FormatValue renders a cell value as text, the way ReadCell returns it.
// nil is "" and floats use the shortest form that reads back the same.
func FormatValue(value interface{}) string {
	return cast.ToString(value)
}
