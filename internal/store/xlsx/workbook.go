// Package xlsx stores records as worksheets of an Excel workbook. Each
// record is a copy of the template worksheet named after the record key.
package xlsx

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/materials-commons/mcsqa/internal/store"
)

// Workbook is a store backed by a single .xlsx file. Changes are made to the
// workbook in memory and written to disk by Finalize.
type Workbook struct {
	path string

	mu   sync.Mutex
	file *excelize.File
}

var (
	_ store.Store     = (*Workbook)(nil)
	_ store.Reader    = (*Workbook)(nil)
	_ store.Finalizer = (*Workbook)(nil)
	_ store.Locator   = (*Workbook)(nil)
)

// Open opens an existing workbook.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening workbook %s", path)
	}
	return &Workbook{path: path, file: f}, nil
}

// Close releases the workbook. Anything not yet finalized is lost.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// Path is the file the workbook is saved to.
func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) ListRegionNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap(store.OpList, "", "", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.GetSheetList(), nil
}

// DuplicateRegion adds a worksheet called name and copies the template
// worksheet into it. The new worksheet is removed again if the copy fails.
func (w *Workbook) DuplicateRegion(ctx context.Context, template, name string) (store.Region, error) {
	if err := ctx.Err(); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	from, err := w.sheetIndex(template)
	if err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", errors.Wrap(err, "template"))
	}
	if existing, _ := w.file.GetSheetIndex(name); existing != -1 {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", fmt.Errorf("worksheet '%s' already exists", name))
	}

	to, err := w.file.NewSheet(name)
	if err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	if err := w.file.CopySheet(from, to); err != nil {
		_ = w.file.DeleteSheet(name)
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	return store.Region{Name: name}, nil
}

func (w *Workbook) WriteCell(_ context.Context, region store.Region, coord store.Coordinate, value interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.sheetIndex(region.Name); err != nil {
		return store.Wrap(store.OpWrite, region.Name, coord, err)
	}
	if err := w.file.SetCellValue(region.Name, string(coord), value); err != nil {
		return store.Wrap(store.OpWrite, region.Name, coord, err)
	}
	return nil
}

func (w *Workbook) DeleteRegion(_ context.Context, region store.Region) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.sheetIndex(region.Name); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	if err := w.file.DeleteSheet(region.Name); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	return nil
}

// ReadCell returns the raw stored value of a cell, so numbers come back
// unformatted ("0.5" rather than whatever the cell's number format shows).
func (w *Workbook) ReadCell(_ context.Context, region store.Region, coord store.Coordinate) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.sheetIndex(region.Name); err != nil {
		return "", store.Wrap(store.OpRead, region.Name, coord, err)
	}
	value, err := w.file.GetCellValue(region.Name, string(coord), excelize.Options{RawCellValue: true})
	if err != nil {
		return "", store.Wrap(store.OpRead, region.Name, coord, err)
	}
	return value, nil
}

// Finalize saves the workbook. A record only exists on disk once this
// returns without error.
func (w *Workbook) Finalize(ctx context.Context, region store.Region) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(store.OpFinalize, region.Name, "", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(w.path); err != nil {
		return store.Wrap(store.OpFinalize, region.Name, "", err)
	}
	return nil
}

// Location is the workbook path and worksheet, "records.xlsx#2024-03-05-SN42-Lab".
func (w *Workbook) Location(region store.Region) string {
	return fmt.Sprintf("%s#%s", w.path, region.Name)
}

func (w *Workbook) sheetIndex(name string) (int, error) {
	index, err := w.file.GetSheetIndex(name)
	if err != nil {
		return -1, err
	}
	if index == -1 {
		return -1, fmt.Errorf("worksheet '%s' not found", name)
	}
	return index, nil
}
