// Package export serializes the canonical dataset and the flat review rows.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fengshan-hs/timetable/core/model"
	"github.com/fengshan-hs/timetable/core/tabular"
)

// utf8BOM lets spreadsheet tools detect the encoding of the CSV export.
const utf8BOM = "\ufeff"

// WriteJSON writes ds to w as two-space indented UTF-8 JSON without HTML
// escaping.
func WriteJSON(w io.Writer, ds model.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ds)
}

// ReadJSON decodes a dataset written by WriteJSON.
func ReadJSON(r io.Reader) (model.Dataset, error) {
	var ds model.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

// WriteCSV writes the review rows to w with the review sheet header.
func WriteCSV(w io.Writer, rows []tabular.ReviewRow) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(tabular.ReviewHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile runs write against a temporary file next to path and renames it
// into place only when write succeeds.
func WriteFile(path string, write func(io.Writer) error) error {
	p, err := Stage(path, write)
	if err != nil {
		return err
	}
	return p.Commit()
}

// Pending is an output written to a temporary file and not yet moved to its
// final path.
type Pending struct {
	tmp  string
	path string
	done bool
}

// Stage writes through write into a temporary file next to path without
// touching path itself.
func Stage(path string, write func(io.Writer) error) (*Pending, error) {
	return StageFile(path, func(tmp string) (err error) {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		return write(f)
	})
}

// StageFile is Stage for writers that need a file name, such as workbook
// libraries that save by path.
func StageFile(path string, write func(tmp string) error) (*Pending, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Keep the extension: some writers pick the format from it.
	base, ext := filepath.Base(path), filepath.Ext(path)
	f, err := os.CreateTemp(dir, "."+strings.TrimSuffix(base, ext)+".*"+ext)
	if err != nil {
		return nil, err
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return &Pending{tmp: tmp, path: path}, nil
}

// Commit renames the staged file into place.
func (p *Pending) Commit() error {
	if p.done {
		return nil
	}
	p.done = true
	if err := os.Rename(p.tmp, p.path); err != nil {
		_ = os.Remove(p.tmp)
		return err
	}
	return nil
}

// Discard removes the staged file unless it was committed.
func (p *Pending) Discard() {
	if p.done {
		return
	}
	p.done = true
	_ = os.Remove(p.tmp)
}
