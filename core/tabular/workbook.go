// Package tabular maps the canonical dataset to the human-editable
// verification workbook and back.
//
// The workbook is modelled independently of any spreadsheet library: a
// Workbook is an ordered list of named sheets, each a header plus rows of
// named cells. Blank cells are null, which is distinct from an empty string
// written on purpose.
package tabular

import "strings"

// Cell is a single sheet value. The zero Cell is null.
type Cell struct {
	Value string
	Valid bool
}

// Str returns a non-null cell holding s.
func Str(s string) Cell { return Cell{Value: s, Valid: true} }

// Row maps column headers to cells. Absent columns read as null.
type Row map[string]Cell

// Text returns the trimmed value of col and whether it is non-null and
// non-blank.
func (r Row) Text(col string) (string, bool) {
	c, ok := r[col]
	if !ok || !c.Valid {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	return v, v != ""
}

// Sheet is one named table.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// Records returns the rows as string slices in header order; null cells
// become empty strings.
func (s Sheet) Records() [][]string {
	out := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		rec := make([]string, len(s.Header))
		for j, h := range s.Header {
			if c := r[h]; c.Valid {
				rec[j] = c.Value
			}
		}
		out[i] = rec
	}
	return out
}

// Workbook is an ordered collection of sheets.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the first sheet called name.
func (w Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Reader loads a workbook from storage.
type Reader interface {
	Read(path string) (Workbook, error)
}

// Writer persists a workbook.
type Writer interface {
	Write(path string, wb Workbook) error
}

// Store reads and writes workbooks in one file format.
type Store interface {
	Reader
	Writer
}
