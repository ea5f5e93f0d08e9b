// Package xlsx stores verification workbooks as Office Open XML files.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fengshan-hs/timetable/core/factory"
	"github.com/fengshan-hs/timetable/core/tabular"
)

// Format is the registry name of this store.
const Format = "xlsx"

const defaultSheet = "Sheet1"

// Store reads and writes workbooks with excelize.
type Store struct {
	// BoldHeader styles the header row when writing.
	BoldHeader bool `json:"bold_header"`
}

// NewStore returns a Store with the default options.
func NewStore() *Store { return &Store{BoldHeader: true} }

// Register adds the xlsx factory to reg.
func Register(reg *factory.Registry[tabular.Store]) error {
	return reg.Register(Format, func(conf map[string]any) (tabular.Store, error) {
		s := NewStore()
		if err := factory.Decode(conf, s); err != nil {
			return nil, fmt.Errorf("xlsx conf: %w", err)
		}
		return s, nil
	})
}

// Write saves wb to path, one worksheet per sheet in order.
func (s *Store) Write(path string, wb tabular.Workbook) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	keepDefault := len(wb.Sheets) == 0
	for _, sh := range wb.Sheets {
		if sh.Name == defaultSheet {
			keepDefault = true
		}
		if _, err := f.NewSheet(sh.Name); err != nil {
			return fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
		if err := s.writeSheet(f, sh); err != nil {
			return fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
	}
	if !keepDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
		f.SetActiveSheet(0)
	}
	return f.SaveAs(path)
}

func (s *Store) writeSheet(f *excelize.File, sh tabular.Sheet) error {
	header := append([]string(nil), sh.Header...)
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return err
	}
	if s.BoldHeader && len(header) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.Name, "A1", last, style); err != nil {
			return err
		}
	}
	for i, rec := range sh.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.Name, cell, &rec); err != nil {
			return err
		}
	}
	return nil
}

// Read loads every worksheet of path. The first row of each sheet is the
// header; empty cells are null.
func (s *Store) Read(path string) (tabular.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return tabular.Workbook{}, err
	}
	defer func() { _ = f.Close() }()

	var wb tabular.Workbook
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return tabular.Workbook{}, fmt.Errorf("sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, toSheet(name, rows))
	}
	return wb, nil
}

func toSheet(name string, rows [][]string) tabular.Sheet {
	sh := tabular.Sheet{Name: name}
	if len(rows) == 0 {
		return sh
	}
	for _, h := range rows[0] {
		sh.Header = append(sh.Header, strings.TrimSpace(h))
	}
	for _, raw := range rows[1:] {
		row := tabular.Row{}
		for j, h := range sh.Header {
			if h == "" {
				continue
			}
			if _, seen := row[h]; seen {
				continue
			}
			if j < len(raw) && raw[j] != "" {
				row[h] = tabular.Str(raw[j])
			} else {
				row[h] = tabular.Cell{}
			}
		}
		sh.Rows = append(sh.Rows, row)
	}
	return sh
}
