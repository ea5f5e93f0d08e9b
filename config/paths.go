package config

import (
	"errors"

	"github.com/fengshan-hs/timetable/core/factory"
)

// PathsConfig locates the pipeline inputs and outputs.
type PathsConfig struct {
	// PDFDir holds the per-teacher timetable documents.
	PDFDir string `json:"pdf_dir"`
	// JSON is the canonical dataset file.
	JSON string `json:"json"`
	// Workbook is the verification workbook.
	Workbook string `json:"workbook"`
	// CSV is the optional flat review export.
	CSV string `json:"csv"`
	// Diagnostics, when set, is a JSONL journal of every run's findings.
	Diagnostics string `json:"diagnostics"`
}

// SetDefaults applies the conventional file names.
func (c *PathsConfig) SetDefaults() {
	if c.PDFDir == "" {
		c.PDFDir = "pdfs"
	}
	if c.JSON == "" {
		c.JSON = "data.json"
	}
	if c.Workbook == "" {
		c.Workbook = "課表資料核對表.xlsx"
	}
}

// Validate checks mandatory fields.
func (c PathsConfig) Validate() error {
	if c.JSON == "" {
		return errors.New("json path is required")
	}
	if c.JSON == c.Workbook || (c.CSV != "" && c.CSV == c.JSON) {
		return errors.New("json path must differ from the workbook and csv paths")
	}
	return nil
}

// FormatsConfig selects the document and workbook adapters.
type FormatsConfig struct {
	Document factory.ModuleConfig `json:"document"`
	Workbook factory.ModuleConfig `json:"workbook"`
}

// SetDefaults selects the pdf and xlsx adapters.
func (c *FormatsConfig) SetDefaults() {
	if c.Document.Type == "" {
		c.Document.Type = "pdf"
	}
	if c.Workbook.Type == "" {
		c.Workbook.Type = "xlsx"
	}
}

// Validate is a no-op; unknown formats are reported by the registry.
func (c FormatsConfig) Validate() error { return nil }
