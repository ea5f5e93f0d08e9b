package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengshan-hs/timetable/app/plugins"
	"github.com/fengshan-hs/timetable/config"
	"github.com/fengshan-hs/timetable/core/extract"
	"github.com/fengshan-hs/timetable/core/logger"
	"github.com/fengshan-hs/timetable/core/model"
	"github.com/fengshan-hs/timetable/pkg/export"
)

type fakeSource struct {
	pages map[string][]extract.Page
	read  []string
}

func (f *fakeSource) Pages(path string) ([]extract.Page, error) {
	f.read = append(f.read, filepath.Base(path))
	p, ok := f.pages[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("cannot open %s", path)
	}
	return p, nil
}

func newService(t *testing.T) (*Service, *config.Config, *fakeSource) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.PDFDir = filepath.Join(dir, "pdfs")
	cfg.Paths.JSON = filepath.Join(dir, "src", "data.json")
	cfg.Paths.Workbook = filepath.Join(dir, "review.xlsx")
	cfg.Paths.CSV = filepath.Join(dir, "review.csv")
	cfg.Metrics.Textfile = filepath.Join(dir, "run.prom")

	svc, err := NewWithLogOutput(cfg, io.Discard)
	require.NoError(t, err)
	src := &fakeSource{pages: map[string][]extract.Page{
		"a.pdf": {{
			Text:  "教師：王小明 教學組長",
			Table: [][]string{{"三", "", "", "數學乙\n203", "", "", ""}},
		}},
		"b.pdf": {
			{Text: "教師：李大華(兼) 導師", Table: [][]string{{"一", "", "物理\n101", "", "", "", ""}}},
			{Text: "第 2 頁"},
		},
	}}
	svc.Documents = src
	return svc, cfg, src
}

func writeDocs(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func readDataset(t *testing.T, path string) (model.Dataset, string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ds, err := export.ReadJSON(strings.NewReader(string(data)))
	require.NoError(t, err)
	return ds, string(data)
}

func TestPipeline(t *testing.T) {
	svc, cfg, src := newService(t)
	writeDocs(t, cfg.Paths.PDFDir, "b.pdf", "a.pdf", "notes.txt")
	ctx := context.Background()

	sum, err := svc.Extract(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, src.read)
	assert.Equal(t, 2, sum.Documents)
	assert.Equal(t, 2, sum.Teachers)
	assert.Equal(t, 2, sum.Schedules)
	assert.Equal(t, 2, sum.Classes)

	ds, raw := readDataset(t, cfg.Paths.JSON)
	assert.NotContains(t, raw, "constraints")
	assert.Equal(t, "T001", ds.Teachers[0].ID)
	assert.Equal(t, "數學", ds.Teachers[0].Category)
	assert.True(t, ds.Teachers[1].IsAdjunct)
	assert.True(t, ds.Teachers[1].IsHomeroom)

	_, err = svc.Export(ctx)
	require.NoError(t, err)
	assert.FileExists(t, cfg.Paths.Workbook)
	csv, err := os.ReadFile(cfg.Paths.CSV)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "數學,王小明,正式,教學組長,,數學乙,203,週二,3")

	sum, err = svc.Import(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Teachers)
	assert.Equal(t, 2, sum.Schedules)
	assert.Empty(t, sum.Diagnostics)

	back, raw := readDataset(t, cfg.Paths.JSON)
	assert.Contains(t, raw, `"constraints": []`)
	assert.Equal(t, model.SourceWorkbook, back.Source)
	names := []string{back.Teachers[0].Name, back.Teachers[1].Name}
	assert.ElementsMatch(t, []string{"王小明", "李大華"}, names)

	rep, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.True(t, rep.Clean())

	prom, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "timetable_schedule_entries_total 4")
	assert.Contains(t, string(prom), `timetable_pages_total{outcome="no_identity"} 1`)
}

func TestMissingInputs(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Extract(ctx)
	assert.True(t, errors.Is(err, ErrInputNotFound), "extract: %v", err)
	_, err = svc.Export(ctx)
	assert.True(t, errors.Is(err, ErrInputNotFound), "export: %v", err)
	_, err = svc.Import(ctx)
	assert.True(t, errors.Is(err, ErrInputNotFound), "import: %v", err)
	_, err = svc.Check(ctx)
	assert.True(t, errors.Is(err, ErrInputNotFound), "check: %v", err)
}

func TestExtractOpenFailureWritesNothing(t *testing.T) {
	svc, cfg, _ := newService(t)
	writeDocs(t, cfg.Paths.PDFDir, "a.pdf", "broken.pdf")

	_, err := svc.Extract(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInputNotFound))
	assert.NoFileExists(t, cfg.Paths.JSON)
}

func TestExtractCancelled(t *testing.T) {
	svc, cfg, src := newService(t)
	writeDocs(t, cfg.Paths.PDFDir, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Extract(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.read)
	assert.NoFileExists(t, cfg.Paths.JSON)
}

func TestNewUnknownFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Formats.Workbook.Type = "ods"
	_, err := NewWithLogOutput(cfg, io.Discard)
	assert.Error(t, err)
}

func TestExportJournalsUnresolvedTeachers(t *testing.T) {
	svc, cfg, _ := newService(t)
	cfg.Paths.Diagnostics = filepath.Join(filepath.Dir(cfg.Paths.JSON), "diagnostics.jsonl")
	cfg.Paths.CSV = ""
	ds := model.Dataset{
		Teachers:  []model.Teacher{{ID: "T001", Name: "王小明", Category: "數學"}},
		Schedules: []model.ScheduleEntry{{ID: "S0", TeacherName: "無名", ClassID: "101", Subject: "國文", Day: 0, Period: 1}},
		Source:    model.SourcePDF,
	}
	require.NoError(t, export.WriteFile(cfg.Paths.JSON, func(w io.Writer) error { return export.WriteJSON(w, ds) }))

	sum, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.Len(t, sum.Diagnostics, 1)

	j, err := export.NewJournal(cfg.Paths.Diagnostics)
	require.NoError(t, err)
	recs, err := j.Query(context.Background(), export.DiagnosticQuery{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "export", recs[0].Command)
	assert.Equal(t, "無名", recs[0].Subject)
	assert.NotEmpty(t, recs[0].RunID)
}

func TestExportCSVFailureLeavesNoWorkbook(t *testing.T) {
	svc, cfg, _ := newService(t)
	dir := filepath.Dir(cfg.Paths.Workbook)
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.Paths.CSV = filepath.Join(blocker, "review.csv")
	ds := model.Dataset{
		Teachers:  []model.Teacher{{ID: "T001", Name: "王小明", Category: "數學"}},
		Schedules: []model.ScheduleEntry{{ID: "S0", TeacherName: "王小明", ClassID: "101", Subject: "數學", Day: 0, Period: 1}},
		Source:    model.SourcePDF,
	}
	require.NoError(t, export.WriteFile(cfg.Paths.JSON, func(w io.Writer) error { return export.WriteJSON(w, ds) }))

	_, err := svc.Export(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Paths.Workbook)
	leftovers, err := filepath.Glob(filepath.Join(dir, ".review.*.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

type captureSource struct {
	fakeSource
	log logger.Logger
}

func (c *captureSource) SetLogger(l logger.Logger) { c.log = l }

func TestDocumentSourceUsesConfiguredLogger(t *testing.T) {
	_ = plugins.Documents.Register("capture", func(map[string]any) (extract.DocumentSource, error) {
		return &captureSource{}, nil
	})
	cfg := config.Default()
	cfg.Formats.Document.Type = "capture"
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"
	var buf strings.Builder
	svc, err := NewWithLogOutput(cfg, &buf)
	require.NoError(t, err)

	src, ok := svc.Documents.(*captureSource)
	require.True(t, ok)
	require.NotNil(t, src.log)
	src.log.Infof("page 1: below level")
	src.log.Warnf("page 2: unreadable")

	out := buf.String()
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, "page 2: unreadable")
	assert.Contains(t, out, `"component":"capture"`)
}
