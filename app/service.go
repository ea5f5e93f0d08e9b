package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fengshan-hs/timetable/app/plugins"
	"github.com/fengshan-hs/timetable/config"
	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/classify"
	"github.com/fengshan-hs/timetable/core/constraint"
	"github.com/fengshan-hs/timetable/core/extract"
	"github.com/fengshan-hs/timetable/core/model"
	"github.com/fengshan-hs/timetable/core/tabular"
	"github.com/fengshan-hs/timetable/infra/logger"
	"github.com/fengshan-hs/timetable/infra/metrics"
	"github.com/fengshan-hs/timetable/pkg/export"
)

// ErrInputNotFound is returned when a command's input file or folder is
// missing.
var ErrInputNotFound = errors.New("input not found")

// Summary describes what a command produced.
type Summary struct {
	Output         string
	Documents      int
	Teachers       int
	Classes        int
	Schedules      int
	Constraints    int
	DomainWarnings int
	Diagnostics    []build.Diagnostic
}

func summarize(out string, ds model.Dataset, diags []build.Diagnostic) Summary {
	return Summary{
		Output:         out,
		Teachers:       len(ds.Teachers),
		Classes:        len(ds.Classes),
		Schedules:      len(ds.Schedules),
		Constraints:    len(ds.Constraints),
		DomainWarnings: len(ds.DomainWarnings),
		Diagnostics:    diags,
	}
}

// Service runs the pipeline commands against one configuration.
type Service struct {
	cfg        *config.Config
	classifier *classify.Classifier
	log        *logger.ZerologLogger
	registry   *prometheus.Registry
	recorder   *metrics.PromRecorder

	// Documents and Workbooks are resolved from the configured formats and
	// may be replaced before a command runs.
	Documents extract.DocumentSource
	Workbooks tabular.Store
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	return NewWithLogOutput(cfg, nil)
}

// NewWithLogOutput is New with logs written to out instead of stderr.
func NewWithLogOutput(cfg *config.Config, out io.Writer) (*Service, error) {
	opts := logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    out,
	}
	log := logger.NewWithOptions("service", opts)
	c, err := cfg.Classifier.Build()
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	docs, err := plugins.Documents.Create(cfg.Formats.Document)
	if err != nil {
		return nil, fmt.Errorf("document format: %w", err)
	}
	if ls, ok := docs.(logger.Setter); ok {
		ls.SetLogger(logger.NewWithOptions(cfg.Formats.Document.Type, opts))
	}
	books, err := plugins.Workbooks.Create(cfg.Formats.Workbook)
	if err != nil {
		return nil, fmt.Errorf("workbook format: %w", err)
	}
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPromRecorder(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return &Service{
		cfg:        cfg,
		classifier: c,
		log:        log,
		registry:   reg,
		recorder:   rec,
		Documents:  docs,
		Workbooks:  books,
	}, nil
}

type runContext struct {
	*build.Run
	command string
	log     *logger.ZerologLogger
}

func (s *Service) newRun(command string) runContext {
	run := build.NewRun(s.recorder)
	return runContext{
		Run:     run,
		command: command,
		log:     s.log.With("run_id", run.ID).With("command", command),
	}
}

// flushMetrics writes the run counters when a textfile is configured.
func (s *Service) flushMetrics(log logger.Logger) {
	path := s.cfg.Metrics.Textfile
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path, s.registry); err != nil {
		log.Warnf("metrics textfile %s: %v", path, err)
	}
}

// reportDiagnostics logs every finding and appends it to the journal when
// one is configured. Journal failures are logged, not returned.
func (s *Service) reportDiagnostics(ctx context.Context, rc runContext, diags []build.Diagnostic) {
	for _, d := range diags {
		rc.log.Warnf("%s: %s: %s", d.Kind, d.Subject, d.Detail)
	}
	path := s.cfg.Paths.Diagnostics
	if path == "" || len(diags) == 0 {
		return
	}
	j, err := export.NewJournal(path)
	if err != nil {
		rc.log.Warnf("diagnostics journal %s: %v", path, err)
		return
	}
	now := time.Now().UTC()
	recs := make([]export.DiagnosticRecord, len(diags))
	for i, d := range diags {
		recs[i] = export.DiagnosticRecord{Timestamp: now, RunID: rc.ID, Command: rc.command, Diagnostic: d}
	}
	if err := j.Append(ctx, recs...); err != nil {
		rc.log.Warnf("diagnostics journal %s: %v", path, err)
	}
}

// Extract reads every document in the configured folder and writes the
// canonical JSON dataset.
func (s *Service) Extract(ctx context.Context) (Summary, error) {
	rc := s.newRun("extract")
	run, log := rc.Run, rc.log
	defer s.flushMetrics(log)

	dir := s.cfg.Paths.PDFDir
	files, err := s.documentFiles(dir)
	if err != nil {
		return Summary{}, err
	}
	log.Infof("extracting %d documents from %s", len(files), dir)

	x := extract.New(s.classifier, log)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		pages, err := s.Documents.Pages(path)
		if err != nil {
			return Summary{}, fmt.Errorf("read %s: %w", path, err)
		}
		log.Debugw("document", map[string]any{"path": path, "pages": len(pages)})
		x.Pages(run, pages)
	}

	ds := run.Dataset(model.SourcePDF)
	if err := ds.Validate(); err != nil {
		return Summary{}, fmt.Errorf("dataset: %w", err)
	}
	if err := s.writeJSON(ds); err != nil {
		return Summary{}, err
	}
	s.reportDiagnostics(ctx, rc, run.Diagnostics())
	sum := summarize(s.cfg.Paths.JSON, ds, run.Diagnostics())
	sum.Documents = len(files)
	log.Infof("wrote %s: %d teachers, %d schedules", sum.Output, sum.Teachers, sum.Schedules)
	return sum, nil
}

// documentFiles lists the folder entries matching the document format in
// name order.
func (s *Service) documentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return nil, err
	}
	ext := "." + strings.ToLower(s.cfg.Formats.Document.Type)
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ext {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Export converts the canonical JSON into the verification workbook and,
// when a CSV path is configured, the flat review CSV.
func (s *Service) Export(ctx context.Context) (Summary, error) {
	rc := s.newRun("export")
	log := rc.log
	defer s.flushMetrics(log)

	ds, err := s.readJSON()
	if err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	wb, diags := tabular.ToWorkbook(ds)

	// Both outputs are staged first so a failure leaves neither replaced.
	book, err := s.stageWorkbook(wb)
	if err != nil {
		return Summary{}, err
	}
	defer book.Discard()
	csvPath := s.cfg.Paths.CSV
	var csv *export.Pending
	if csvPath != "" {
		rows, _ := tabular.ReviewRows(ds)
		tabular.SortReviewRows(rows)
		csv, err = export.Stage(csvPath, func(w io.Writer) error { return export.WriteCSV(w, rows) })
		if err != nil {
			return Summary{}, fmt.Errorf("csv: %w", err)
		}
		defer csv.Discard()
	}
	if err := book.Commit(); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", s.cfg.Paths.Workbook, err)
	}
	if csv != nil {
		if err := csv.Commit(); err != nil {
			return Summary{}, fmt.Errorf("csv: %w", err)
		}
		log.Infof("wrote %s", csvPath)
	}
	s.reportDiagnostics(ctx, rc, diags)
	sum := summarize(s.cfg.Paths.Workbook, ds, diags)
	log.Infof("wrote %s: %d sheets, %d rows", sum.Output, len(wb.Sheets), sum.Schedules)
	return sum, nil
}

// Import rebuilds the canonical JSON from the edited verification workbook.
func (s *Service) Import(ctx context.Context) (Summary, error) {
	rc := s.newRun("import")
	run, log := rc.Run, rc.log
	defer s.flushMetrics(log)

	path := s.cfg.Paths.Workbook
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Summary{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Summary{}, err
	}
	wb, err := s.Workbooks.Read(path)
	if err != nil {
		return Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	ds := tabular.FromWorkbook(wb, run)
	if err := ds.Validate(); err != nil {
		return Summary{}, fmt.Errorf("dataset: %w", err)
	}
	if err := s.writeJSON(ds); err != nil {
		return Summary{}, err
	}
	s.reportDiagnostics(ctx, rc, run.Diagnostics())
	sum := summarize(s.cfg.Paths.JSON, ds, run.Diagnostics())
	log.Infof("wrote %s: %d teachers, %d schedules, %d constraints",
		sum.Output, sum.Teachers, sum.Schedules, sum.Constraints)
	return sum, nil
}

// Check reports schedule entries that break the dataset's own constraints.
func (s *Service) Check(ctx context.Context) (constraint.Report, error) {
	log := s.newRun("check").log
	ds, err := s.readJSON()
	if err != nil {
		return constraint.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return constraint.Report{}, err
	}
	rep := constraint.Check(ds)
	log.Infof("%d violations, %d domain conflicts, %d unresolved teachers",
		len(rep.Violations), len(rep.DomainConflicts), len(rep.Unresolved))
	return rep, nil
}

func (s *Service) readJSON() (model.Dataset, error) {
	path := s.cfg.Paths.JSON
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Dataset{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return model.Dataset{}, err
	}
	defer func() { _ = f.Close() }()
	ds, err := export.ReadJSON(f)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := ds.Validate(); err != nil {
		return model.Dataset{}, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

func (s *Service) writeJSON(ds model.Dataset) error {
	return export.WriteFile(s.cfg.Paths.JSON, func(w io.Writer) error { return export.WriteJSON(w, ds) })
}

// stageWorkbook writes wb next to the configured workbook path without
// replacing it.
func (s *Service) stageWorkbook(wb tabular.Workbook) (*export.Pending, error) {
	path := s.cfg.Paths.Workbook
	p, err := export.StageFile(path, func(tmp string) error { return s.Workbooks.Write(tmp, wb) })
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return p, nil
}
