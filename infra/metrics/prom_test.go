package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/fengshan-hs/timetable/core/metrics"
)

func TestPromRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	rec.RecordPage(coremetrics.PageParsed)
	rec.RecordPage(coremetrics.PageNoTable)
	rec.RecordSkip(coremetrics.SkipShortRow)
	rec.RecordEntry()
	rec.RecordEntry()
	rec.RecordTeacher()

	if v := testutil.ToFloat64(rec.Pages.WithLabelValues(coremetrics.PageParsed)); v != 1 {
		t.Errorf("parsed pages expected 1 got %v", v)
	}
	if v := testutil.ToFloat64(rec.Skips.WithLabelValues(coremetrics.SkipShortRow)); v != 1 {
		t.Errorf("short rows expected 1 got %v", v)
	}
	if v := testutil.ToFloat64(rec.Entries); v != 2 {
		t.Errorf("entries expected 2 got %v", v)
	}
	if v := testutil.ToFloat64(rec.Teachers); v != 1 {
		t.Errorf("teachers expected 1 got %v", v)
	}
}

func TestPromRecorderReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	second.RecordEntry()
	if v := testutil.ToFloat64(first.Entries); v != 1 {
		t.Fatalf("expected shared counter, got %v", v)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	rec.RecordEntry()
	path := filepath.Join(t.TempDir(), "run.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "timetable_schedule_entries_total 1") {
		t.Fatalf("unexpected textfile:\n%s", data)
	}
}
