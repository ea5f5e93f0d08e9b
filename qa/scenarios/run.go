package scenarios

import (
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/extract"
	"github.com/fengshan-hs/timetable/core/model"
	"github.com/fengshan-hs/timetable/core/tabular"
	"github.com/fengshan-hs/timetable/infra/logger"
	"github.com/fengshan-hs/timetable/infra/metrics"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPromRecorder(reg)
	if err != nil {
		t.Fatalf("prom recorder: %v", err)
	}

	run := build.NewRun(rec)
	pages := make([]extract.Page, len(sc.Pages))
	for i, p := range sc.Pages {
		pages[i] = p.ToModel()
	}
	extract.New(nil, logger.NopLogger{}).Pages(run, pages)
	ds := run.Dataset(model.SourcePDF)
	if err := ds.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	checkTeachers(t, sc.Expected.Teachers, ds.Teachers)
	checkEntries(t, sc.Expected.Schedules, ds.Schedules)

	var classes []string
	for _, c := range ds.Classes {
		classes = append(classes, c.ID)
	}
	if !equalStrings(classes, sc.Expected.Classes) {
		t.Errorf("classes: got %v want %v", classes, sc.Expected.Classes)
	}
	for reason, want := range sc.Expected.Skipped {
		if got := testutil.ToFloat64(rec.Skips.WithLabelValues(reason)); int(got) != want {
			t.Errorf("skipped %s: got %v want %d", reason, got, want)
		}
	}
	for outcome, want := range sc.Expected.Pages {
		if got := testutil.ToFloat64(rec.Pages.WithLabelValues(outcome)); int(got) != want {
			t.Errorf("pages %s: got %v want %d", outcome, got, want)
		}
	}

	if sc.RoundTrip {
		wb, diags := tabular.ToWorkbook(ds)
		if len(diags) != 0 {
			t.Errorf("forward diagnostics: %v", diags)
		}
		back := tabular.FromWorkbook(wb, build.NewRun(nil))
		if err := back.Validate(); err != nil {
			t.Fatalf("validate round trip: %v", err)
		}
		if a, b := entryKeys(ds.Schedules), entryKeys(back.Schedules); !equalStrings(a, b) {
			t.Errorf("round trip entries: got %v want %v", b, a)
		}
	}
}

func checkTeachers(t *testing.T, want []TeacherDef, got []model.Teacher) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("teachers: got %d want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Name != w.Name || g.Category != w.Category || g.AdminRole != w.AdminRole ||
			g.IsAdjunct != w.Adjunct || g.IsHomeroom != w.Homeroom {
			t.Errorf("teacher %d: got %+v want %+v", i, g, w)
		}
	}
}

func checkEntries(t *testing.T, want []EntryDef, got []model.ScheduleEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("schedules: got %d want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.TeacherName != w.Teacher || g.ClassID != w.Class || g.Subject != w.Subject ||
			g.Day != w.Day || g.Period != w.Period {
			t.Errorf("schedule %d: got %+v want %+v", i, g, w)
		}
	}
}

func entryKeys(entries []model.ScheduleEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		d, _ := model.DayLabel(e.Day)
		p, _ := model.PeriodLabel(e.Period)
		out[i] = e.TeacherName + "|" + e.ClassID + "|" + e.Subject + "|" + d + "|" + p
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
