// Package build folds extracted candidates into the canonical dataset.
//
// A Run is the per-invocation accumulator: it owns the teacher index, the
// per-teacher category tallies, the (teacher, day, period) dedup set and the
// sequence counters used for synthetic identifiers. Nothing is shared between
// runs, so two runs over the same input produce identical output.
package build

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/fengshan-hs/timetable/core/metrics"
	"github.com/fengshan-hs/timetable/core/model"
)

// DefaultCategory is assigned to PDF-path teachers without any classifiable subject.
const DefaultCategory = "國文"

// Candidate is one schedule cell before deduplication.
type Candidate struct {
	TeacherName string
	ClassID     string
	Subject     string
	Day         int
	Period      int
}

type slotKey struct {
	teacher string
	day     int
	period  int
}

type teacherRecord struct {
	teacher model.Teacher
	tally   Tally
}

// Run accumulates teachers and schedule entries for one invocation.
type Run struct {
	ID string

	teachers  []*teacherRecord
	byKey     map[string]*teacherRecord
	schedules []model.ScheduleEntry
	slots     map[slotKey]struct{}
	diags     []Diagnostic
	rec       metrics.Recorder
}

// NewRun creates an empty Run. A nil recorder discards metrics.
func NewRun(rec metrics.Recorder) *Run {
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	return &Run{
		ID:    uuid.NewString(),
		byKey: map[string]*teacherRecord{},
		slots: map[slotKey]struct{}{},
		rec:   rec,
	}
}

// Recorder returns the metrics recorder bound to the run.
func (r *Run) Recorder() metrics.Recorder { return r.rec }

// NormalizeName is the key used to match teacher names: NFKC-folded with
// surrounding and inner whitespace removed.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(name)), "")
}

// ObserveTeacher registers t on first sight and returns the stored record's
// identifier. Later observations of the same name never overwrite fields.
func (r *Run) ObserveTeacher(t model.Teacher) (string, bool) {
	t.Name = strings.TrimSpace(t.Name)
	key := NormalizeName(t.Name)
	if key == "" {
		return "", false
	}
	if rec, ok := r.byKey[key]; ok {
		return rec.teacher.ID, false
	}
	t.ID = fmt.Sprintf("T%03d", len(r.teachers)+1)
	rec := &teacherRecord{teacher: t}
	r.teachers = append(r.teachers, rec)
	r.byKey[key] = rec
	r.rec.RecordTeacher()
	return t.ID, true
}

// Lookup resolves a teacher name through the normalized index.
func (r *Run) Lookup(name string) (model.Teacher, bool) {
	rec, ok := r.byKey[NormalizeName(name)]
	if !ok {
		return model.Teacher{}, false
	}
	return rec.teacher, true
}

// Tally appends a detected category to the named teacher's tally.
func (r *Run) Tally(name, category string) {
	if rec, ok := r.byKey[NormalizeName(name)]; ok {
		rec.tally.Add(category)
	}
}

// MarkNative sets TeachesNative on every registered teacher in names.
func (r *Run) MarkNative(names map[string]struct{}) {
	for n := range names {
		if rec, ok := r.byKey[NormalizeName(n)]; ok {
			rec.teacher.TeachesNative = true
		}
	}
}

// AddEntry turns a candidate into a ScheduleEntry unless the teacher already
// holds the slot. The first entry for a slot wins.
func (r *Run) AddEntry(c Candidate) (model.ScheduleEntry, bool) {
	rec, ok := r.byKey[NormalizeName(c.TeacherName)]
	if !ok {
		r.Diagnose(DiagUnresolvedTeacher, c.TeacherName, "schedule candidate references an unknown teacher")
		r.rec.RecordSkip(metrics.SkipUnresolved)
		return model.ScheduleEntry{}, false
	}
	key := slotKey{teacher: NormalizeName(rec.teacher.Name), day: c.Day, period: c.Period}
	if _, dup := r.slots[key]; dup {
		r.rec.RecordSkip(metrics.SkipDuplicateRow)
		return model.ScheduleEntry{}, false
	}
	r.slots[key] = struct{}{}
	classID := strings.TrimSpace(c.ClassID)
	if classID == "" {
		classID = model.UnknownClass
	}
	e := model.ScheduleEntry{
		ID:          fmt.Sprintf("S%d", len(r.schedules)),
		TeacherName: rec.teacher.Name,
		TeacherID:   rec.teacher.ID,
		ClassID:     classID,
		Subject:     c.Subject,
		Day:         c.Day,
		Period:      c.Period,
	}
	r.schedules = append(r.schedules, e)
	r.rec.RecordEntry()
	return e, true
}

// Schedules returns the entries accepted so far.
func (r *Run) Schedules() []model.ScheduleEntry { return r.schedules }

// Teachers returns the registered teachers in first-seen order. When
// resolveCategory is set, each category is recomputed from the tally and
// teachers without observations fall back to DefaultCategory.
func (r *Run) Teachers(resolveCategory bool) []model.Teacher {
	out := make([]model.Teacher, 0, len(r.teachers))
	for _, rec := range r.teachers {
		t := rec.teacher
		if resolveCategory {
			if mode, ok := rec.tally.Mode(); ok {
				t.Category = mode
			} else {
				t.Category = DefaultCategory
			}
		}
		out = append(out, t)
	}
	return out
}

// Classes projects the class codes referenced by the accepted entries.
func (r *Run) Classes() []model.Class { return DeriveClasses(r.schedules) }

// DeriveClasses returns one Class per distinct known class code, sorted by code.
func DeriveClasses(entries []model.ScheduleEntry) []model.Class {
	set := map[string]struct{}{}
	for _, e := range entries {
		if e.ClassID != "" && e.ClassID != model.UnknownClass {
			set[e.ClassID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Class, len(ids))
	for i, id := range ids {
		out[i] = model.NewClass(id)
	}
	return out
}

// Dataset assembles the canonical model for the given ingestion path.
func (r *Run) Dataset(src model.Source) model.Dataset {
	return model.Dataset{
		Teachers:  r.Teachers(src == model.SourcePDF),
		Classes:   r.Classes(),
		Schedules: r.schedules,
		Source:    src,
	}
}
