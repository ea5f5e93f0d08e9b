package constraint

import (
	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/model"
)

// Violation is a schedule entry placed in a forbidden slot.
type Violation struct {
	Entry model.ScheduleEntry `json:"entry"`
	Rule  model.Constraint    `json:"rule"`
}

// DomainConflict is an entry taught during its teacher's domain meeting.
type DomainConflict struct {
	Entry   model.ScheduleEntry `json:"entry"`
	Warning model.DomainWarning `json:"warning"`
}

// Report lists every finding of Check.
type Report struct {
	Violations      []Violation      `json:"violations"`
	DomainConflicts []DomainConflict `json:"domainConflicts"`
	// Unresolved holds schedule teacher names with no teacher record.
	Unresolved []string `json:"unresolved"`
}

// Clean reports whether the dataset had no findings.
func (r Report) Clean() bool {
	return len(r.Violations) == 0 && len(r.DomainConflicts) == 0 && len(r.Unresolved) == 0
}

// Check compares every schedule entry against the dataset's constraints and
// domain meeting slots. It never modifies the dataset.
func Check(ds model.Dataset) Report {
	teachers := map[string]model.Teacher{}
	for _, t := range ds.Teachers {
		key := build.NormalizeName(t.Name)
		if _, ok := teachers[key]; !ok {
			teachers[key] = t
		}
	}
	var rep Report
	seen := map[string]bool{}
	for _, e := range ds.Schedules {
		for _, c := range ds.Constraints {
			if Covers(c, e.ClassID, e.Day, e.Period) {
				rep.Violations = append(rep.Violations, Violation{Entry: e, Rule: c})
			}
		}
		t, ok := teachers[build.NormalizeName(e.TeacherName)]
		if !ok {
			if !seen[e.TeacherName] {
				seen[e.TeacherName] = true
				rep.Unresolved = append(rep.Unresolved, e.TeacherName)
			}
			continue
		}
		if t.Domain == "" {
			continue
		}
		for _, w := range ds.DomainWarnings {
			if w.Domain == t.Domain && w.Day == e.Day && w.Period == e.Period {
				rep.DomainConflicts = append(rep.DomainConflicts, DomainConflict{Entry: e, Warning: w})
			}
		}
	}
	return rep
}
