package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnknownClass marks a schedule entry whose cell carried no class code.
const UnknownClass = "未知"

// Source identifies which ingestion path produced a Dataset.
type Source int

const (
	SourcePDF Source = iota
	SourceWorkbook
)

// Teacher holds identity fields and the derived subject category.
type Teacher struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Category      string `json:"category"`
	AdminRole     string `json:"adminRole"`
	IsAdjunct     bool   `json:"isAdjunct"`
	IsHomeroom    bool   `json:"isHomeroom"`
	TeachesNative bool   `json:"teachesNative,omitempty"`
	// Order and Domain only come from the roster workbook.
	Order  int    `json:"order,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// rosterTeacher is the workbook-path form of Teacher: every roster field is
// written, zero values included.
type rosterTeacher struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	AdminRole     string `json:"adminRole"`
	IsAdjunct     bool   `json:"isAdjunct"`
	IsHomeroom    bool   `json:"isHomeroom"`
	TeachesNative bool   `json:"teachesNative"`
	Order         int    `json:"order"`
	Domain        string `json:"domain"`
}

// Class is a class-section group derived from schedule entries.
type Class struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// ScheduleEntry is one teacher/day/period assignment.
type ScheduleEntry struct {
	ID string `json:"id" validate:"required"`
	// TeacherName is kept for consumers that join by name.
	TeacherName string `json:"teacherName" validate:"required"`
	TeacherID   string `json:"teacherId,omitempty"`
	ClassID     string `json:"classId"`
	Subject     string `json:"subject"`
	Day         int    `json:"day" validate:"min=0,max=4"`
	Period      int    `json:"period" validate:"oneof=1 2 3 4 6 7 8 9"`
}

// ConstraintType scopes a forbidden-slot rule.
type ConstraintType string

const (
	ConstraintAll     ConstraintType = "all"
	ConstraintGrade   ConstraintType = "grade"
	ConstraintClasses ConstraintType = "classes"
)

// Constraint declares day/period combinations unavailable for a scope.
type Constraint struct {
	ID      string         `json:"id" validate:"required"`
	Type    ConstraintType `json:"type" validate:"oneof=all grade classes"`
	Target  string         `json:"target"`
	Days    []int          `json:"days" validate:"dive,min=0,max=4"`
	Periods []int          `json:"periods" validate:"dive,oneof=1 2 3 4 6 7 8 9"`
	Desc    string         `json:"desc"`
}

// DomainWarning marks a slot reserved for a subject domain meeting.
type DomainWarning struct {
	Domain string `json:"domain" validate:"required"`
	Day    int    `json:"day" validate:"min=0,max=4"`
	Period int    `json:"period" validate:"oneof=1 2 3 4 6 7 8 9"`
	Desc   string `json:"desc"`
}

// Dataset is the canonical teachers/classes/schedules/constraints model.
type Dataset struct {
	Teachers       []Teacher       `json:"teachers" validate:"dive"`
	Classes        []Class         `json:"classes" validate:"dive"`
	Schedules      []ScheduleEntry `json:"schedules" validate:"dive"`
	Constraints    []Constraint    `json:"constraints,omitempty" validate:"dive"`
	DomainWarnings []DomainWarning `json:"domainWarnings,omitempty" validate:"dive"`

	// Source decides whether constraints are part of the serialized form.
	Source Source `json:"-"`
}

type pdfDataset struct {
	Teachers  []Teacher       `json:"teachers"`
	Classes   []Class         `json:"classes"`
	Schedules []ScheduleEntry `json:"schedules"`
}

type workbookDataset struct {
	Teachers       []rosterTeacher `json:"teachers"`
	Classes        []Class         `json:"classes"`
	Schedules      []ScheduleEntry `json:"schedules"`
	Constraints    []Constraint    `json:"constraints"`
	DomainWarnings []DomainWarning `json:"domainWarnings"`
}

// MarshalJSON emits the constraints keys only for workbook-sourced datasets.
// Nil collections are written as empty arrays.
func (d Dataset) MarshalJSON() ([]byte, error) {
	switch d.Source {
	case SourcePDF:
		return marshal(pdfDataset{
			Teachers:  nonNil(d.Teachers),
			Classes:   nonNil(d.Classes),
			Schedules: nonNil(d.Schedules),
		})
	case SourceWorkbook:
		return marshal(workbookDataset{
			Teachers:       rosterTeachers(d.Teachers),
			Classes:        nonNil(d.Classes),
			Schedules:      nonNil(d.Schedules),
			Constraints:    nonNil(d.Constraints),
			DomainWarnings: nonNil(d.DomainWarnings),
		})
	default:
		return nil, fmt.Errorf("unknown dataset source %d", d.Source)
	}
}

// marshal encodes v leaving <, > and & unescaped.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON infers the source from the presence of a constraints key.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw struct {
		workbookDataset
		Constraints *[]Constraint `json:"constraints"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var teachers []Teacher
	if raw.Teachers != nil {
		teachers = make([]Teacher, len(raw.Teachers))
		for i, t := range raw.Teachers {
			teachers[i] = Teacher(t)
		}
	}
	*d = Dataset{
		Teachers:       teachers,
		Classes:        raw.Classes,
		Schedules:      raw.Schedules,
		DomainWarnings: raw.DomainWarnings,
		Source:         SourcePDF,
	}
	if raw.Constraints != nil {
		d.Constraints = *raw.Constraints
		d.Source = SourceWorkbook
	}
	return nil
}

// TeacherByName returns an index of teachers keyed by display name.
func (d Dataset) TeacherByName() map[string]Teacher {
	idx := make(map[string]Teacher, len(d.Teachers))
	for _, t := range d.Teachers {
		if _, ok := idx[t.Name]; !ok {
			idx[t.Name] = t
		}
	}
	return idx
}

func rosterTeachers(ts []Teacher) []rosterTeacher {
	out := make([]rosterTeacher, len(ts))
	for i, t := range ts {
		out[i] = rosterTeacher(t)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
