package tabular

import (
	"strconv"
	"strings"

	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/constraint"
	"github.com/fengshan-hs/timetable/core/metrics"
	"github.com/fengshan-hs/timetable/core/model"
)

// Sheets with a dedicated meaning in the verification workbook.
const (
	ConstraintSheet = "禁區設定"
	DomainSheet     = "領域時間"
)

// Roster fallbacks.
const (
	ColSubjectAlt  = "表原始名稱"
	nativeMarker   = "本土語"
	defaultSubject = "課程"
	defaultOrder   = 999
	nanText        = "nan"
)

// FromWorkbook reconstructs the canonical dataset from an edited workbook.
// Roster rows from every regular sheet are folded into run in sheet order;
// the constraint and domain sheets are normalized separately.
func FromWorkbook(wb Workbook, run *build.Run) model.Dataset {
	rec := run.Recorder()
	native := map[string]struct{}{}
	var rules constraint.Normalizer
	var warnings []model.DomainWarning

	for _, sheet := range wb.Sheets {
		switch sheet.Name {
		case ConstraintSheet:
			for _, r := range sheet.Rows {
				if _, ok := rules.Add(constraintRow(r)); !ok {
					rec.RecordSkip(metrics.SkipBlankType)
				}
			}
			continue
		case DomainSheet:
			for _, r := range sheet.Rows {
				w, ok := constraint.DomainWarning(domainRow(r))
				if ok {
					warnings = append(warnings, w)
					continue
				}
				if _, has := r.Text(constraint.ColDomain); !has {
					rec.RecordSkip(metrics.SkipBlankDomain)
				} else {
					rec.RecordSkip(metrics.SkipBadSlot)
				}
			}
			continue
		}

		markNative := strings.Contains(sheet.Name, nativeMarker)
		for _, r := range sheet.Rows {
			name, ok := text(r, ColName)
			if !ok {
				rec.RecordSkip(metrics.SkipBlankName)
				continue
			}
			if markNative {
				native[name] = struct{}{}
			}
			foldRosterRow(run, sheet.Name, name, r)
		}
	}
	run.MarkNative(native)

	ds := run.Dataset(model.SourceWorkbook)
	ds.Constraints = rules.Constraints()
	ds.DomainWarnings = warnings
	return ds
}

func foldRosterRow(run *build.Run, sheetName, name string, r Row) {
	role, _ := text(r, ColAdminRole)
	status, _ := text(r, ColStatus)
	category, ok := text(r, ColCategory)
	if !ok {
		category = sheetName
	}
	domain, _ := text(r, ColDomain)
	homeroom, _ := text(r, ColHomeroom)
	run.ObserveTeacher(model.Teacher{
		Name:       name,
		Category:   category,
		AdminRole:  role,
		IsAdjunct:  strings.Contains(role, "兼課") || status == statusAdjunct,
		IsHomeroom: homeroom == markerYes,
		Order:      order(r),
		Domain:     domain,
	})

	dayLabel, _ := text(r, ColDay)
	periodLabel, _ := text(r, ColPeriod)
	day, dayOK := model.DayFromLabel(dayLabel)
	period, periodOK := model.PeriodFromLabel(periodLabel)
	if !dayOK || !periodOK {
		run.Diagnose(build.DiagBadSlot, name,
			"unrecognised slot "+strconv.Quote(dayLabel)+"/"+strconv.Quote(periodLabel)+" on sheet "+sheetName)
		run.Recorder().RecordSkip(metrics.SkipBadSlot)
		return
	}

	classID, ok := text(r, ColClass)
	if !ok {
		classID = model.UnknownClass
	}
	subject, ok := text(r, ColSubject)
	if !ok {
		if subject, ok = text(r, ColSubjectAlt); !ok {
			subject = defaultSubject
		}
	}
	run.AddEntry(build.Candidate{
		TeacherName: name,
		ClassID:     classID,
		Subject:     subject,
		Day:         day,
		Period:      period,
	})
}

// text reads a cell, treating the literal "nan" left by some spreadsheet
// tools as blank.
func text(r Row, col string) (string, bool) {
	v, ok := r.Text(col)
	if !ok || strings.EqualFold(v, nanText) {
		return "", false
	}
	return v, true
}

func order(r Row) int {
	v, ok := text(r, ColOrder)
	if !ok {
		return defaultOrder
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return defaultOrder
}

func constraintRow(r Row) constraint.Row {
	typ, _ := text(r, constraint.ColType)
	day, _ := text(r, constraint.ColDay)
	period, _ := text(r, constraint.ColPeriod)
	desc, _ := text(r, constraint.ColDesc)
	return constraint.Row{Type: typ, Day: day, Period: period, Desc: desc}
}

func domainRow(r Row) constraint.DomainRow {
	domain, _ := text(r, constraint.ColDomain)
	day, _ := text(r, constraint.ColDay)
	period, _ := text(r, constraint.ColPeriod)
	return constraint.DomainRow{Domain: domain, Day: day, Period: period}
}
