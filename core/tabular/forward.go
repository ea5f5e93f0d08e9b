package tabular

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/classify"
	"github.com/fengshan-hs/timetable/core/constraint"
	"github.com/fengshan-hs/timetable/core/model"
)

// Review sheet columns.
const (
	ColCategory  = "學科"
	ColName      = "老師姓名"
	ColStatus    = "兼課/代理"
	ColAdminRole = "行政職稱"
	ColHomeroom  = "是否導師"
	ColSubject   = "課表原始名稱"
	ColClass     = "班級"
	ColDay       = "星期"
	ColPeriod    = "節次"
	ColOrder     = "編號"
	ColDomain    = "領域"
)

// ReviewHeader is the column order of every category sheet.
var ReviewHeader = []string{
	ColCategory, ColName, ColStatus, ColAdminRole, ColHomeroom,
	ColSubject, ColClass, ColDay, ColPeriod, ColOrder, ColDomain,
}

// Headers of the constraint and domain meeting sheets.
var (
	ConstraintHeader = []string{constraint.ColType, constraint.ColDay, constraint.ColPeriod, constraint.ColDesc}
	DomainHeader     = []string{constraint.ColDomain, constraint.ColDay, constraint.ColPeriod}
)

const (
	statusAdjunct = "代理/兼課"
	statusRegular = "正式"
	markerYes     = "是"
	maxSheetName  = 30
)

// ReviewRow is one flattened schedule entry joined with its teacher.
type ReviewRow struct {
	Category  string
	Name      string
	Status    string
	AdminRole string
	Homeroom  string
	Subject   string
	ClassID   string
	Day       string
	Period    string

	// Order is blank unless the dataset came from a roster workbook.
	Order  string
	Domain string

	dayNum    int
	periodNum int
}

// Values returns the row in ReviewHeader order.
func (r ReviewRow) Values() []string {
	return []string{r.Category, r.Name, r.Status, r.AdminRole, r.Homeroom, r.Subject, r.ClassID, r.Day, r.Period, r.Order, r.Domain}
}

func (r ReviewRow) cells() Row {
	row := Row{}
	for i, v := range r.Values() {
		row[ReviewHeader[i]] = Str(v)
	}
	return row
}

// ReviewRows flattens every schedule entry, in dataset order. Entries whose
// teacher is not in the dataset keep empty identity fields and are reported.
func ReviewRows(ds model.Dataset) ([]ReviewRow, []build.Diagnostic) {
	byName := ds.TeacherByName()
	var diags []build.Diagnostic
	reported := map[string]bool{}
	rows := make([]ReviewRow, 0, len(ds.Schedules))
	for _, s := range ds.Schedules {
		t, ok := byName[s.TeacherName]
		category := classify.Fallback
		if ok {
			category = t.Category
		} else if !reported[s.TeacherName] {
			reported[s.TeacherName] = true
			diags = append(diags, build.Diagnostic{
				Kind:    build.DiagUnresolvedTeacher,
				Subject: s.TeacherName,
				Detail:  "schedule " + s.ID + " references a teacher missing from the dataset",
			})
		}
		status := statusRegular
		if t.IsAdjunct {
			status = statusAdjunct
		}
		homeroom := ""
		if t.IsHomeroom {
			homeroom = markerYes
		}
		order := ""
		if ok && ds.Source == model.SourceWorkbook {
			order = strconv.Itoa(t.Order)
		}
		day, _ := model.DayLabel(s.Day)
		period := strconv.Itoa(s.Period)
		if model.ValidPeriod(s.Period) {
			period, _ = model.PeriodLabel(s.Period)
		}
		pnum, _ := strconv.Atoi(period)
		rows = append(rows, ReviewRow{
			Category:  category,
			Name:      s.TeacherName,
			Status:    status,
			AdminRole: t.AdminRole,
			Homeroom:  homeroom,
			Subject:   s.Subject,
			ClassID:   s.ClassID,
			Day:       day,
			Period:    period,
			Order:     order,
			Domain:    t.Domain,
			dayNum:    s.Day,
			periodNum: pnum,
		})
	}
	return rows, diags
}

// SortReviewRows orders rows by teacher name, weekday and period.
func SortReviewRows(rows []ReviewRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.dayNum != b.dayNum {
			return a.dayNum < b.dayNum
		}
		return a.periodNum < b.periodNum
	})
}

// SheetName derives a sheet identifier from a category. Collisions are not
// disambiguated.
func SheetName(category string) string {
	name := strings.NewReplacer("/", "", "*", "").Replace(category)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// ToWorkbook builds one sheet per category, categories in sorted order.
// Constraints and domain meeting slots, when present, follow on their own
// sheets in the layout FromWorkbook reads back.
func ToWorkbook(ds model.Dataset) (Workbook, []build.Diagnostic) {
	rows, diags := ReviewRows(ds)
	groups := map[string][]ReviewRow{}
	for _, r := range rows {
		groups[r.Category] = append(groups[r.Category], r)
	}
	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	wb := Workbook{Sheets: make([]Sheet, 0, len(categories))}
	for _, c := range categories {
		group := groups[c]
		SortReviewRows(group)
		sheet := Sheet{Name: SheetName(c), Header: ReviewHeader, Rows: make([]Row, len(group))}
		for i, r := range group {
			sheet.Rows[i] = r.cells()
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	if len(ds.Constraints) > 0 {
		wb.Sheets = append(wb.Sheets, constraintSheet(ds.Constraints))
	}
	if len(ds.DomainWarnings) > 0 {
		wb.Sheets = append(wb.Sheets, domainSheet(ds.DomainWarnings))
	}
	return wb, diags
}

func constraintSheet(rules []model.Constraint) Sheet {
	sheet := Sheet{Name: ConstraintSheet, Header: ConstraintHeader}
	for _, c := range rules {
		for _, r := range constraint.Rows(c) {
			sheet.Rows = append(sheet.Rows, Row{
				constraint.ColType:   Str(r.Type),
				constraint.ColDay:    Str(r.Day),
				constraint.ColPeriod: Str(r.Period),
				constraint.ColDesc:   Str(r.Desc),
			})
		}
	}
	return sheet
}

func domainSheet(warnings []model.DomainWarning) Sheet {
	sheet := Sheet{Name: DomainSheet, Header: DomainHeader}
	for _, w := range warnings {
		r, ok := constraint.DomainRowOf(w)
		if !ok {
			continue
		}
		sheet.Rows = append(sheet.Rows, Row{
			constraint.ColDomain: Str(r.Domain),
			constraint.ColDay:    Str(r.Day),
			constraint.ColPeriod: Str(r.Period),
		})
	}
	return sheet
}
