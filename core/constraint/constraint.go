// Package constraint normalizes the forbidden-slot rules and domain meeting
// slots maintained in the verification workbook.
package constraint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fengshan-hs/timetable/core/model"
)

// Column headers of the constraint sheet.
const (
	ColType   = "類型"
	ColDay    = "星期"
	ColPeriod = "節次"
	ColDesc   = "說明"
)

// Values used when a rule's day or period label is not recognised.
const (
	defaultDay    = 0
	defaultPeriod = 1
)

// Row is one constraint sheet row. Missing cells are empty strings.
type Row struct {
	Type   string
	Day    string
	Period string
	Desc   string
}

var gradeScopes = []struct{ marker, grade string }{
	{"高一全", "1"},
	{"高二全", "2"},
	{"高三全", "3"},
}

var exactGrades = map[string]string{"高一": "1", "高二": "2", "高三": "3"}

const allScope = "全校"

// Normalizer assigns sequential identifiers to normalized rules.
type Normalizer struct {
	rules []model.Constraint
}

// Add normalizes row and appends it. Rows with a blank type are skipped and
// reported as false.
func (n *Normalizer) Add(row Row) (model.Constraint, bool) {
	c, ok := Normalize(row)
	if !ok {
		return model.Constraint{}, false
	}
	c.ID = fmt.Sprintf("C%d", len(n.rules))
	n.rules = append(n.rules, c)
	return c, true
}

// Constraints returns the rules added so far.
func (n *Normalizer) Constraints() []model.Constraint { return n.rules }

// Normalize maps one human-labelled row to a Constraint without an ID.
func Normalize(row Row) (model.Constraint, bool) {
	raw := strings.TrimSpace(row.Type)
	if raw == "" {
		return model.Constraint{}, false
	}
	typ, target := scope(raw)
	day, ok := model.DayFromLabel(row.Day)
	if !ok {
		day = defaultDay
	}
	period, ok := model.PeriodFromRuleLabel(row.Period)
	if !ok {
		period = defaultPeriod
	}
	return model.Constraint{
		Type:    typ,
		Target:  target,
		Days:    []int{day},
		Periods: []int{period},
		Desc:    row.Desc,
	}, true
}

func scope(raw string) (model.ConstraintType, string) {
	if strings.Contains(raw, allScope) {
		return model.ConstraintAll, raw
	}
	for _, g := range gradeScopes {
		if strings.Contains(raw, g.marker) {
			return model.ConstraintGrade, g.grade
		}
	}
	if g, ok := exactGrades[raw]; ok {
		return model.ConstraintGrade, g
	}
	return model.ConstraintClasses, raw
}

// Rows renders c back into constraint sheet rows, one per day and period
// pair, labelled so that Normalize yields the same scope and slots.
func Rows(c model.Constraint) []Row {
	typ := c.Target
	switch c.Type {
	case model.ConstraintAll:
		if !strings.Contains(typ, allScope) {
			typ = allScope
		}
	case model.ConstraintGrade:
		for _, g := range gradeScopes {
			if g.grade == c.Target {
				typ = g.marker
			}
		}
	}
	days, periods := c.Days, c.Periods
	if len(days) == 0 {
		days = []int{defaultDay}
	}
	if len(periods) == 0 {
		periods = []int{defaultPeriod}
	}
	rows := make([]Row, 0, len(days)*len(periods))
	for _, d := range days {
		for _, p := range periods {
			rows = append(rows, Row{Type: typ, Day: dayLabel(d), Period: ruleLabel(p), Desc: c.Desc})
		}
	}
	return rows
}

func dayLabel(day int) string {
	l, _ := model.DayLabel(day)
	return l
}

// ruleLabel formats a period code as 第N節, or "" for an unknown code.
func ruleLabel(code int) string {
	if !model.ValidPeriod(code) {
		return ""
	}
	l, _ := model.PeriodLabel(code)
	return "第" + l + "節"
}

var targetSplitRe = regexp.MustCompile(`[,，、\s]+`)

// Targets expands a classes-scope target such as "101-103、205" into the
// individual labels it names.
func Targets(target string) []string {
	var out []string
	for _, part := range targetSplitRe.Split(strings.TrimSpace(target), -1) {
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err1 := strconv.Atoi(strings.TrimSpace(lo))
			end, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 == nil && err2 == nil && start <= end {
				for i := start; i <= end; i++ {
					out = append(out, strconv.Itoa(i))
				}
				continue
			}
		}
		out = append(out, part)
	}
	return out
}

// Covers reports whether c forbids the slot for the given class.
// Unknown classes are never covered.
func Covers(c model.Constraint, classID string, day, period int) bool {
	if classID == "" || classID == model.UnknownClass {
		return false
	}
	if !containsInt(c.Days, day) || !containsInt(c.Periods, period) {
		return false
	}
	switch c.Type {
	case model.ConstraintAll:
		return true
	case model.ConstraintGrade:
		return c.Target == classID[:1]
	default:
		for _, t := range Targets(c.Target) {
			if t == classID {
				return true
			}
		}
		return false
	}
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
