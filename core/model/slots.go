package model

import (
	"strconv"
	"strings"
)

// Weekday labels indexed by day code (0 = Monday).
var DayLabels = [5]string{"週一", "週二", "週三", "週四", "週五"}

// PeriodCodes lists the canonical period codes in timetable order.
// Code 5 is the lunch break and never appears.
var PeriodCodes = [8]int{1, 2, 3, 4, 6, 7, 8, 9}

// periodGlyphs maps the PDF row labels to period codes, tested in this order.
var periodGlyphs = []struct {
	Glyph string
	Code  int
}{
	{"一", 1}, {"二", 2}, {"三", 3}, {"四", 4},
	{"五", 6}, {"六", 7}, {"七", 8}, {"八", 9},
}

var periodDisplay = map[int]string{
	1: "1", 2: "2", 3: "3", 4: "4",
	6: "5", 7: "6", 8: "7", 9: "8",
}

var periodFromNumber = map[int]int{
	1: 1, 2: 2, 3: 3, 4: 4,
	5: 6, 6: 7, 7: 8, 8: 9,
}

var periodFromRuleLabel = map[string]int{
	"第1節": 1, "第2節": 2, "第3節": 3, "第4節": 4,
	"第5節": 6, "第6節": 7, "第7節": 8, "第8節": 9,
}

// PeriodFromGlyphs returns the code of the first period glyph contained in s.
func PeriodFromGlyphs(s string) (int, bool) {
	for _, g := range periodGlyphs {
		if strings.Contains(s, g.Glyph) {
			return g.Code, true
		}
	}
	return 0, false
}

// PeriodLabel returns the 1-8 display label for a period code.
func PeriodLabel(code int) (string, bool) {
	l, ok := periodDisplay[code]
	return l, ok
}

// PeriodFromLabel parses a 1-8 display label back into a period code.
func PeriodFromLabel(label string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(label), 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		n = int(f)
	}
	code, ok := periodFromNumber[n]
	return code, ok
}

// PeriodFromRuleLabel parses labels of the form 第N節.
func PeriodFromRuleLabel(label string) (int, bool) {
	code, ok := periodFromRuleLabel[strings.TrimSpace(label)]
	return code, ok
}

// DayLabel returns the weekday label for a day code.
func DayLabel(day int) (string, bool) {
	if day < 0 || day >= len(DayLabels) {
		return "", false
	}
	return DayLabels[day], true
}

// DayFromLabel parses 週一..週五.
func DayFromLabel(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i, l := range DayLabels {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// ValidPeriod reports whether code is one of the canonical period codes.
func ValidPeriod(code int) bool {
	_, ok := periodDisplay[code]
	return ok
}

// GradeOf derives the grade label from a class code.
func GradeOf(classID string) string {
	if classID != "" && classID[0] >= '0' && classID[0] <= '9' {
		return "高" + classID[:1]
	}
	return "其他"
}

// NewClass builds the Class record for a class code.
func NewClass(id string) Class {
	return Class{ID: id, Name: id + "班", Grade: GradeOf(id)}
}
