package extract

import (
	"regexp"
	"strings"

	"github.com/fengshan-hs/timetable/core/metrics"
	"github.com/fengshan-hs/timetable/core/model"
)

const (
	minRowCells = 6
	dayColumns  = 5
)

var classCodeRe = regexp.MustCompile(`\d{3}`)

// Single-character cell labels that stand for longer subject names.
var subjectAliases = map[string]string{
	"語": "本土語",
	"活": "團體活動",
}

// Subjects that never count towards a teacher's category.
var unclassified = map[string]struct{}{
	"學習":   {},
	"自習":   {},
	"班會":   {},
	"週會":   {},
	"團體活動": {},
}

// Slot is one non-empty day cell of a timetable row.
type Slot struct {
	Day     int
	Period  int
	Subject string
	ClassID string
	// Classifiable is false for homeroom and study periods.
	Classifiable bool
}

// InterpretTable walks a page table and returns one Slot per non-empty day
// cell. Rows that are too short or carry no period label are skipped.
func InterpretTable(table [][]string, rec metrics.Recorder) []Slot {
	if rec == nil {
		rec = metrics.NopRecorder{}
	}
	var out []Slot
	for _, row := range table {
		if len(row) < minRowCells {
			rec.RecordSkip(metrics.SkipShortRow)
			continue
		}
		period, ok := model.PeriodFromGlyphs(row[0] + row[1])
		if !ok {
			rec.RecordSkip(metrics.SkipNoPeriod)
			continue
		}
		for day, cell := range row[len(row)-dayColumns:] {
			if s, ok := interpretCell(cell); ok {
				s.Day = day
				s.Period = period
				out = append(out, s)
			}
		}
	}
	return out
}

func interpretCell(cell string) (Slot, bool) {
	lines := cellLines(cell)
	if len(lines) == 0 {
		return Slot{}, false
	}
	subject := lines[0]
	if alias, ok := subjectAliases[subject]; ok {
		subject = alias
	}
	classID := model.UnknownClass
	for _, l := range lines {
		if code := classCodeRe.FindString(l); code != "" {
			classID = code
			break
		}
	}
	_, skip := unclassified[subject]
	return Slot{Subject: subject, ClassID: classID, Classifiable: !skip}, true
}

func cellLines(cell string) []string {
	var lines []string
	for _, l := range strings.Split(cell, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
