package pdf

import (
	"math"
	"sort"
	"strings"

	"github.com/fengshan-hs/timetable/core/model"
)

const (
	defaultMergeGap = 0.5
	weekdays        = 5
	lunchMarker     = "午"
)

var weekdayGlyphs = [weekdays]string{"一", "二", "三", "四", "五"}

type glyph struct {
	X, W, Size float64
	S          string
}

type line struct {
	Y      float64
	Glyphs []glyph
}

type word struct {
	X0, X1 float64
	S      string
}

func (w word) center() float64 { return (w.X0 + w.X1) / 2 }

// words joins glyphs whose horizontal gap is below gap times the font size.
func words(l line, gap float64) []word {
	gs := append([]glyph(nil), l.Glyphs...)
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].X < gs[j].X })
	var out []word
	for _, g := range gs {
		end := g.X + g.W
		if n := len(out); n > 0 {
			last := &out[n-1]
			size := g.Size
			if size <= 0 {
				size = 1
			}
			if g.X-last.X1 < gap*size {
				last.S += g.S
				last.X1 = math.Max(last.X1, end)
				continue
			}
		}
		out = append(out, word{X0: g.X, X1: end, S: g.S})
	}
	for i := range out {
		out[i].S = strings.TrimSpace(out[i].S)
	}
	return out
}

// dayColumns finds the weekday header line and returns the centre of each
// weekday column.
func dayColumns(ws []word) ([weekdays]float64, bool) {
	var centers [weekdays]float64
	found := 0
	for d, g := range weekdayGlyphs {
		for _, w := range ws {
			if strings.Contains(w.S, "星期"+g) || strings.Contains(w.S, "週"+g) {
				centers[d] = w.center()
				found++
				break
			}
		}
	}
	return centers, found == weekdays
}

// buildGrid reconstructs the timetable as rows of
// [period label, time, Mon..Fri]. Lines above the weekday header are
// ignored; a line whose label column carries a period glyph starts a new
// row and unlabelled lines continue the current one.
func buildGrid(lines []line, gap float64) [][]string {
	if gap <= 0 {
		gap = defaultMergeGap
	}
	var (
		centers  [weekdays]float64
		header   bool
		labelMax float64
		grid     [][]string
		cur      []string
	)
	flush := func() {
		if cur != nil {
			grid = append(grid, cur)
			cur = nil
		}
	}
	for _, l := range lines {
		ws := words(l, gap)
		if len(ws) == 0 {
			continue
		}
		if !header {
			centers, header = dayColumns(ws)
			if header {
				labelMax = centers[0] - (centers[1]-centers[0])/2
			}
			continue
		}
		var label []string
		cells := map[int][]string{}
		for _, w := range ws {
			if w.S == "" {
				continue
			}
			if w.center() < labelMax {
				label = append(label, w.S)
				continue
			}
			d := nearest(centers, w.center())
			cells[d] = append(cells[d], w.S)
		}
		lbl := strings.Join(label, " ")
		switch {
		case strings.Contains(lbl, lunchMarker):
			flush()
			continue
		case isPeriodLabel(label):
			flush()
			cur = make([]string, 2+weekdays)
			cur[0] = label[0]
			cur[1] = strings.Join(label[1:], " ")
		case cur == nil:
			continue
		case lbl != "":
			cur[1] = appendLine(cur[1], lbl)
		}
		for d, parts := range cells {
			cur[2+d] = appendLine(cur[2+d], strings.Join(parts, " "))
		}
	}
	flush()
	return grid
}

func isPeriodLabel(label []string) bool {
	if len(label) == 0 {
		return false
	}
	first := strings.TrimPrefix(strings.TrimSuffix(label[0], "節"), "第")
	if len([]rune(first)) != 1 {
		return false
	}
	_, ok := model.PeriodFromGlyphs(first)
	return ok
}

func nearest(centers [weekdays]float64, x float64) int {
	best, dist := 0, math.Inf(1)
	for i, c := range centers {
		if d := math.Abs(c - x); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func appendLine(cell, s string) string {
	if cell == "" {
		return s
	}
	return cell + "\n" + s
}
