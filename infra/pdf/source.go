// Package pdf reads timetable pages from PDF documents.
package pdf

import (
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"

	"github.com/fengshan-hs/timetable/core/extract"
	"github.com/fengshan-hs/timetable/core/factory"
	"github.com/fengshan-hs/timetable/core/logger"
)

// Format is the registry name of this source.
const Format = "pdf"

// Source extracts page text and a reconstructed timetable grid.
type Source struct {
	// MergeGap is the horizontal gap, as a fraction of the font size, below
	// which adjacent glyphs are joined into one word.
	MergeGap float64 `json:"merge_gap"`

	log logger.Logger
}

// NewSource returns a Source with default settings.
func NewSource(log logger.Logger) *Source {
	s := &Source{MergeGap: defaultMergeGap}
	s.SetLogger(log)
	return s
}

// SetLogger replaces the logger used for page warnings. A nil log discards
// them.
func (s *Source) SetLogger(log logger.Logger) {
	if log == nil {
		log = logger.NopLogger{}
	}
	s.log = log
}

// Register adds the pdf factory to reg. Sources start silent until the
// caller hands them a logger through SetLogger.
func Register(reg *factory.Registry[extract.DocumentSource]) error {
	return reg.Register(Format, func(conf map[string]any) (extract.DocumentSource, error) {
		s := NewSource(nil)
		if err := factory.Decode(conf, s); err != nil {
			return nil, fmt.Errorf("pdf conf: %w", err)
		}
		return s, nil
	})
}

// Pages returns every page of the document at path. A page whose text or
// layout cannot be read yields an empty Page; only failing to open the
// document is an error.
func (s *Source) Pages(path string) ([]extract.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	n := r.NumPage()
	pages := make([]extract.Page, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, s.page(r, i))
	}
	return pages, nil
}

func (s *Source) page(r *pdf.Reader, num int) (out extract.Page) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Warnf("page %d: unreadable: %v", num, rec)
			out = extract.Page{}
		}
	}()
	p := r.Page(num)
	if p.V.IsNull() {
		return extract.Page{}
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		s.log.Warnf("page %d: text: %v", num, err)
		text = ""
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		s.log.Warnf("page %d: layout: %v", num, err)
		return extract.Page{Text: text}
	}
	return extract.Page{Text: text, Table: buildGrid(toLines(rows), s.MergeGap)}
}

// toLines converts library rows into top-to-bottom lines of glyph runs.
func toLines(rows pdf.Rows) []line {
	out := make([]line, 0, len(rows))
	for _, r := range rows {
		l := line{Y: float64(r.Position)}
		for _, t := range r.Content {
			if t.S == "" {
				continue
			}
			l.Glyphs = append(l.Glyphs, glyph{X: t.X, W: t.W, Size: t.FontSize, S: t.S})
		}
		out = append(out, l)
	}
	// PDF user space grows upwards.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y > out[j].Y })
	return out
}
