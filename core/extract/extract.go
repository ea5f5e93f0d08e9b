// Package extract turns timetable document pages into teacher identities and
// schedule candidates.
//
// Each page is expected to carry one teacher's identity block in its text and
// that teacher's weekly grid as a table. Pages without an identity block are
// continuation pages and contribute nothing; pages without a table only
// register the teacher.
package extract

import (
	"github.com/fengshan-hs/timetable/core/build"
	"github.com/fengshan-hs/timetable/core/classify"
	"github.com/fengshan-hs/timetable/core/logger"
	"github.com/fengshan-hs/timetable/core/metrics"
	"github.com/fengshan-hs/timetable/core/model"
)

// Page is the raw content of one document page. Table is nil when the page
// has no table.
type Page struct {
	Text  string
	Table [][]string
}

// DocumentSource yields the pages of a document in order.
type DocumentSource interface {
	Pages(path string) ([]Page, error)
}

// Extractor feeds pages into a build.Run.
type Extractor struct {
	classifier *classify.Classifier
	log        logger.Logger
}

// New returns an Extractor using c to categorize subjects.
func New(c *classify.Classifier, log logger.Logger) *Extractor {
	if c == nil {
		c = classify.Default()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Extractor{classifier: c, log: log}
}

// Pages processes every page in order.
func (x *Extractor) Pages(run *build.Run, pages []Page) {
	for i, p := range pages {
		x.Page(run, i+1, p)
	}
}

// Page registers the page's teacher and its schedule cells on run.
func (x *Extractor) Page(run *build.Run, num int, p Page) {
	rec := run.Recorder()
	id, ok := ParseIdentity(p.Text)
	if !ok {
		x.log.Debugf("page %d: no teacher identity block", num)
		rec.RecordPage(metrics.PageNoIdentity)
		return
	}
	run.ObserveTeacher(model.Teacher{
		Name:       id.Name,
		AdminRole:  id.AdminRole,
		IsAdjunct:  id.IsAdjunct,
		IsHomeroom: id.IsHomeroom,
	})
	if len(p.Table) == 0 {
		x.log.Debugf("page %d: teacher %s has no table", num, id.Name)
		rec.RecordPage(metrics.PageNoTable)
		return
	}
	rec.RecordPage(metrics.PageParsed)
	for _, s := range InterpretTable(p.Table, rec) {
		if s.Classifiable {
			run.Tally(id.Name, x.classifier.Category(s.Subject))
		}
		run.AddEntry(build.Candidate{
			TeacherName: id.Name,
			ClassID:     s.ClassID,
			Subject:     s.Subject,
			Day:         s.Day,
			Period:      s.Period,
		})
	}
}
