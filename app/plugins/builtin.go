package plugins

import (
	"github.com/fengshan-hs/timetable/infra/pdf"
	"github.com/fengshan-hs/timetable/infra/xlsx"
)

func init() {
	if err := pdf.Register(Documents); err != nil {
		panic(err)
	}
	if err := xlsx.Register(Workbooks); err != nil {
		panic(err)
	}
}
