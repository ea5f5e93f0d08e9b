// Package plugins holds the adapter registries the service selects from by
// format name.
package plugins

import (
	"github.com/fengshan-hs/timetable/core/extract"
	"github.com/fengshan-hs/timetable/core/factory"
	"github.com/fengshan-hs/timetable/core/tabular"
)

var (
	// Documents builds timetable page sources.
	Documents = factory.NewRegistry[extract.DocumentSource]()
	// Workbooks builds verification workbook stores.
	Workbooks = factory.NewRegistry[tabular.Store]()
)
