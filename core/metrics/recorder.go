package metrics

// Page outcomes reported by RecordPage.
const (
	PageParsed     = "parsed"
	PageNoIdentity = "no_identity"
	PageNoTable    = "no_table"
)

// Skip reasons reported by RecordSkip.
const (
	SkipShortRow     = "short_row"
	SkipNoPeriod     = "no_period"
	SkipBlankName    = "blank_name"
	SkipBadSlot      = "bad_slot"
	SkipBlankType    = "blank_type"
	SkipBlankDomain  = "blank_domain"
	SkipUnresolved   = "unresolved_teacher"
	SkipDuplicateRow = "duplicate_slot"
)

// Recorder counts what a pipeline run produced and skipped.
type Recorder interface {
	RecordPage(outcome string)
	RecordSkip(reason string)
	RecordEntry()
	RecordTeacher()
}

// NopRecorder discards all observations.
type NopRecorder struct{}

func (NopRecorder) RecordPage(string) {}
func (NopRecorder) RecordSkip(string) {}
func (NopRecorder) RecordEntry()      {}
func (NopRecorder) RecordTeacher()    {}
