package constraint

import (
	"strings"

	"github.com/fengshan-hs/timetable/core/model"
)

// ColDomain is the domain column of the domain meeting sheet.
const ColDomain = "領域"

const domainMeeting = "領域時間"

// Domains whose name doubles as the warning description.
var namedDomains = map[string]struct{}{
	"導師":   {},
	"團體活動": {},
	"輔導課":  {},
}

// DomainRow is one row of the domain meeting sheet.
type DomainRow struct {
	Domain string
	Day    string
	Period string
}

// DomainWarning normalizes a domain meeting row. Rows without a domain or
// with an unrecognised day or period are rejected.
func DomainWarning(row DomainRow) (model.DomainWarning, bool) {
	domain := strings.TrimSpace(row.Domain)
	if domain == "" {
		return model.DomainWarning{}, false
	}
	day, ok := model.DayFromLabel(row.Day)
	if !ok {
		return model.DomainWarning{}, false
	}
	period, ok := model.PeriodFromRuleLabel(row.Period)
	if !ok {
		return model.DomainWarning{}, false
	}
	desc := domainMeeting
	if _, named := namedDomains[domain]; named {
		desc = domain
	}
	return model.DomainWarning{Domain: domain, Day: day, Period: period, Desc: desc}, true
}

// DomainRowOf renders w as a domain meeting sheet row. Slots that cannot be
// labelled are rejected.
func DomainRowOf(w model.DomainWarning) (DomainRow, bool) {
	day, period := dayLabel(w.Day), ruleLabel(w.Period)
	if w.Domain == "" || day == "" || period == "" {
		return DomainRow{}, false
	}
	return DomainRow{Domain: w.Domain, Day: day, Period: period}, true
}
