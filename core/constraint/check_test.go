package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengshan-hs/timetable/core/model"
)

func TestCheck(t *testing.T) {
	ds := model.Dataset{
		Teachers: []model.Teacher{
			{ID: "T001", Name: "王小明", Domain: "數學"},
			{ID: "T002", Name: "李大華"},
		},
		Schedules: []model.ScheduleEntry{
			{ID: "S0", TeacherName: "王小明", ClassID: "203", Day: 1, Period: 3},
			{ID: "S1", TeacherName: "李大華", ClassID: "101", Day: 2, Period: 8},
			{ID: "S2", TeacherName: "李大華", ClassID: model.UnknownClass, Day: 2, Period: 8},
			{ID: "S3", TeacherName: "無名", ClassID: "305", Day: 0, Period: 1},
			{ID: "S4", TeacherName: "無名", ClassID: "305", Day: 0, Period: 2},
			{ID: "S5", TeacherName: "王 小明", ClassID: "204", Day: 4, Period: 9},
		},
		Constraints: []model.Constraint{
			{ID: "C0", Type: model.ConstraintAll, Target: "全校", Days: []int{2}, Periods: []int{8}},
			{ID: "C1", Type: model.ConstraintGrade, Target: "3", Days: []int{0}, Periods: []int{1}},
		},
		DomainWarnings: []model.DomainWarning{
			{Domain: "數學", Day: 1, Period: 3, Desc: "領域時間"},
		},
		Source: model.SourceWorkbook,
	}
	rep := Check(ds)
	require.Len(t, rep.Violations, 2)
	assert.Equal(t, "S1", rep.Violations[0].Entry.ID)
	assert.Equal(t, "C0", rep.Violations[0].Rule.ID)
	assert.Equal(t, "S3", rep.Violations[1].Entry.ID)
	assert.Equal(t, "C1", rep.Violations[1].Rule.ID)

	require.Len(t, rep.DomainConflicts, 1)
	assert.Equal(t, "S0", rep.DomainConflicts[0].Entry.ID)

	assert.Equal(t, []string{"無名"}, rep.Unresolved)
	assert.False(t, rep.Clean())
}

func TestCheckClean(t *testing.T) {
	assert.True(t, Check(model.Dataset{}).Clean())
}
