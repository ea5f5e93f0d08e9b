package export

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengshan-hs/timetable/core/model"
	"github.com/fengshan-hs/timetable/core/tabular"
)

func TestWriteJSONFormatting(t *testing.T) {
	ds := model.Dataset{
		Teachers: []model.Teacher{{ID: "T001", Name: "王<小明>", Category: "數學"}},
		Source:   model.SourcePDF,
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ds))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"teachers\": ["))
	assert.Contains(t, out, "王<小明>")
	assert.NotContains(t, out, "constraints")

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "王<小明>", back.Teachers[0].Name)
	assert.Equal(t, model.SourcePDF, back.Source)
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	ds := model.Dataset{
		Teachers:  []model.Teacher{{ID: "T001", Name: "王小明", Category: "數學", AdminRole: "教學組長"}},
		Schedules: []model.ScheduleEntry{{ID: "S0", TeacherName: "王小明", ClassID: "203", Subject: "數學乙", Day: 1, Period: 3}},
	}
	rows, _ := tabular.ReviewRows(ds)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "\ufeff學科,老師姓名,兼課/代理,行政職稱,是否導師,課表原始名稱,班級,星期,節次,編號,領域", lines[0])
	assert.Equal(t, "數學,王小明,正式,教學組長,,數學乙,203,週二,3,,", lines[1])
}

func TestWriteFileKeepsOldContentOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.json")
	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	}))

	err := WriteFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStagedOutputsCommitTogether(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "review.xlsx")
	b := filepath.Join(dir, "review.csv")

	pa, err := StageFile(a, func(tmp string) error {
		assert.Equal(t, ".xlsx", filepath.Ext(tmp))
		return os.WriteFile(tmp, []byte("book"), 0o644)
	})
	require.NoError(t, err)
	assert.NoFileExists(t, a)

	_, err = Stage(b, func(w io.Writer) error { return errors.New("disk full") })
	require.Error(t, err)
	pa.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	pa, err = StageFile(a, func(tmp string) error { return os.WriteFile(tmp, []byte("book"), 0o644) })
	require.NoError(t, err)
	pb, err := Stage(b, func(w io.Writer) error {
		_, err := io.WriteString(w, "rows")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, pa.Commit())
	require.NoError(t, pb.Commit())
	pb.Discard()

	data, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "rows", string(data))
	assert.FileExists(t, a)
}
