package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengshan-hs/timetable/core/build"
)

func TestJournalAppendQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "diagnostics.jsonl")
	j, err := NewJournal(path)
	require.NoError(t, err)
	ctx := context.Background()
	ts := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(ctx,
		DiagnosticRecord{Timestamp: ts, RunID: "r1", Command: "import",
			Diagnostic: build.Diagnostic{Kind: build.DiagBadSlot, Subject: "吳老師", Detail: "週六"}},
		DiagnosticRecord{Timestamp: ts, RunID: "r1", Command: "import",
			Diagnostic: build.Diagnostic{Kind: build.DiagUnresolvedTeacher, Subject: "無名"}},
	))
	require.NoError(t, j.Append(ctx, DiagnosticRecord{Timestamp: ts, RunID: "r2", Command: "export",
		Diagnostic: build.Diagnostic{Kind: build.DiagUnresolvedTeacher, Subject: "無名"}}))

	// A corrupt line is ignored.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	all, err := j.Query(ctx, DiagnosticQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	r1, err := j.Query(ctx, DiagnosticQuery{RunID: "r1"})
	require.NoError(t, err)
	assert.Len(t, r1, 2)
	assert.Equal(t, "吳老師", r1[0].Subject)
	assert.True(t, ts.Equal(r1[0].Timestamp))

	unresolved, err := j.Query(ctx, DiagnosticQuery{Kind: build.DiagUnresolvedTeacher})
	require.NoError(t, err)
	require.Len(t, unresolved, 2)
	assert.Equal(t, "export", unresolved[1].Command)
}
