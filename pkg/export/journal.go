package export

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fengshan-hs/timetable/core/build"
)

// DiagnosticRecord is one journal line.
type DiagnosticRecord struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Command   string    `json:"command"`
	build.Diagnostic
}

// DiagnosticQuery filters journal records; empty fields match everything.
type DiagnosticQuery struct {
	RunID string
	Kind  string
}

// Journal appends diagnostics to a JSONL file so findings of past runs stay
// available after the console output is gone.
type Journal struct {
	path string
	mu   sync.Mutex
}

// NewJournal creates the journal file if needed.
func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &Journal{path: path}, nil
}

// Append writes recs as one line each.
func (j *Journal) Append(ctx context.Context, recs ...DiagnosticRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// Query returns the matching records in file order. Lines that do not
// decode are skipped.
func (j *Journal) Query(ctx context.Context, q DiagnosticQuery) ([]DiagnosticRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	var res []DiagnosticRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var r DiagnosticRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		if q.RunID != "" && r.RunID != q.RunID {
			continue
		}
		if q.Kind != "" && r.Kind != q.Kind {
			continue
		}
		res = append(res, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
