package collect

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// tickLogEntry is one line of the tick log: the run ID plus the snapshot.
type tickLogEntry struct {
	RunID string `json:"run_id"`
	Snapshot
}

// TickLogger writes one zstd-compressed JSONL entry per tick. The log is a
// reporting artifact, cheap enough to leave on for long runs.
type TickLogger struct {
	runID string
	f     *os.File
	enc   *zstd.Encoder
	w     *bufio.Writer
}

// NewTickLogger opens (truncating) a tick log at path.
func NewTickLogger(path, runID string) (*TickLogger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &TickLogger{
		runID: runID,
		f:     f,
		enc:   enc,
		w:     bufio.NewWriter(enc),
	}, nil
}

// Append writes one snapshot as a JSONL line.
func (l *TickLogger) Append(s Snapshot) error {
	b, err := json.Marshal(tickLogEntry{RunID: l.runID, Snapshot: s})
	if err != nil {
		return err
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

// Close flushes and closes the log. The logger is unusable afterwards.
func (l *TickLogger) Close() error {
	var firstErr error
	if err := l.w.Flush(); err != nil {
		firstErr = err
	}
	if err := l.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := l.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ReadTickLog decodes a full tick log back into snapshots, verifying that
// every line carries the same run ID. Used by tests and replay tooling.
func ReadTickLog(path string) (runID string, series []Snapshot, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return "", nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var e tickLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return runID, series, err
		}
		if runID == "" {
			runID = e.RunID
		}
		series = append(series, e.Snapshot)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return runID, series, err
	}
	return runID, series, nil
}
