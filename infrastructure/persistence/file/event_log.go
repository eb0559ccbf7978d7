// Package file implements the persistence ports on top of plain local files:
// an append-only newline-delimited JSON log for activity events and an
// overwrite-on-save snapshot for the derived graph.
package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/pkg/errors"
)

// EventLog appends each delivered batch as one JSON-array line. Lines are
// independently parsed on read; a corrupt line is skipped, never fatal.
type EventLog struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewEventLog creates an event log at path, creating parent directories as
// needed.
func NewEventLog(path string, logger *zap.Logger) (*EventLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating event log directory")
	}
	return &EventLog{path: path, logger: logger}, nil
}

// Append writes one batch as a single line at the end of the log. The batch
// is compacted first: clients may pretty-print their JSON, and an embedded
// newline would otherwise split one batch across several log lines.
func (l *EventLog) Append(ctx context.Context, batch json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var line bytes.Buffer
	if err := json.Compact(&line, batch); err != nil {
		return errors.Wrap(err, "compacting event batch")
	}
	line.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "opening event log")
	}
	defer f.Close()

	if _, err := f.Write(line.Bytes()); err != nil {
		return errors.Wrap(err, "appending event batch")
	}
	return nil
}

// ReadAll returns every parseable line of the log. A log that has never been
// written yields an empty slice, not an error.
func (l *EventLog) ReadAll(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []json.RawMessage{}, nil
		}
		return nil, errors.Wrap(err, "opening event log")
	}
	defer f.Close()

	batches := []json.RawMessage{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			l.logger.Warn("skipping corrupt event log line", zap.Int("bytes", len(line)))
			continue
		}
		batches = append(batches, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading event log")
	}

	return batches, nil
}
