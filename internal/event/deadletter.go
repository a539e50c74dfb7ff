package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/DowntimeForge/internal/logger"
)

// DeadLetterSchemaVersion versions the JSONL line format; bump it when DeadLetterEntry changes
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one event that exhausted its publish retries
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends entries to a JSONL file. Safe for concurrent use.
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
}

func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenDeadLetter, err)
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write appends evt as one line
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarshalDeadLetter, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return err
	}

	logger.Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", attempts, "error", entry.LastError)
	return nil
}

func (w *DeadLetterWriter) Close() error {
	return w.file.Close()
}

// ReadDeadLetters parses a dead-letter file for replay. A missing file yields no entries.
// Payloads come back as generic JSON values; handlers read them with DecodePayload.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenDeadLetter, err)
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxDeadLetterLineBytes)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s at line %d: %w", ErrMsgParseDeadLetter, line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseDeadLetter, err)
	}
	return entries, nil
}
