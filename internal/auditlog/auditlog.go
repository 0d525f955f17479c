// Package auditlog records administrative operations (customer and
// product creation, category edits) in a CSV trail next to the ledger
// data. The transaction log covers money movements; this covers
// everything else that changes the books.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Action    string // e.g. "category_rename"
	Details   string
	Ref       string // ID of the entity involved, if any
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,details,ref"

const (
	numFields    = 4
	logFile      = "audit-log.csv"
	colTimestamp = 0
	colAction    = 1
	colDetails   = 2
	colRef       = 3
)

// Append writes entries to <dataDir>/audit-log.csv, creating the file and
// header if needed.
func Append(dataDir string, entries []Entry) error {
	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(marshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Record appends a single entry stamped with the current time.
func Record(dataDir, action, details, ref string) error {
	return Append(dataDir, []Entry{{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		Ref:       ref,
	}})
}

// Read returns all entries from <dataDir>/audit-log.csv, oldest first.
// Returns nil if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func marshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colRef] = e.Ref
	return row
}

func unmarshalEntry(record []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		Details:   record[colDetails],
		Ref:       record[colRef],
	}, nil
}
