// Package runlog keeps the audit trail of processed files in
// <root>/logs/runs.csv, one row per generated report.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/report"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp  time.Time
	RunID      string
	Source     string
	FiscalYear int
	Records    int
	Sample     bool
	Notices    []model.NoticeCode
}

// Header is the CSV header for runs.csv.
const Header = "timestamp,run_id,source,fiscal_year,records,sample,notices"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/runs.csv"
	noticeSep     = ";"
	colTimestamp  = 0
	colRunID      = 1
	colSource     = 2
	colFiscalYear = 3
	colRecords    = 4
	colSample     = 5
	colNotices    = 6
)

// FromReport summarizes rep as a run log entry. Duplicate notice codes are
// listed once, in first-seen order.
func FromReport(rep *report.Report) Entry {
	var codes []model.NoticeCode
	seen := make(map[model.NoticeCode]bool)
	for _, n := range rep.Notices {
		if !seen[n.Code] {
			seen[n.Code] = true
			codes = append(codes, n.Code)
		}
	}
	return Entry{
		Timestamp:  rep.GeneratedAt,
		RunID:      rep.RunID,
		Source:     rep.Source,
		FiscalYear: rep.FiscalYear,
		Records:    len(rep.Records),
		Sample:     rep.Sample,
		Notices:    codes,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	codes := make([]string, len(e.Notices))
	for i, c := range e.Notices {
		codes[i] = string(c)
	}
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colSource] = e.Source
	row[colFiscalYear] = strconv.Itoa(e.FiscalYear)
	row[colRecords] = strconv.Itoa(e.Records)
	row[colSample] = strconv.FormatBool(e.Sample)
	row[colNotices] = strings.Join(codes, noticeSep)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	year, err := strconv.Atoi(record[colFiscalYear])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing fiscal year %q: %w", record[colFiscalYear], err)
	}
	records, err := strconv.Atoi(record[colRecords])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing record count %q: %w", record[colRecords], err)
	}
	sample, err := strconv.ParseBool(record[colSample])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing sample flag %q: %w", record[colSample], err)
	}

	var notices []model.NoticeCode
	if record[colNotices] != "" {
		for _, c := range strings.Split(record[colNotices], noticeSep) {
			notices = append(notices, model.NoticeCode(c))
		}
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Source:     record[colSource],
		FiscalYear: year,
		Records:    records,
		Sample:     sample,
		Notices:    notices,
	}, nil
}

// Append writes entries to <root>/logs/runs.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/runs.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
