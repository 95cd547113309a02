package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/demonstra-dev/demonstra/internal/model"
)

const (
	numFields = 2
	colCode   = 0
	colName   = 1
)

// WriteChart writes the chart of accounts as CSV (with header).
func WriteChart(w io.Writer, entries []model.ChartEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "account_name"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadChart reads a chart CSV written by WriteChart.
func ReadChart(r io.Reader) ([]model.ChartEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]model.ChartEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarshalEntry converts a ChartEntry to a CSV row.
func MarshalEntry(e model.ChartEntry) []string {
	row := make([]string, numFields)
	row[colCode] = e.Code
	row[colName] = e.Name
	return row
}

// UnmarshalEntry converts a CSV row to a ChartEntry.
func UnmarshalEntry(record []string) (model.ChartEntry, error) {
	if len(record) != numFields {
		return model.ChartEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colCode] == "" {
		return model.ChartEntry{}, fmt.Errorf("empty account_code")
	}
	return model.ChartEntry{Code: record[colCode], Name: record[colName]}, nil
}
