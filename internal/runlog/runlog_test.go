package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/report"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		RunID:      "6f1c2a9e-4d1b-4f3a-9a53-0d0f7b8c2e11",
		Source:     "ecd_2023.txt",
		FiscalYear: 2023,
		Records:    12,
		Notices:    []model.NoticeCode{model.NoticeImbalance, model.NoticeMissingGroups},
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ecd_2023.txt", entries[0].Source)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Source = "ecf_2024.txt"
	e2.Sample = true
	e2.Notices = nil
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ecd_2023.txt", entries[0].Source)
	assert.Equal(t, "ecf_2024.txt", entries[1].Source)
	assert.True(t, entries[1].Sample)
	assert.Empty(t, entries[1].Notices)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "runs.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	got.Timestamp = original.Timestamp
	assert.Equal(t, original, got)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "runs.csv"), []byte(Header+"\n"), 0o644))

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\n2025-01-15T10:30:00Z,id,a.txt,dois mil,1,false,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "runs.csv"), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "fiscal year")
}

func TestMarshalEntry(t *testing.T) {
	row := MarshalEntry(testEntry())
	assert.Equal(t, []string{
		"2025-01-15T10:30:00Z",
		"6f1c2a9e-4d1b-4f3a-9a53-0d0f7b8c2e11",
		"ecd_2023.txt",
		"2023",
		"12",
		"false",
		"imbalance;missing_groups",
	}, row)
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 7 fields")
}

func TestFromReport(t *testing.T) {
	rep := &report.Report{
		RunID:       "abc",
		Source:      "x.txt",
		GeneratedAt: testTime,
		FiscalYear:  2022,
		Sample:      true,
		Records:     make([]model.LedgerRecord, 3),
		Notices: []model.Notice{
			{Code: model.NoticeLineParseFailure, Line: 4},
			{Code: model.NoticeLineParseFailure, Line: 9},
			{Code: model.NoticeSampleData},
		},
	}

	e := FromReport(rep)
	assert.Equal(t, "abc", e.RunID)
	assert.Equal(t, 3, e.Records)
	assert.Equal(t, 2022, e.FiscalYear)
	assert.True(t, e.Sample)
	assert.Equal(t, []model.NoticeCode{model.NoticeLineParseFailure, model.NoticeSampleData}, e.Notices)
}
