package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonstra-dev/demonstra/internal/model"
)

func TestChartRoundTrip(t *testing.T) {
	entries := []model.ChartEntry{
		{Code: "1.01", Name: "Ativo Circulante"},
		{Code: "2.03", Name: "Patrimônio Líquido, Capital"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, entries))

	got, err := ReadChart(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestWriteChartHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, nil))
	assert.Equal(t, "account_code,account_name\n", buf.String())
}

func TestReadChart_HeaderOnly(t *testing.T) {
	got, err := ReadChart(strings.NewReader("account_code,account_name\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadChart_EmptyCode(t *testing.T) {
	_, err := ReadChart(strings.NewReader("account_code,account_name\n,Sem código\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestUnmarshalEntry_BadFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 fields")
}
