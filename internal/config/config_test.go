package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonstra-dev/demonstra/internal/statements"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Empresa Exemplo")
	cfg.Company.CNPJ = "12345678000190"
	cfg.Parser.SampleFallback = false
	cfg.Ordering = map[string]int{"3.01": 1, "3.02": 2}
	cfg.Statements.SignedLeafValues = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Empresa Exemplo", got.Company.Name)
	assert.Equal(t, "12345678000190", got.Company.CNPJ)
	assert.False(t, got.Parser.SampleFallback)
	assert.Equal(t, cfg.Parser.CreditNatureDigits, got.Parser.CreditNatureDigits)
	assert.Equal(t, cfg.Ordering, got.Ordering)
	assert.True(t, got.Statements.SignedLeafValues)
	assert.Equal(t, cfg.Statements.Income, got.Statements.Income)
	assert.Equal(t, cfg.Statements.Assets, got.Statements.Assets)
	assert.Equal(t, cfg.Server, got.Server)
	assert.Equal(t, cfg.Export, got.Export)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Minha Empresa")

	assert.Equal(t, "Minha Empresa", cfg.Company.Name)
	assert.True(t, cfg.Parser.SampleFallback)
	assert.Equal(t, []string{"2", "3"}, cfg.Parser.CreditNatureDigits)
	assert.Equal(t, []string{"155", "250", "355"}, cfg.Parser.FallbackMarkers)
	assert.Equal(t, 5, cfg.Parser.SkipLogLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.EqualValues(t, 50, cfg.Server.MaxUploadMB)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "demonstra", cfg.Git.AuthorName)
	assert.Equal(t, statements.DefaultRules(), cfg.Statements)
	assert.Empty(t, cfg.Ordering)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  sample_fallback: false\nlogging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Parser.SampleFallback)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"2", "3"}, cfg.Parser.CreditNatureDigits)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "3.01", cfg.Statements.Income.OperatingRevenue.Prefixes[0])
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"bad digit", "parser:\n  credit_nature_digits: [\"23\"]\n", "credit_nature_digits"},
		{"negative limit", "parser:\n  skip_log_limit: -1\n", "skip_log_limit"},
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
		{"bad upload size", "server:\n  max_upload_mb: 0\n", "max_upload_mb"},
		{"commit without author", "git:\n  auto_commit: true\n  author_email: \"\"\n", "author_email"},
		{"not yaml", "parser: [", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default("")
	cfg.Parser.SampleFallback = false
	cfg.Parser.CreditNatureDigits = []string{"2", "3", "4"}
	cfg.Parser.SkipLogLimit = 9

	opts := cfg.ParserOptions()
	assert.False(t, opts.SampleFallback)
	assert.Equal(t, []string{"2", "3", "4"}, opts.CreditNatureDigits)
	assert.Equal(t, 9, opts.SkipLogLimit)
	assert.NotNil(t, opts.Now)
}

func TestStatementOptions(t *testing.T) {
	cfg := Default("")
	opts := cfg.StatementOptions(nil)
	require.NotNil(t, opts.Rules)
	assert.Nil(t, opts.Order)

	cfg.Ordering = map[string]int{"3.01": 4}
	opts = cfg.StatementOptions(nil)
	require.NotNil(t, opts.Order)
	pos, ok, err := opts.Order.LookupOrder("3.01")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, pos)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Empresa Exemplo")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Empresa Exemplo")
	assert.Contains(t, contents, "sample_fallback: true")
	assert.Contains(t, contents, "receita_operacional:")
	assert.Contains(t, contents, "default_format: csv")
	assert.Contains(t, contents, "auto_commit: false")
	assert.NotContains(t, contents, "ordering:")
}

func TestLoadReferenceChart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plano.csv"),
		[]byte("account_code,account_name\n1.01.01,CAIXA\n"), 0o644))
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  chart_file: plano.csv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	ref := cfg.ParserOptions().ReferenceChart
	require.NotNil(t, ref)
	assert.Equal(t, "CAIXA", ref.Describe("1.01.01"))
}

func TestLoadReferenceChart_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  chart_file: missing.csv\n"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("account_code,account_name\n,sem codigo\n"), 0o644))
	cfg := Default("")
	err = cfg.LoadReferenceChart(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty account_code")
	assert.Nil(t, cfg.ParserOptions().ReferenceChart)
}
