package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demonstra-dev/demonstra/internal/model"
)

func sumLeaves(lines []model.StatementLine) float64 {
	total := 0.0
	for _, l := range lines {
		if l.IndentLevel == 1 {
			total += l.Value
		}
	}
	return total
}

func TestBuildBalanceSheet_Classification(t *testing.T) {
	bs := BuildBalanceSheet(ledger(), Options{})

	assert.Equal(t, StrategyClassification, bs.Strategy)
	require.Len(t, bs.AssetLines, 8)
	require.Len(t, bs.LiabilityEquityLines, 10)

	assert.Equal(t, "ATIVO CIRCULANTE", bs.AssetLines[0].Description)
	sub, ok := lineBy(bs.AssetLines, "ativo_circulante", true)
	require.True(t, ok)
	assert.Equal(t, "TOTAL ATIVO CIRCULANTE", sub.Description)
	assert.InDelta(t, 20000.0, sub.Value, 1e-9)

	assert.InDelta(t, 50000.0, bs.TotalAssets(), 1e-9)
	assert.InDelta(t, 50000.0, bs.TotalLiabilityEquity(), 1e-9)
	assert.InDelta(t, sumLeaves(bs.AssetLines), bs.TotalAssets(), 1e-9)
	assert.InDelta(t, sumLeaves(bs.LiabilityEquityLines), bs.TotalLiabilityEquity(), 1e-9)

	assert.Equal(t, "TOTAL DO ATIVO", bs.AssetLines[7].Description)
	assert.Equal(t, "TOTAL DO PASSIVO + PATRIMÔNIO LÍQUIDO", bs.LiabilityEquityLines[9].Description)
	assert.Equal(t, 1, grandTotals(bs.AssetLines))
	assert.Equal(t, 1, grandTotals(bs.LiabilityEquityLines))
}

func TestBuildBalanceSheet_SignedMembers(t *testing.T) {
	bs := BuildBalanceSheet([]model.LedgerRecord{
		rec("1.01.01", "CAIXA", 500, "I155"),
		rec("1.01.09", "PROVISAO PARA DEVEDORES", -100, "I155"),
	}, Options{})

	sub, ok := lineBy(bs.AssetLines, "ativo_circulante", true)
	require.True(t, ok)
	assert.InDelta(t, 400.0, sub.Value, 1e-9)
	assert.InDelta(t, -100.0, bs.AssetLines[2].Value, 1e-9)
}

func TestBuildBalanceSheet_EmptyGroupsStillEmitted(t *testing.T) {
	bs := BuildBalanceSheet([]model.LedgerRecord{rec("1.1.01", "CAIXA", 10, "I155")}, Options{})

	nonCurrent, ok := lineBy(bs.AssetLines, "ativo_nao_circulante", true)
	require.True(t, ok)
	assert.Zero(t, nonCurrent.Value)

	require.Len(t, bs.LiabilityEquityLines, 7, "three headers, three zero subtotals and the total")
	assert.Zero(t, bs.TotalLiabilityEquity())
	assert.InDelta(t, 10.0, bs.TotalAssets(), 1e-9)
}

func TestBuildBalanceSheet_Direct(t *testing.T) {
	bs := BuildBalanceSheet([]model.LedgerRecord{
		rec("2.03", "CAPITAL SOCIAL", 40000, "J100"),
		rec("1.02", "IMOBILIZADO", 30000, "J100"),
		rec("2.01", "FORNECEDORES", 10000, "J100"),
		rec("1.01", "CAIXA E BANCOS", 20000, "J100"),
		rec("3.01", "RECEITA", 1, "J150"),
	}, Options{})

	assert.Equal(t, StrategyDirect, bs.Strategy)
	require.Len(t, bs.AssetLines, 3)
	require.Len(t, bs.LiabilityEquityLines, 3)
	assert.Equal(t, "1.01", bs.AssetLines[0].Category)
	assert.Equal(t, "1.02", bs.AssetLines[1].Category)
	assert.Equal(t, "2.01", bs.LiabilityEquityLines[0].Category)
	assert.InDelta(t, 50000.0, bs.TotalAssets(), 1e-9)
	assert.InDelta(t, 50000.0, bs.TotalLiabilityEquity(), 1e-9)

	for _, side := range [][]model.StatementLine{bs.AssetLines, bs.LiabilityEquityLines} {
		total := 0.0
		for _, l := range side {
			if !l.IsGrandTotal {
				total += l.Value
			}
		}
		assert.InDelta(t, total, grandTotal(side), 1e-9)
	}
}

func TestIsAssetRow(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		desc    string
		balance float64
		want    bool
	}{
		{"Aplicações Financeiras", -10, true},
		{"PATRIMÔNIO LÍQUIDO", 10, false},
		{"Obrigações Trabalhistas", 10, false},
		{"OUTROS VALORES", 10, true},
		{"OUTROS VALORES", -10, false},
		{"Contas a Receber de Fornecedores", 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, isAssetRow(rec("9", tt.desc, tt.balance, "J100"), rules))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "PATRIMONIO LIQUIDO", fold("Patrimônio Líquido"))
	assert.Equal(t, "OBRIGACOES", fold("obrigações"))
}
