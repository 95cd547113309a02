package statements

// Group is one classification bucket: records whose code falls under any of
// Prefixes (segment-aware) belong to it. Prefixes usually list both numbering
// conventions, e.g. "3.01" and "3.1".
type Group struct {
	Key      string   `yaml:"key"`
	Label    string   `yaml:"label"`
	Prefixes []string `yaml:"prefixes"`
}

// IncomeGroups are the six income-statement buckets. Their order is fixed
// because the intermediate results are computed from specific groups.
type IncomeGroups struct {
	OperatingRevenue Group `yaml:"receita_operacional"`
	OperatingCost    Group `yaml:"custo_operacional"`
	OperatingExpense Group `yaml:"despesa_operacional"`
	FinancialRevenue Group `yaml:"receita_financeira"`
	FinancialExpense Group `yaml:"despesa_financeira"`
	IncomeTax        Group `yaml:"imposto_renda"`
}

func (g IncomeGroups) ordered() []Group {
	return []Group{
		g.OperatingRevenue, g.OperatingCost, g.OperatingExpense,
		g.FinancialRevenue, g.FinancialExpense, g.IncomeTax,
	}
}

// Rules drive the classification strategy of both statements.
type Rules struct {
	ResultFamily    string `yaml:"result_family"`
	AssetFamily     string `yaml:"asset_family"`
	LiabilityFamily string `yaml:"liability_family"`

	Income            IncomeGroups `yaml:"income"`
	Assets            []Group      `yaml:"assets"`
	LiabilitiesEquity []Group      `yaml:"liabilities_equity"`

	// SignedLeafValues keeps the sign on income-statement detail lines.
	// Subtotals and results always use absolute member values.
	SignedLeafValues bool `yaml:"signed_leaf_values"`

	// Keywords used to place pre-aggregated balance sheet rows. They are
	// matched against the upper-case, accent-free description.
	AssetKeywords     []string `yaml:"asset_keywords"`
	LiabilityKeywords []string `yaml:"liability_keywords"`
}

// DefaultRules returns the rule set used when no configuration overrides it.
func DefaultRules() Rules {
	return Rules{
		ResultFamily:    "3",
		AssetFamily:     "1",
		LiabilityFamily: "2",
		Income: IncomeGroups{
			OperatingRevenue: Group{Key: "receita_operacional", Label: "RECEITA OPERACIONAL", Prefixes: []string{"3.01", "3.1"}},
			OperatingCost:    Group{Key: "custo_operacional", Label: "CUSTO OPERACIONAL", Prefixes: []string{"3.02", "3.2"}},
			OperatingExpense: Group{Key: "despesa_operacional", Label: "DESPESAS OPERACIONAIS", Prefixes: []string{"3.03", "3.3"}},
			FinancialRevenue: Group{Key: "receita_financeira", Label: "RECEITAS FINANCEIRAS", Prefixes: []string{"3.04", "3.4"}},
			FinancialExpense: Group{Key: "despesa_financeira", Label: "DESPESAS FINANCEIRAS", Prefixes: []string{"3.05", "3.5"}},
			IncomeTax:        Group{Key: "imposto_renda", Label: "IMPOSTO DE RENDA E CONTRIBUIÇÃO SOCIAL", Prefixes: []string{"3.06", "3.6"}},
		},
		Assets: []Group{
			{Key: "ativo_circulante", Label: "ATIVO CIRCULANTE", Prefixes: []string{"1.01", "1.1"}},
			{Key: "ativo_nao_circulante", Label: "ATIVO NÃO CIRCULANTE", Prefixes: []string{"1.02", "1.2"}},
		},
		LiabilitiesEquity: []Group{
			{Key: "passivo_circulante", Label: "PASSIVO CIRCULANTE", Prefixes: []string{"2.01", "2.1"}},
			{Key: "passivo_nao_circulante", Label: "PASSIVO NÃO CIRCULANTE", Prefixes: []string{"2.02", "2.2"}},
			{Key: "patrimonio_liquido", Label: "PATRIMÔNIO LÍQUIDO", Prefixes: []string{"2.03", "2.3"}},
		},
		AssetKeywords: []string{
			"ATIVO", "CAIXA", "BANCO", "DISPONIB", "APLICAC", "CLIENTE", "RECEBER",
			"ESTOQUE", "IMOBILIZADO", "INTANGIVEL", "INVESTIMENTO", "ADIANTAMENTO",
		},
		LiabilityKeywords: []string{
			"PASSIVO", "FORNECEDOR", "PAGAR", "EMPRESTIMO", "FINANCIAMENTO", "OBRIGAC",
			"RECOLHER", "PROVIS", "CAPITAL", "RESERVA", "PATRIMONIO", "LUCRO", "PREJUIZO",
		},
	}
}
