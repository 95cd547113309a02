package statements

import "github.com/demonstra-dev/demonstra/internal/model"

func rec(code, desc string, balance float64, block string) model.LedgerRecord {
	return model.LedgerRecord{AccountCode: code, AccountDescription: desc, FinalBalance: balance, Block: block, FiscalYear: 2023}
}

// ledger mirrors testdata/ecd_2023.txt after parsing.
func ledger() []model.LedgerRecord {
	return []model.LedgerRecord{
		rec("1.01.01", "CAIXA E EQUIVALENTES DE CAIXA", 12000, "I155"),
		rec("1.01.02", "CLIENTES", 8000, "I155"),
		rec("1.02.01", "IMOBILIZADO", 30000, "I155"),
		rec("2.01.01", "FORNECEDORES", 10000, "I155"),
		rec("2.02.01", "EMPRESTIMOS DE LONGO PRAZO", 15000, "I155"),
		rec("2.03.01", "CAPITAL SOCIAL", 25000, "I155"),
		rec("3.01.01", "RECEITA DE VENDAS", 100000, "I155"),
		rec("3.02.01", "CUSTO DAS MERCADORIAS VENDIDAS", -60000, "I155"),
		rec("3.03.01", "DESPESAS ADMINISTRATIVAS", -20000, "I155"),
		rec("3.04.01", "RECEITAS FINANCEIRAS", 2000, "I155"),
		rec("3.05.01", "DESPESAS FINANCEIRAS", -1500, "I155"),
		rec("3.06.01", "IRPJ E CSLL", -4000, "I155"),
	}
}

func lineBy(lines []model.StatementLine, category string, subtotal bool) (model.StatementLine, bool) {
	for _, l := range lines {
		if l.Category == category && l.IsGroupSubtotal == subtotal && !l.IsGrandTotal {
			return l, true
		}
	}
	return model.StatementLine{}, false
}

func grandTotals(lines []model.StatementLine) int {
	n := 0
	for _, l := range lines {
		if l.IsGrandTotal {
			n++
		}
	}
	return n
}
