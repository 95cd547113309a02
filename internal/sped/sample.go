package sped

import "github.com/demonstra-dev/demonstra/internal/model"

// sampleRecords is a small balanced ledger shown when a file yields nothing.
// Every record carries BlockSample so it can never pass for real figures.
func sampleRecords(year int) []model.LedgerRecord {
	rows := []struct {
		code, desc string
		balance    float64
	}{
		{"1.01.01", "Caixa e Equivalentes de Caixa", 50000},
		{"1.01.02", "Clientes", 30000},
		{"1.02.01", "Imobilizado", 120000},
		{"2.01.01", "Fornecedores", 25000},
		{"2.02.01", "Empréstimos e Financiamentos", 75000},
		{"2.03.01", "Capital Social", 100000},
		{"3.01.01", "Receita de Vendas", 250000},
		{"3.02.01", "Custo das Mercadorias Vendidas", -150000},
		{"3.03.01", "Despesas Administrativas", -40000},
		{"3.06.01", "IRPJ e CSLL", -15000},
	}
	records := make([]model.LedgerRecord, len(rows))
	for i, r := range rows {
		records[i] = model.LedgerRecord{
			AccountCode:        r.code,
			AccountDescription: r.desc,
			FinalBalance:       r.balance,
			Block:              BlockSample,
			FiscalYear:         year,
		}
	}
	return records
}
