package statements

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/sped"
)

// Result line categories of the income statement.
const (
	CategoryGrossResult = "resultado_bruto"
	CategoryOperating   = "resultado_operacional"
	CategoryFinancial   = "resultado_financeiro"
	CategoryPreTax      = "resultado_antes_impostos"
	CategoryNetResult   = "resultado_liquido"
)

const (
	netResultDescription = "RESULTADO LÍQUIDO DO EXERCÍCIO"
	subtotalLabelPrefix  = "TOTAL "
)

// IncomeStatement is the DRE of one file. Lines end with exactly one grand
// total, the net result of the period.
type IncomeStatement struct {
	Strategy Strategy              `json:"strategy"`
	Lines    []model.StatementLine `json:"lines"`
}

// NetResult returns the value of the grand total line.
func (s IncomeStatement) NetResult() float64 {
	for _, l := range s.Lines {
		if l.IsGrandTotal {
			return l.Value
		}
	}
	return 0
}

// BuildIncomeStatement builds the DRE from records. J150 rows, when present,
// are used as they are; otherwise result-family records are grouped.
func BuildIncomeStatement(records []model.LedgerRecord, opts Options) IncomeStatement {
	log := opts.logger()
	if hasBlock(records, sped.BlockIncomeStatement) {
		lines := directIncome(withBlock(records, sped.BlockIncomeStatement), opts.Order, log)
		log.Info("income statement built", zap.String("strategy", string(StrategyDirect)), zap.Int("lines", len(lines)))
		return IncomeStatement{Strategy: StrategyDirect, Lines: lines}
	}
	lines := classifyIncome(records, opts.rules(), log)
	log.Info("income statement built", zap.String("strategy", string(StrategyClassification)), zap.Int("lines", len(lines)))
	return IncomeStatement{Strategy: StrategyClassification, Lines: lines}
}

func directIncome(rows []model.LedgerRecord, lookup OrderLookup, log *zap.Logger) []model.StatementLine {
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.AccountCode
	}
	sorted := append([]model.LedgerRecord(nil), rows...)
	sortByOverride(sorted, func(r model.LedgerRecord) string { return r.AccountCode }, overrides(lookup, codes, log))

	lines := make([]model.StatementLine, 0, len(sorted)+1)
	gains, losses := decimal.Zero, decimal.Zero
	for _, r := range sorted {
		lines = append(lines, model.StatementLine{
			Category:    r.AccountCode,
			Description: r.AccountDescription,
			Value:       r.FinalBalance,
		})
		v := dec(r.FinalBalance)
		if v.IsPositive() {
			gains = gains.Add(v)
		} else {
			losses = losses.Add(v.Abs())
		}
	}
	return append(lines, model.StatementLine{
		Category:     CategoryNetResult,
		Description:  netResultDescription,
		Value:        toFloat(gains.Sub(losses)),
		IsGrandTotal: true,
	})
}

func classifyIncome(records []model.LedgerRecord, rules Rules, log *zap.Logger) []model.StatementLine {
	result := inFamily(records, rules.ResultFamily, sped.IsDirectBlock)
	groups := rules.Income.ordered()
	buckets, rest := partition(groups, result)
	for _, r := range rest {
		log.Debug("result account outside income groups", zap.String("code", r.AccountCode))
	}

	var lines []model.StatementLine
	totals := make([]decimal.Decimal, len(groups))
	emit := func(i int) {
		if len(buckets[i]) == 0 {
			return
		}
		var block []model.StatementLine
		block, totals[i] = groupBlock(groups[i], buckets[i], func(v float64) float64 {
			if rules.SignedLeafValues {
				return v
			}
			return toFloat(dec(v).Abs())
		}, func(v float64) decimal.Decimal { return dec(v).Abs() })
		lines = append(lines, block...)
	}
	addResult := func(category, desc string, v decimal.Decimal) {
		lines = append(lines, model.StatementLine{
			Category:        category,
			Description:     desc,
			Value:           toFloat(v),
			IsGroupSubtotal: true,
		})
	}

	const (
		revenue = iota
		cost
		expense
		finRevenue
		finExpense
		tax
	)

	emit(revenue)
	emit(cost)
	gross := totals[revenue].Sub(totals[cost])
	addResult(CategoryGrossResult, "RESULTADO BRUTO", gross)

	emit(expense)
	operating := gross.Sub(totals[expense])
	addResult(CategoryOperating, "RESULTADO OPERACIONAL", operating)

	emit(finRevenue)
	emit(finExpense)
	financial := totals[finRevenue].Sub(totals[finExpense])
	if len(buckets[finRevenue]) > 0 || len(buckets[finExpense]) > 0 {
		addResult(CategoryFinancial, "RESULTADO FINANCEIRO", financial)
	}

	preTax := operating.Add(financial)
	addResult(CategoryPreTax, "RESULTADO ANTES DOS IMPOSTOS", preTax)

	emit(tax)
	lines = append(lines, model.StatementLine{
		Category:     CategoryNetResult,
		Description:  netResultDescription,
		Value:        toFloat(preTax.Sub(totals[tax])),
		IsGrandTotal: true,
	})
	return lines
}

// groupBlock renders header, members and subtotal for one group. leaf maps a
// balance to its displayed value and weight to its contribution to the subtotal.
func groupBlock(g Group, members []model.LedgerRecord, leaf func(float64) float64, weight func(float64) decimal.Decimal) ([]model.StatementLine, decimal.Decimal) {
	lines := make([]model.StatementLine, 0, len(members)+2)
	lines = append(lines, model.StatementLine{Category: g.Key, Description: g.Label})
	total := decimal.Zero
	for _, m := range members {
		lines = append(lines, model.StatementLine{
			Category:    g.Key,
			Description: m.AccountDescription,
			Value:       leaf(m.FinalBalance),
			IndentLevel: 1,
		})
		total = total.Add(weight(m.FinalBalance))
	}
	lines = append(lines, model.StatementLine{
		Category:        g.Key,
		Description:     subtotalLabelPrefix + g.Label,
		Value:           toFloat(total),
		IsGroupSubtotal: true,
	})
	return lines, total
}
