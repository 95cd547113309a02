package statements

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/sped"
)

// Grand total categories of the balance sheet.
const (
	CategoryTotalAssets          = "total_ativo"
	CategoryTotalLiabilityEquity = "total_passivo_pl"
)

const (
	totalAssetsDescription          = "TOTAL DO ATIVO"
	totalLiabilityEquityDescription = "TOTAL DO PASSIVO + PATRIMÔNIO LÍQUIDO"
)

// BalanceSheet is the Balanço Patrimonial of one file. Each side ends with
// exactly one grand total.
type BalanceSheet struct {
	Strategy             Strategy              `json:"strategy"`
	AssetLines           []model.StatementLine `json:"asset_lines"`
	LiabilityEquityLines []model.StatementLine `json:"liability_equity_lines"`
}

// TotalAssets returns the asset side grand total.
func (b BalanceSheet) TotalAssets() float64 {
	return grandTotal(b.AssetLines)
}

// TotalLiabilityEquity returns the liability and equity side grand total.
func (b BalanceSheet) TotalLiabilityEquity() float64 {
	return grandTotal(b.LiabilityEquityLines)
}

func grandTotal(lines []model.StatementLine) float64 {
	for _, l := range lines {
		if l.IsGrandTotal {
			return l.Value
		}
	}
	return 0
}

// BuildBalanceSheet builds the balance sheet from records. J100 rows, when
// present, are placed on a side by description; otherwise asset and
// liability family records are grouped.
func BuildBalanceSheet(records []model.LedgerRecord, opts Options) BalanceSheet {
	log := opts.logger()
	rules := opts.rules()

	var sheet BalanceSheet
	if hasBlock(records, sped.BlockBalanceSheet) {
		sheet = directBalance(withBlock(records, sped.BlockBalanceSheet), rules)
		sheet.Strategy = StrategyDirect
	} else {
		sheet = classifyBalance(records, rules, log)
		sheet.Strategy = StrategyClassification
	}
	log.Info("balance sheet built",
		zap.String("strategy", string(sheet.Strategy)),
		zap.Float64("total_assets", sheet.TotalAssets()),
		zap.Float64("total_liability_equity", sheet.TotalLiabilityEquity()))
	return sheet
}

// isAssetRow places a pre-aggregated row. Asset keywords win over liability
// keywords; with neither, a positive balance is an asset.
func isAssetRow(r model.LedgerRecord, rules Rules) bool {
	desc := fold(r.AccountDescription)
	switch {
	case containsAny(desc, rules.AssetKeywords):
		return true
	case containsAny(desc, rules.LiabilityKeywords):
		return false
	default:
		return r.FinalBalance > 0
	}
}

func directBalance(rows []model.LedgerRecord, rules Rules) BalanceSheet {
	var assets, liabilities []model.LedgerRecord
	for _, r := range rows {
		if isAssetRow(r, rules) {
			assets = append(assets, r)
		} else {
			liabilities = append(liabilities, r)
		}
	}
	return BalanceSheet{
		AssetLines:           directSide(assets, CategoryTotalAssets, totalAssetsDescription),
		LiabilityEquityLines: directSide(liabilities, CategoryTotalLiabilityEquity, totalLiabilityEquityDescription),
	}
}

func directSide(rows []model.LedgerRecord, category, desc string) []model.StatementLine {
	sorted := append([]model.LedgerRecord(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AccountCode < sorted[j].AccountCode })

	lines := make([]model.StatementLine, 0, len(sorted)+1)
	total := decimal.Zero
	for _, r := range sorted {
		lines = append(lines, model.StatementLine{
			Category:    r.AccountCode,
			Description: r.AccountDescription,
			Value:       r.FinalBalance,
		})
		total = total.Add(dec(r.FinalBalance))
	}
	return append(lines, model.StatementLine{
		Category:     category,
		Description:  desc,
		Value:        toFloat(total),
		IsGrandTotal: true,
	})
}

func classifyBalance(records []model.LedgerRecord, rules Rules, log *zap.Logger) BalanceSheet {
	return BalanceSheet{
		AssetLines: classifySide(inFamily(records, rules.AssetFamily, sped.IsDirectBlock),
			rules.Assets, CategoryTotalAssets, totalAssetsDescription, log),
		LiabilityEquityLines: classifySide(inFamily(records, rules.LiabilityFamily, sped.IsDirectBlock),
			rules.LiabilitiesEquity, CategoryTotalLiabilityEquity, totalLiabilityEquityDescription, log),
	}
}

// classifySide emits every group, empty ones included, with signed members.
func classifySide(records []model.LedgerRecord, groups []Group, category, desc string, log *zap.Logger) []model.StatementLine {
	buckets, rest := partition(groups, records)
	for _, r := range rest {
		log.Debug("balance account outside sheet groups", zap.String("code", r.AccountCode))
	}

	var lines []model.StatementLine
	total := decimal.Zero
	for i, g := range groups {
		block, sub := groupBlock(g, buckets[i], func(v float64) float64 { return v }, dec)
		lines = append(lines, block...)
		total = total.Add(sub)
	}
	return append(lines, model.StatementLine{
		Category:     category,
		Description:  desc,
		Value:        toFloat(total),
		IsGrandTotal: true,
	})
}
