// Package statements turns ledger records into the income statement (DRE)
// and the balance sheet (Balanço Patrimonial).
//
// Each statement has two strategies. When the file carries the statement
// rows the bookkeeper already aggregated, those are used as they are
// (StrategyDirect). Otherwise records are grouped by account code prefix
// (StrategyClassification).
package statements

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/demonstra-dev/demonstra/internal/acctcode"
	"github.com/demonstra-dev/demonstra/internal/model"
)

// Strategy names how a statement was built.
type Strategy string

const (
	StrategyDirect         Strategy = "direct"
	StrategyClassification Strategy = "classification"
)

// Options configure statement building. The zero value uses DefaultRules,
// no ordering override and no logging.
type Options struct {
	Rules  *Rules
	Order  OrderLookup
	Logger *zap.Logger
}

func (o Options) rules() Rules {
	if o.Rules == nil {
		return DefaultRules()
	}
	return *o.Rules
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// groupOf returns the index of the first group code belongs to, or -1.
func groupOf(groups []Group, code string) int {
	for i, g := range groups {
		if acctcode.HasAnyPrefix(code, g.Prefixes) {
			return i
		}
	}
	return -1
}

// partition splits records into len(groups) buckets, keeping input order.
// Records matching no group are returned separately.
func partition(groups []Group, records []model.LedgerRecord) ([][]model.LedgerRecord, []model.LedgerRecord) {
	buckets := make([][]model.LedgerRecord, len(groups))
	var rest []model.LedgerRecord
	for _, rec := range records {
		if i := groupOf(groups, rec.AccountCode); i >= 0 {
			buckets[i] = append(buckets[i], rec)
		} else {
			rest = append(rest, rec)
		}
	}
	return buckets, rest
}

func hasBlock(records []model.LedgerRecord, block string) bool {
	for _, r := range records {
		if r.Block == block {
			return true
		}
	}
	return false
}

func withBlock(records []model.LedgerRecord, block string) []model.LedgerRecord {
	var out []model.LedgerRecord
	for _, r := range records {
		if r.Block == block {
			out = append(out, r)
		}
	}
	return out
}

// inFamily keeps non-direct records whose leading digit is family.
func inFamily(records []model.LedgerRecord, family string, direct func(string) bool) []model.LedgerRecord {
	var out []model.LedgerRecord
	for _, r := range records {
		if direct(r.Block) {
			continue
		}
		if acctcode.Leading(r.AccountCode) == family {
			out = append(out, r)
		}
	}
	return out
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// fold upper-cases s and strips diacritics so "Patrimônio" matches "PATRIMONIO".
func fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, fold(w)) {
			return true
		}
	}
	return false
}
