package sped

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/acctcode"
	"github.com/demonstra-dev/demonstra/internal/model"
)

// balanceTolerance is the largest asset vs liability+equity gap accepted as balanced.
const balanceTolerance = 0.01

var expectedGroups = []string{"1", "2", "3"}

// checkQuality logs data-quality findings and records them as notices.
// It never changes the records.
func (p *Parser) checkQuality(r *run, records []model.LedgerRecord) {
	if len(records) == 0 {
		return
	}

	seen := make(map[string]bool)
	var assets, liabilities float64
	for _, rec := range records {
		if IsDirectBlock(rec.Block) {
			continue
		}
		lead := acctcode.Leading(rec.AccountCode)
		seen[lead] = true
		switch lead {
		case "1":
			assets += rec.FinalBalance
		case "2":
			liabilities += rec.FinalBalance
		}
	}
	if len(seen) == 0 {
		return
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	p.log.Info("account groups found", zap.Strings("groups", groups))

	var missing []string
	for _, g := range expectedGroups {
		if !seen[g] {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		p.log.Warn("expected account groups missing", zap.Strings("missing", missing))
		r.notice(model.NoticeMissingGroups, 0, "grupos de contas ausentes: %s", strings.Join(missing, ", "))
	}

	if diff := assets - liabilities; math.Abs(diff) > balanceTolerance {
		p.log.Warn("assets and liabilities do not balance",
			zap.Float64("assets", assets),
			zap.Float64("liabilities_equity", liabilities),
			zap.Float64("difference", diff))
		r.notice(model.NoticeImbalance, 0, "ativo (%.2f) difere de passivo + PL (%.2f) em %.2f", assets, liabilities, diff)
	}
}
