package sped

import (
	"strings"

	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/acctcode"
	"github.com/demonstra-dev/demonstra/internal/locale"
	"github.com/demonstra-dev/demonstra/internal/model"
)

// heuristicWindow is how many fields after the account code are searched for an amount.
const heuristicWindow = 4

// heuristic is the loose pass used when the layout-driven pass found nothing.
// Any tag containing a movement marker is a candidate; the first field with a
// "." is taken as the account code and the first non-zero number after it as
// the amount.
func (p *Parser) heuristic(r *run) []model.LedgerRecord {
	var records []model.LedgerRecord
	for _, line := range r.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		tag := field(fields, 1)
		if !containsAny(tag, p.opts.FallbackMarkers) {
			continue
		}

		codeAt := -1
		for i := 2; i < len(fields); i++ {
			if strings.Contains(fields[i], ".") {
				codeAt = i
				break
			}
		}
		if codeAt < 0 {
			continue
		}
		code := acctcode.Normalize(field(fields, codeAt))
		if code == "" {
			continue
		}

		amount, amountAt := 0.0, -1
		for j := codeAt + 1; j <= codeAt+heuristicWindow && j < len(fields); j++ {
			v, err := locale.ParseNumber(fields[j])
			if err == nil && v != 0 {
				amount, amountAt = v, j
				break
			}
		}
		if amountAt < 0 {
			continue
		}

		ind := field(fields, amountAt+1)
		if !strings.EqualFold(ind, "C") && !strings.EqualFold(ind, "D") {
			ind = "D"
		}

		records = append(records, model.LedgerRecord{
			AccountCode:        code,
			AccountDescription: p.describe(r, code),
			FinalBalance:       p.sign(code, amount, ind),
			Block:              tag,
			FiscalYear:         r.year,
		})
	}
	p.log.Info("heuristic extraction finished", zap.Int("records", len(records)))
	return records
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
