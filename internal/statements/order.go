package statements

import (
	"sort"

	"go.uber.org/zap"
)

// OrderLookup supplies an optional display position per account code.
// ok is false when the code has no override.
type OrderLookup interface {
	LookupOrder(code string) (pos int, ok bool, err error)
}

// MapOrder is an OrderLookup backed by a fixed map, e.g. from configuration.
type MapOrder map[string]int

// LookupOrder implements OrderLookup.
func (m MapOrder) LookupOrder(code string) (int, bool, error) {
	pos, ok := m[code]
	return pos, ok, nil
}

// overrides fetches the positions of codes once. Any lookup error discards
// every override so the caller falls back to plain code order.
func overrides(lookup OrderLookup, codes []string, log *zap.Logger) map[string]int {
	if lookup == nil {
		return nil
	}
	out := make(map[string]int)
	for _, code := range codes {
		if _, done := out[code]; done {
			continue
		}
		pos, ok, err := lookup.LookupOrder(code)
		if err != nil {
			log.Warn("order lookup failed, sorting by account code", zap.String("code", code), zap.Error(err))
			return nil
		}
		if ok {
			out[code] = pos
		}
	}
	return out
}

// sortByOverride orders items with an override first (by position, then
// code) and the rest by code.
func sortByOverride[T any](items []T, code func(T) string, order map[string]int) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := code(items[i]), code(items[j])
		pi, oki := order[ci]
		pj, okj := order[cj]
		switch {
		case oki && okj:
			if pi != pj {
				return pi < pj
			}
			return ci < cj
		case oki != okj:
			return oki
		default:
			return ci < cj
		}
	})
}
