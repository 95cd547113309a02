package acctcode

import "strings"

// Normalize returns the canonical form of a hierarchical account code:
// trailing zeros are stripped from every dot-separated segment and
// segments that end up empty are dropped.
// "1.0100" -> "1.01", "2.000" -> "2"
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, ".")
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimRight(strings.TrimSpace(p), "0")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// Leading returns the first character of code, the digit that carries the
// account nature in Brazilian charts (1 ativo, 2 passivo/PL, 3 resultado).
func Leading(code string) string {
	if code == "" {
		return ""
	}
	return code[:1]
}

// HasPrefix reports whether code equals prefix or descends from it.
// "3.1.05" has prefix "3.1"; "3.15" does not.
func HasPrefix(code, prefix string) bool {
	if prefix == "" {
		return false
	}
	return code == prefix || strings.HasPrefix(code, prefix+".")
}

// HasAnyPrefix reports whether code descends from any of prefixes.
func HasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if HasPrefix(code, p) {
			return true
		}
	}
	return false
}
