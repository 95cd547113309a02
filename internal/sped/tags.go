package sped

import "strings"

// Record tags the parser understands. Field 1 of every line is the tag.
const (
	TagHeader = "0000"

	// BlockIncomeStatement and BlockBalanceSheet are the statement rows the
	// bookkeeper already aggregated (J150 = DRE, J100 = Balanço). They are
	// carried through as LedgerRecord.Block.
	BlockIncomeStatement = "J150"
	BlockBalanceSheet    = "J100"

	// BlockSample marks illustrative records produced when nothing could be
	// extracted from the file.
	BlockSample = "AMOSTRA"
)

var (
	chartTags     = []string{"I050", "J050"}
	chartFamilies = []string{"C05", "J05"}

	movementTags = map[string]bool{
		"I155": true, "I157": true, "I250": true, "I355": true,
		"K155": true, "K156": true, "K355": true, "K356": true,
	}
)

func isChartTag(tag string) bool {
	for _, t := range chartTags {
		if tag == t {
			return true
		}
	}
	for _, f := range chartFamilies {
		if strings.HasPrefix(tag, f) {
			return true
		}
	}
	return false
}

// IsMovementTag reports whether tag is a ledger movement/balance record.
func IsMovementTag(tag string) bool {
	return movementTags[tag]
}

// IsDirectBlock reports whether block holds pre-aggregated statement rows.
func IsDirectBlock(block string) bool {
	return block == BlockIncomeStatement || block == BlockBalanceSheet
}

// splitLines splits text into lines, dropping a trailing "\r" from each.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// field returns fields[i], trimmed, or "" when i is out of range.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
