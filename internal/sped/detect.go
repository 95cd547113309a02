package sped

import (
	"strings"

	"github.com/demonstra-dev/demonstra/internal/model"
)

// detectLimit is how many non-empty lines Detect looks at.
const detectLimit = 50

// Detect inspects the first lines of a file to find the header record, the
// book variant and the start of the chart of accounts. Missing markers are
// reported as -1 / VariantUnknown.
func Detect(lines []string) model.FileStructure {
	fs := model.FileStructure{
		Version:       model.VariantUnknown,
		HeaderLine:    -1,
		AccountsStart: -1,
	}

	seen := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if seen == detectLimit {
			break
		}
		seen++

		fields := strings.Split(line, "|")
		tag := field(fields, 1)
		switch {
		case tag == TagHeader && fs.HeaderLine < 0:
			fs.HeaderLine = i
			fs.Version = variantOf(field(fields, 2))
		case isChartTag(tag):
			fs.AccountsStart = i
			return fs
		}
	}
	return fs
}

func variantOf(marker string) model.Variant {
	switch {
	case strings.Contains(marker, "LECD"):
		return model.VariantECD
	case strings.Contains(marker, "LECF"):
		return model.VariantECF
	default:
		return model.VariantUnknown
	}
}
