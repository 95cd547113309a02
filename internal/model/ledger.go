package model

// UnknownAccount is the description used when a code has no chart-of-accounts entry.
const UnknownAccount = "Conta não identificada"

// LedgerRecord is one signed ledger figure extracted from a SPED file.
type LedgerRecord struct {
	AccountCode        string  `json:"account_code"`
	AccountDescription string  `json:"account_description"`
	FinalBalance       float64 `json:"final_balance"` // signed by account nature
	Block              string  `json:"block"`         // record tag that produced it, e.g. "I155"
	FiscalYear         int     `json:"fiscal_year"`   // 0 when the header date is unusable
}

// Variant identifies the SPED book flavour found in the header record.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantECD             // Escrituração Contábil Digital ("LECD")
	VariantECF             // Escrituração Contábil Fiscal ("LECF")
)

func (v Variant) String() string {
	switch v {
	case VariantECD:
		return "ECD"
	case VariantECF:
		return "ECF"
	default:
		return "unknown"
	}
}

// FileStructure is what the detector learned from the first lines of a file.
// Line indexes are 0-based; -1 means the marker was not found.
type FileStructure struct {
	Version       Variant `json:"version"`
	HeaderLine    int     `json:"header_line"`
	AccountsStart int     `json:"accounts_start"`
}

// ChartEntry is one row of the chart of accounts (plano de contas).
type ChartEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
