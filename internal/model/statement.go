package model

// StatementLine is one row of an income statement or balance sheet.
type StatementLine struct {
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Value           float64 `json:"value"`
	IndentLevel     int     `json:"indent_level"` // 0 = header/total, 1 = detail
	IsGroupSubtotal bool    `json:"is_group_subtotal"`
	IsGrandTotal    bool    `json:"is_grand_total"`
}
