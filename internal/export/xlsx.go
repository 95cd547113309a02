package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/report"
)

// Sheet names of the workbook.
const (
	SheetIncome  = "DRE"
	SheetBalance = "Balanco"
)

// numFmtAccounting is the built-in "#,##0.00" format.
const numFmtAccounting = 4

// XLSX writes a workbook with one sheet per statement.
type XLSX struct{}

// Format returns the exporter name.
func (x *XLSX) Format() string { return "xlsx" }

// ContentType returns the MIME type of the output.
func (x *XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type sheetStyles struct {
	text, detail, bold int
	value, boldValue   int
}

// Export writes rep to w.
func (x *XLSX) Export(w io.Writer, rep *report.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetIncome); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetBalance); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Demonstração do Resultado do Exercício %d", rep.FiscalYear)
	if err := writeSheet(f, SheetIncome, title, rep, st, rep.Income.Lines); err != nil {
		return err
	}
	title = fmt.Sprintf("Balanço Patrimonial %d", rep.FiscalYear)
	if err := writeSheet(f, SheetBalance, title, rep, st, rep.Balance.AssetLines, rep.Balance.LiabilityEquityLines); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.text, &excelize.Style{}},
		{&st.detail, &excelize.Style{Alignment: &excelize.Alignment{Indent: 2}}},
		{&st.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&st.value, &excelize.Style{NumFmt: numFmtAccounting}},
		{&st.boldValue, &excelize.Style{NumFmt: numFmtAccounting, Font: &excelize.Font{Bold: true}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("creating style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// writeSheet writes a title row, a header row and then each block of lines,
// with an empty row between blocks.
func writeSheet(f *excelize.File, sheet, title string, rep *report.Report, st sheetStyles, blocks ...[]model.StatementLine) error {
	row := 1
	set := func(col string, value any, style int) error {
		cell := fmt.Sprintf("%s%d", col, row)
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("%s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("%s!%s style: %w", sheet, cell, err)
		}
		return nil
	}

	if err := set("A", title, st.bold); err != nil {
		return err
	}
	if rep.Sample {
		if err := set("B", "DADOS DE EXEMPLO", st.bold); err != nil {
			return err
		}
	}
	row += 2
	for _, h := range [][2]string{{"A", "Descrição"}, {"B", "Valor"}, {"C", "Categoria"}} {
		if err := set(h[0], h[1], st.bold); err != nil {
			return err
		}
	}
	row++

	for i, lines := range blocks {
		if i > 0 {
			row++
		}
		for _, l := range lines {
			descStyle, valStyle := st.text, st.value
			switch {
			case l.IsGrandTotal || l.IsGroupSubtotal:
				descStyle, valStyle = st.bold, st.boldValue
			case l.IndentLevel > 0:
				descStyle = st.detail
			}
			if err := set("A", l.Description, descStyle); err != nil {
				return err
			}
			if err := set("B", l.Value, valStyle); err != nil {
				return err
			}
			if err := set("C", l.Category, st.text); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 55); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "B", "C", 20); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	return nil
}
