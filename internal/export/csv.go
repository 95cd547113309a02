package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/demonstra-dev/demonstra/internal/locale"
	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/report"
)

// Statement names in the first CSV column.
const (
	StatementIncome          = "DRE"
	StatementAssets          = "BALANCO_ATIVO"
	StatementLiabilityEquity = "BALANCO_PASSIVO_PL"
)

// CSVHeader is the first row written by the CSV exporter.
const CSVHeader = "demonstracao;categoria;descricao;valor;nivel;subtotal;total"

// CSV writes every statement line as one ";"-separated row in Windows-1252,
// the encoding spreadsheet imports in pt-BR expect.
type CSV struct{}

// Format returns the exporter name.
func (c *CSV) Format() string { return "csv" }

// ContentType returns the MIME type of the output.
func (c *CSV) ContentType() string { return "text/csv; charset=windows-1252" }

// Export writes rep to w.
func (c *CSV) Export(w io.Writer, rep *report.Report) error {
	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	cw := csv.NewWriter(tw)
	cw.Comma = ';'

	if err := cw.Write(strings.Split(CSVHeader, ";")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	sections := []struct {
		name  string
		lines []model.StatementLine
	}{
		{StatementIncome, rep.Income.Lines},
		{StatementAssets, rep.Balance.AssetLines},
		{StatementLiabilityEquity, rep.Balance.LiabilityEquityLines},
	}
	for _, s := range sections {
		for i, l := range s.lines {
			if err := cw.Write(csvRow(s.name, l)); err != nil {
				return fmt.Errorf("writing %s line %d: %w", s.name, i+1, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	return nil
}

func csvRow(statement string, l model.StatementLine) []string {
	return []string{
		statement,
		l.Category,
		l.Description,
		locale.FormatDecimal(l.Value),
		strconv.Itoa(l.IndentLevel),
		flag(l.IsGroupSubtotal),
		flag(l.IsGrandTotal),
	}
}

func flag(b bool) string {
	if b {
		return "S"
	}
	return "N"
}
