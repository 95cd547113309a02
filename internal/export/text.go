package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/demonstra-dev/demonstra/internal/locale"
	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/report"
)

// Text renders both statements as aligned plain text for terminals.
type Text struct{}

// Format returns the exporter name.
func (t *Text) Format() string { return "txt" }

// ContentType returns the MIME type of the output.
func (t *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Export writes rep to w.
func (t *Text) Export(w io.Writer, rep *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if rep.Sample {
		fmt.Fprintln(tw, "*** DADOS DE EXEMPLO: nenhum registro foi extraído do arquivo ***\t")
		fmt.Fprintln(tw, "\t")
	}
	fmt.Fprintf(tw, "DEMONSTRAÇÃO DO RESULTADO DO EXERCÍCIO %d\t\n", rep.FiscalYear)
	writeLines(tw, rep.Income.Lines)

	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "BALANÇO PATRIMONIAL %d\t\n", rep.FiscalYear)
	fmt.Fprintln(tw, "ATIVO\t")
	writeLines(tw, rep.Balance.AssetLines)
	fmt.Fprintln(tw, "PASSIVO E PATRIMÔNIO LÍQUIDO\t")
	writeLines(tw, rep.Balance.LiabilityEquityLines)

	if len(rep.Notices) > 0 {
		fmt.Fprintln(tw, "\t")
		fmt.Fprintln(tw, "AVISOS\t")
		for _, n := range rep.Notices {
			fmt.Fprintf(tw, "- %s\t\n", n)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}

func writeLines(w io.Writer, lines []model.StatementLine) {
	for _, l := range lines {
		label := strings.Repeat("    ", l.IndentLevel+1) + l.Description
		if isHeader(l) {
			fmt.Fprintf(w, "%s\t\n", label)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t\n", label, locale.FormatCurrency(l.Value))
	}
}

// isHeader reports whether l opens a group. Statement rows taken from the
// file never carry a zero value, so a bare zero at the top level is a header.
func isHeader(l model.StatementLine) bool {
	return l.IndentLevel == 0 && !l.IsGroupSubtotal && !l.IsGrandTotal && l.Value == 0
}
