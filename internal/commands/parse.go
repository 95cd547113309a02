package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/demonstra-dev/demonstra/internal/locale"
	"github.com/demonstra-dev/demonstra/internal/sped"
)

func newParseCommand(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract the ledger records of a SPED file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			res := sped.NewParser(e.log.Named("parser"), e.cfg.ParserOptions()).Parse(sped.DecodeText(data))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(out, "Exercício: %d  Leiaute: %s  Registros: %d\n", res.FiscalYear, res.Structure.Version, len(res.Records))
			if res.Sample {
				fmt.Fprintln(out, "ATENÇÃO: registros de exemplo, nada foi extraído do arquivo")
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CONTA\tDESCRIÇÃO\tSALDO\tREGISTRO")
			for _, r := range res.Records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.AccountCode, r.AccountDescription, locale.FormatCurrency(r.FinalBalance), r.Block)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			for _, n := range res.Notices {
				fmt.Fprintf(out, "aviso: %s\n", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parse result as JSON")

	return cmd
}
