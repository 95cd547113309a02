package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/demonstra-dev/demonstra/internal/accounts"
	"github.com/demonstra-dev/demonstra/internal/sped"
)

func newChartCommand(g *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Export the chart of accounts of a SPED file as CSV",
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
			entries := res.Chart.Entries()

			if out == "" {
				return accounts.WriteChart(cmd.OutOrStdout(), entries)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()
			if err := accounts.WriteChart(f, entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d accounts to %s\n", len(entries), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}
