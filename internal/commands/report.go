package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/demonstra-dev/demonstra/internal/export"
	"github.com/demonstra-dev/demonstra/internal/report"
)

func newReportCommand(g *globalFlags) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Build the income statement and balance sheet of a SPED file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			registry := export.DefaultRegistry()
			exp := registry.Get(format)
			if exp == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
			}
			if exp.Format() == "xlsx" && out == "" {
				return fmt.Errorf("xlsx output needs --out")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rep, err := report.NewService(e.cfg, e.log).Generate(args[0], f)
			if err != nil {
				return err
			}

			if out == "" {
				return exp.Export(cmd.OutOrStdout(), rep)
			}
			if err := writeExport(out, exp, rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "txt", "output format: txt, csv, xlsx or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

// writeExport writes rep to path, removing the partial file on failure.
func writeExport(path string, exp export.Exporter, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := exportTo(f, exp, rep); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func exportTo(w io.Writer, exp export.Exporter, rep *report.Report) error {
	if err := exp.Export(w, rep); err != nil {
		return fmt.Errorf("exporting %s: %w", exp.Format(), err)
	}
	return nil
}
