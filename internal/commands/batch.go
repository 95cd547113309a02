package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/config"
	"github.com/demonstra-dev/demonstra/internal/export"
	"github.com/demonstra-dev/demonstra/internal/gitops"
	"github.com/demonstra-dev/demonstra/internal/importer"
	"github.com/demonstra-dev/demonstra/internal/report"
	"github.com/demonstra-dev/demonstra/internal/runlog"
)

func newBatchCommand(g *globalFlags) *cobra.Command {
	var (
		repoDir, format string
		commit          bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every SPED file waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if format == "" {
				format = e.cfg.Export.DefaultFormat
			}
			exp := export.DefaultRegistry().Get(format)
			if exp == nil {
				return fmt.Errorf("unknown format %q", format)
			}
			out := cmd.OutOrStdout()
			done, batchErr := runBatch(out, absDir, report.NewService(e.cfg, e.log), exp, e.log)
			if done > 0 && (commit || e.cfg.Git.AutoCommit) {
				if err := commitBatch(out, absDir, done, e.cfg.Git); err != nil {
					return errors.Join(batchErr, err)
				}
			}
			return batchErr
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().StringVar(&format, "format", "", "output format (default from config)")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the results to the project's git repository")

	return cmd
}

// runBatch processes each inbox file independently: one failure is reported
// and the rest still run. It returns how many files succeeded.
func runBatch(out io.Writer, root string, svc *report.Service, exp export.Exporter, log *zap.Logger) (int, error) {
	files, err := importer.Scan(root)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No files to process.")
		return 0, nil
	}
	if err := os.MkdirAll(filepath.Join(root, exportsDir), 0o755); err != nil {
		return 0, fmt.Errorf("creating exports dir: %w", err)
	}

	var errs []error
	done := 0
	for _, fi := range files {
		dst, err := processFile(root, fi, svc, exp)
		if err != nil {
			log.Error("batch file failed", zap.String("file", fi.Name), zap.Error(err))
			fmt.Fprintf(out, "FAIL %s: %v\n", fi.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", fi.Name, err))
			continue
		}
		done++
		fmt.Fprintf(out, "ok   %s -> %s\n", fi.Name, dst)
	}
	fmt.Fprintf(out, "Processed %d of %d files.\n", done, len(files))
	return done, errors.Join(errs...)
}

// commitBatch records exports, the run log and the moved inputs in one commit.
func commitBatch(out io.Writer, root string, done int, gc config.GitConfig) error {
	if !gitops.IsRepo(root) {
		return fmt.Errorf("%s is not a git repository (run init --git)", root)
	}
	paths := []string{exportsDir, "logs", importer.ImportDir}
	author := gitops.Author{Name: gc.AuthorName, Email: gc.AuthorEmail}
	hash, err := gitops.Commit(root, paths, fmt.Sprintf("batch: processed %d files", done), author)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	fmt.Fprintf(out, "Committed %s\n", hash)
	return nil
}

// processFile leaves no partial state behind on failure: the export is only
// kept once the input has been moved to processed/, and the run log is
// written last.
func processFile(root string, fi importer.FileInfo, svc *report.Service, exp export.Exporter) (string, error) {
	if _, err := os.Stat(filepath.Join(root, importer.ProcessedDir, fi.Name)); err == nil {
		return "", fmt.Errorf("already processed: %w", os.ErrExist)
	}

	f, err := os.Open(fi.Path)
	if err != nil {
		return "", fmt.Errorf("opening: %w", err)
	}
	rep, err := svc.Generate(fi.Name, f)
	f.Close()
	if err != nil {
		return "", err
	}

	rel := filepath.Join(exportsDir, export.FileName(rep, exp.Format()))
	dst := filepath.Join(root, rel)
	if err := writeNewExport(dst, exp, rep); err != nil {
		return "", err
	}
	if err := importer.MarkProcessed(root, fi.Name); err != nil {
		os.Remove(dst)
		return "", err
	}
	if err := runlog.Append(root, []runlog.Entry{runlog.FromReport(rep)}); err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return rel, nil
}

// writeNewExport is writeExport that refuses to replace an existing file, so
// inputs sharing a base name never overwrite each other's output.
func writeNewExport(path string, exp export.Exporter, rep *report.Report) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := exportTo(f, exp, rep); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
