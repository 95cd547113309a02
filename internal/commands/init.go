package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/demonstra-dev/demonstra/internal/config"
	"github.com/demonstra-dev/demonstra/internal/gitops"
	"github.com/demonstra-dev/demonstra/internal/importer"
)

// exportsDir is where batch runs write their output.
const exportsDir = "exports"

func newInitCommand() *cobra.Command {
	var (
		name    string
		withGit bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new demonstra project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if name == "" {
				name = filepath.Base(absDir)
			}

			if err := runInit(absDir, name); err != nil {
				return err
			}
			if withGit {
				if err := initRepo(absDir, name); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized demonstra project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (defaults to the directory name)")
	cmd.Flags().BoolVar(&withGit, "git", false, "create a git repository and commit the project skeleton")

	return cmd
}

func runInit(dir, name string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	dirs := []string{
		importer.ImportDir,
		importer.ProcessedDir,
		exportsDir,
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, config.Default(name)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := importer.ImportDir + "/*.txt\n" + importer.ImportDir + "/*.sped\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, importer.ImportDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	return nil
}

// initRepo versions a freshly initialized project. Pending inbox files are
// ignored; exports, run logs and processed inputs are committed by batch.
func initRepo(dir, name string) error {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return err
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return err
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	if _, err := gitops.Commit(dir, nil, "init: demonstra project "+name, author); err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	return nil
}
