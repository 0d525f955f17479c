package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/config"
	"github.com/caja-dev/caja/internal/gitops"
	"github.com/caja-dev/caja/internal/ledger"
	"github.com/caja-dev/caja/internal/storage"
)

func newInitCommand() *cobra.Command {
	var name string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new caja data directory",
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

			return runInit(cmd, absDir, name, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "shop name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, noGit bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains a %s", dir, config.FileName)
	}

	cfg := config.Default(name)
	if noGit {
		cfg.Git.AutoCommit = false
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the store so the category list exists from day one.
	kv, err := storage.NewFileKV(filepath.Join(dir, dataSubdir))
	if err != nil {
		return err
	}
	if _, err := ledger.Open(kv, cfg.Ledger.Categories, cfg.Ledger.FallbackCategory); err != nil {
		return err
	}

	gitignore := "*.tmp\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if noGit {
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized caja directory at %s\n", dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.Commit(dir, "init: "+name, gitops.Author{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized caja directory at %s (%s)\n", dir, hash)
	return nil
}
