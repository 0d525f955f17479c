package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/config"
	"github.com/caja-dev/caja/internal/gitops"
	"github.com/caja-dev/caja/internal/ledger"
	"github.com/caja-dev/caja/internal/model"
	"github.com/caja-dev/caja/internal/storage"
)

// dataSubdir holds the JSON collections inside a caja directory.
const dataSubdir = "data"

// env bundles everything a subcommand needs: the resolved directory, its
// configuration and an opened store.
type env struct {
	dir   string
	cfg   *config.Config
	store *ledger.Store
}

func openEnv(cmd *cobra.Command) (*env, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%s is not a caja directory (run 'caja init'): %w", absDir, err)
	}

	kv, err := storage.NewFileKV(filepath.Join(absDir, dataSubdir))
	if err != nil {
		return nil, err
	}
	store, err := ledger.Open(kv, cfg.Ledger.Categories, cfg.Ledger.FallbackCategory)
	if err != nil {
		return nil, err
	}

	return &env{dir: absDir, cfg: cfg, store: store}, nil
}

// commit auto-commits the data directory when configured to.
func (e *env) commit(message string) error {
	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.dir) {
		return nil
	}
	_, err := gitops.Commit(e.dir, message, gitops.Author{
		Name:  e.cfg.Git.AuthorName,
		Email: e.cfg.Git.AuthorEmail,
	})
	return err
}

// resolveCustomer finds a customer by ID or by case-insensitive name
// match, the way the shopkeeper refers to them at the till.
func resolveCustomer(store *ledger.Store, ref string) (model.Customer, error) {
	if c, ok := store.Customer(ref); ok {
		return c, nil
	}

	var matches []model.Customer
	needle := strings.ToLower(ref)
	for _, c := range store.Customers() {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Customer{}, fmt.Errorf("customer %q: %w", ref, ledger.ErrNotFound)
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		return model.Customer{}, fmt.Errorf("customer %q is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func parseMethod(s string) (model.PayMethod, error) {
	switch strings.ToLower(s) {
	case "cash", "efectivo":
		return model.MethodCash, nil
	case "digital", "mp", "mercadopago":
		return model.MethodDigital, nil
	case "credit", "fiado":
		return model.MethodCredit, nil
	default:
		return "", fmt.Errorf("unknown payment method %q (cash, digital or credit)", s)
	}
}
