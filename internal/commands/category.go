package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/auditlog"
)

func newCategoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"rubro"},
		Short:   "Manage sale categories",
	}
	cmd.AddCommand(
		newCategoryAddCommand(),
		newCategoryRenameCommand(),
		newCategoryRemoveCommand(),
		newCategoryListCommand(),
	)
	return cmd
}

func newCategoryAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.store.AddCategory(args[0]); err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "category_add", args[0], ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s\n", args[0])
			return e.commit("category: add " + args[0])
		},
	}
}

func newCategoryRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a category, relabeling its past sales",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.store.RenameCategory(args[0], args[1]); err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "category_rename", args[0]+" -> "+args[1], ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s to %s\n", args[0], args[1])
			return e.commit(fmt.Sprintf("category: rename %s to %s", args[0], args[1]))
		},
	}
}

func newCategoryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a category, reassigning its sales to the fallback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.store.DeleteCategory(args[0]); err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "category_delete", args[0], ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s (sales moved to %s)\n", args[0], e.store.FallbackCategory())
			return e.commit("category: delete " + args[0])
		},
	}
}

func newCategoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			for _, c := range e.store.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
