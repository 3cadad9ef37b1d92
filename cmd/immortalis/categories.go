package immortalis

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage the community post categories",
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "List the allowed post categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cats, err := service.PostCategories(sqldb)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		})
	},
}

var categoriesSetCmd = &cobra.Command{
	Use:   "set <name>[,<name>...]",
	Short: "Replace the allowed post categories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			names := make([]string, 0, len(args))
			for _, arg := range args {
				names = append(names, strings.Split(arg, ",")...)
			}
			cats, err := service.SetPostCategories(sqldb, names)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(cats, ", "))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesGetCmd, categoriesSetCmd)
}
