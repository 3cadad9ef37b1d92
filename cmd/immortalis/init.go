package immortalis

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/app"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local immortalis database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized immortalis database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
