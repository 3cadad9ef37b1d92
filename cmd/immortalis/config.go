package immortalis

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage immortalis stored configuration",
}

var cfgFeedQuery string

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("feed-query") {
				if err := service.SetConfig(sqldb, service.ConfigFeedQuery, cfgFeedQuery); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("%w: set at least one flag", apperrors.ErrInvalidInput)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgFeedQuery, "feed-query", "", "Default research feed search query")
}
