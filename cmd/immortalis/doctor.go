package immortalis

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range report.IntegrityErrors {
				fmt.Fprintf(out, "SQLite integrity: %s\n", line)
			}
			fmt.Fprintf(out, "Unknown category posts: %d\n", report.UnknownCategory)
			fmt.Fprintf(out, "Miscased category posts: %d\n", report.MiscasedCategory)
			fmt.Fprintf(out, "Bad timestamp posts: %d\n", report.BadTimestamp)
			if doctorFix {
				fmt.Fprintf(out, "Fixed category rows: %d\n", report.FixedCategoryRows)
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite miscased categories to their configured spelling")
}
