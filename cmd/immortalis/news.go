package immortalis

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/feed"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/service"
)

var (
	newsQuery string
	newsLimit int
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show recent longevity research headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newCLILogger()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		query := strings.TrimSpace(newsQuery)
		if query == "" {
			// The stored query is optional; an unreadable database falls back to the default.
			_ = withDB(func(sqldb *sql.DB) error {
				q, ok, err := service.GetConfig(sqldb, service.ConfigFeedQuery)
				if err == nil && ok {
					query = q
				}
				return nil
			})
		}
		limit := newsLimit
		if limit <= 0 {
			limit = cfg.FeedLimit
		}

		client := feed.NewClient(cfg.FeedURL, log)
		n := 0
		for a := range client.Articles(cmd.Context(), query, limit) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.Title, a.Published, a.Link)
			n++
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No research news available right now.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	newsCmd.Flags().StringVar(&newsQuery, "query", "", "Search query (defaults to the stored or built-in longevity query)")
	newsCmd.Flags().IntVar(&newsLimit, "limit", 0, "Maximum headlines to show")
}
